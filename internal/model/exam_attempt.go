package model

import "time"

const (
	AttemptStatusInProgress = "in-progress"
	AttemptStatusCompleted  = "completed"
)

// swagger:model ExamAttempt
type ExamAttempt struct {
	UUIDBase
	ExamID    string              `gorm:"type:varchar(36);not null;index" json:"exam"`
	UserID    string              `gorm:"type:varchar(36);not null;index" json:"user"`
	Status    string              `gorm:"size:20;not null;default:'in-progress';index" json:"status"`
	StartTime time.Time           `json:"startTime"`
	EndTime   *time.Time          `json:"endTime,omitempty"`
	Score     float64             `json:"score"`
	Passed    bool                `gorm:"default:false" json:"passed"`
	Answers   []ExamAttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// ExamAttemptAnswer 每次作答中每道题只保留一条记录
type ExamAttemptAnswer struct {
	UUIDBase
	AttemptID      string `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_question" json:"-"`
	QuestionID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_question" json:"questionId"`
	SelectedOption int    `json:"selectedOption"`
	IsCorrect      bool   `json:"isCorrect"`
}

func (ExamAttemptAnswer) TableName() string {
	return "exam_attempt_answers"
}
