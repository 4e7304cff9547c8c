package model

const (
	ExamStatusDraft     = "Draft"
	ExamStatusPublished = "Published"
)

// swagger:model Exam
type Exam struct {
	UUIDBase
	Title        string   `gorm:"size:255;not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	Duration     int      `gorm:"not null" json:"duration"` // 分钟
	PassingScore int      `gorm:"not null" json:"passingScore"`
	Language     Language `gorm:"size:3;not null" json:"language"`
	CategoryID   string   `gorm:"type:varchar(36);not null;index" json:"category"`
	CourseID     *string  `gorm:"type:varchar(36);index" json:"course,omitempty"`
	QuestionIDs  []string `gorm:"serializer:json;type:text" json:"questions"`
	Status       string   `gorm:"size:10;default:'Draft';index" json:"status"`
	CreatedBy    string   `gorm:"type:varchar(36);index" json:"createdBy"`
}

func (Exam) TableName() string {
	return "exams"
}

func (e *Exam) IsPublished() bool {
	return e.Status == ExamStatusPublished
}

func (e *Exam) HasQuestion(questionID string) bool {
	for _, id := range e.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}
