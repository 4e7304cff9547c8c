package model

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"

	QuestionStatusActive   = "Active"
	QuestionStatusInactive = "Inactive"

	// AnswerOptionCount 每道题固定四个选项
	AnswerOptionCount = 4
)

type AnswerOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// swagger:model Question
type Question struct {
	UUIDBase
	Text                   string         `gorm:"type:text;not null" json:"text"`
	ImageURL               string         `gorm:"size:500" json:"imageUrl,omitempty"`
	AnswerOptions          []AnswerOption `gorm:"serializer:json;type:text" json:"answerOptions"`
	RightAnswerDescription string         `gorm:"type:text" json:"rightAnswerDescription,omitempty"`
	Difficulty             string         `gorm:"size:10;default:'Medium';index" json:"difficulty"`
	Status                 string         `gorm:"size:10;default:'Active';index" json:"status"`
	CategoryID             string         `gorm:"type:varchar(36);not null;index" json:"category"`
	Category               *Category      `gorm:"foreignKey:CategoryID" json:"categoryObj,omitempty"`
	CreatedBy              string         `gorm:"type:varchar(36);index" json:"createdBy"`
}

func (Question) TableName() string {
	return "questions"
}

// ValidateAnswerOptions 选项数量必须为 4 且恰有一个正确答案
func ValidateAnswerOptions(options []AnswerOption) (countOK bool, correctOK bool) {
	if len(options) != AnswerOptionCount {
		return false, false
	}
	correct := 0
	for _, o := range options {
		if o.IsCorrect {
			correct++
		}
	}
	return true, correct == 1
}
