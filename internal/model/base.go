package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type UUIDBase struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func GenerateUUID() string {
	return uuid.New().String()
}

// Language 分类/试卷语言
type Language string

const (
	LanguageEnglish     Language = "ENG"
	LanguageFrench      Language = "FRA"
	LanguageKinyarwanda Language = "KIN"
)

func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageFrench, LanguageKinyarwanda:
		return true
	}
	return false
}

// DisplayName 用于随机组卷的标题
func (l Language) DisplayName() string {
	switch l {
	case LanguageKinyarwanda:
		return "Kinyarwanda"
	case LanguageEnglish:
		return "English"
	case LanguageFrench:
		return "French"
	}
	return string(l)
}
