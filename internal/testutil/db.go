// Package testutil 测试用的数据库与数据构造工具
package testutil

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/database"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB 在临时目录中创建已迁移的 sqlite 数据库
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func Options(correct int) []model.AnswerOption {
	opts := make([]model.AnswerOption, model.AnswerOptionCount)
	for i := range opts {
		opts[i] = model.AnswerOption{Text: string(rune('A' + i)), IsCorrect: i == correct}
	}
	return opts
}

func CreateCategory(t *testing.T, db *gorm.DB, name string, lang model.Language) *model.Category {
	t.Helper()
	c := &model.Category{CategoryName: name, Language: lang}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateQuestion(t *testing.T, db *gorm.DB, categoryID, createdBy string, correct int) *model.Question {
	t.Helper()
	q := &model.Question{
		Text:          "question",
		AnswerOptions: Options(correct),
		Difficulty:    model.DifficultyMedium,
		Status:        model.QuestionStatusActive,
		CategoryID:    categoryID,
		CreatedBy:     createdBy,
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func CreateExam(t *testing.T, db *gorm.DB, categoryID, createdBy, status string, passingScore int, questionIDs []string) *model.Exam {
	t.Helper()
	e := &model.Exam{
		Title:        "exam",
		Duration:     30,
		PassingScore: passingScore,
		Language:     model.LanguageKinyarwanda,
		CategoryID:   categoryID,
		QuestionIDs:  questionIDs,
		Status:       status,
		CreatedBy:    createdBy,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func CreateCourse(t *testing.T, db *gorm.DB, categoryID, instructorID string, lessons int) *model.Course {
	t.Helper()
	c := &model.Course{Title: "course", CategoryID: categoryID, InstructorID: instructorID}
	for i := 0; i < lessons; i++ {
		c.Lessons = append(c.Lessons, model.CourseLesson{Title: "lesson", Order: i + 1})
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
