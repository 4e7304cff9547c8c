package service

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/testutil"
	"exam_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testAssessment = config.AssessmentConfig{
	DefaultLanguage: "KIN",
	DefaultCount:    10,
	MaxCount:        100,
	PassingScore:    70,
}

func newSelector(db *gorm.DB) *SelectorService {
	return NewSelectorService(repository.NewQuestionRepository(db), repository.NewCategoryRepository(db), testAssessment)
}

func TestSelectorService_ParseCount(t *testing.T) {
	s := NewSelectorService(nil, nil, testAssessment)

	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 10, false},
		{"1", 1, false},
		{"100", 100, false},
		{"0", 0, true},
		{"101", 0, true},
		{"-3", 0, true},
		{"ten", 0, true},
		{"5abc", 5, false},
		{" 7", 7, false},
		{"12.9", 12, false},
		{"abc5", 0, true},
	}
	for _, tt := range tests {
		got, err := s.ParseCount(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, util.ErrValidation, "raw=%q", tt.raw)
			continue
		}
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestSelectorService_SetDefaults(t *testing.T) {
	s := NewSelectorService(nil, nil, testAssessment)

	updated := testAssessment
	updated.DefaultCount = 5
	updated.MaxCount = 20
	s.SetDefaults(updated)

	n, err := s.ParseCount("")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = s.ParseCount("21")
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestSelectorService_RandomCapsAtPoolSize(t *testing.T) {
	db := testutil.NewDB(t)
	s := newSelector(db)
	cat := testutil.CreateCategory(t, db, "Road Signs", model.LanguageKinyarwanda)
	for i := 0; i < 4; i++ {
		testutil.CreateQuestion(t, db, cat.ID, "author", i)
	}

	descriptor, err := s.Random(RandomQuery{Count: "10"})
	require.NoError(t, err)
	assert.Equal(t, 4, descriptor.QuestionCount)
	assert.Equal(t, 4, descriptor.Duration)
	assert.Equal(t, 70, descriptor.PassingScore)
	assert.Equal(t, model.LanguageKinyarwanda, descriptor.Language)
	assert.Equal(t, "General Assessment (4 Questions) - Kinyarwanda", descriptor.Title)
	require.Len(t, descriptor.Questions, 4)

	seen := map[string]bool{}
	for _, q := range descriptor.Questions {
		assert.False(t, seen[q.ID], "duplicate question %s", q.ID)
		seen[q.ID] = true
	}
}

func TestSelectorService_RandomFilters(t *testing.T) {
	db := testutil.NewDB(t)
	s := newSelector(db)
	kin := testutil.CreateCategory(t, db, "Amategeko", model.LanguageKinyarwanda)
	eng := testutil.CreateCategory(t, db, "Rules", model.LanguageEnglish)

	for i := 0; i < 3; i++ {
		testutil.CreateQuestion(t, db, kin.ID, "author", 0)
	}
	engQuestion := testutil.CreateQuestion(t, db, eng.ID, "author", 0)
	hard := testutil.CreateQuestion(t, db, eng.ID, "author", 0)
	require.NoError(t, db.Model(hard).Update("difficulty", model.DifficultyHard).Error)
	inactive := testutil.CreateQuestion(t, db, eng.ID, "author", 0)
	require.NoError(t, db.Model(inactive).Update("status", model.QuestionStatusInactive).Error)

	descriptor, err := s.Random(RandomQuery{Count: "5", Language: "ENG"})
	require.NoError(t, err)
	assert.Equal(t, 2, descriptor.QuestionCount)
	assert.Equal(t, "General Assessment (2 Questions) - English", descriptor.Title)
	for _, q := range descriptor.Questions {
		assert.Equal(t, eng.ID, q.CategoryID)
		assert.NotEqual(t, inactive.ID, q.ID)
	}

	descriptor, err = s.Random(RandomQuery{Language: "ENG", Difficulty: model.DifficultyMedium})
	require.NoError(t, err)
	require.Len(t, descriptor.Questions, 1)
	assert.Equal(t, engQuestion.ID, descriptor.Questions[0].ID)

	_, err = s.Random(RandomQuery{Language: "FRA"})
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = s.Random(RandomQuery{Count: "0"})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestSelectorService_RandomByCategory(t *testing.T) {
	db := testutil.NewDB(t)
	s := newSelector(db)
	cat := testutil.CreateCategory(t, db, "Priorité", model.LanguageFrench)
	empty := testutil.CreateCategory(t, db, "Vide", model.LanguageFrench)
	for i := 0; i < 3; i++ {
		testutil.CreateQuestion(t, db, cat.ID, "author", 1)
	}

	descriptor, err := s.RandomByCategory(cat.ID, "2")
	require.NoError(t, err)
	assert.Equal(t, "Priorité Assessment (2 Questions)", descriptor.Title)
	assert.Equal(t, "Priorité", descriptor.CategoryName)
	assert.Equal(t, model.LanguageFrench, descriptor.Language)
	assert.Len(t, descriptor.Questions, 2)

	_, err = s.RandomByCategory("missing", "")
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = s.RandomByCategory(empty.ID, "")
	assert.ErrorIs(t, err, util.ErrNotFound)
}
