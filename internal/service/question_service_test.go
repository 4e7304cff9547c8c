package service

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/testutil"
	"exam_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestQuestionService_CreateValidatesOptions(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewQuestionService(repository.NewQuestionRepository(db), repository.NewCategoryRepository(db))
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)

	twoCorrect := testutil.Options(0)
	twoCorrect[1].IsCorrect = true

	tests := []struct {
		name    string
		req     CreateQuestionReq
		wantErr error
	}{
		{"three options", CreateQuestionReq{Text: "q", Category: cat.ID, AnswerOptions: testutil.Options(0)[:3]}, util.ErrQuestionOptionCount},
		{"no correct option", CreateQuestionReq{Text: "q", Category: cat.ID, AnswerOptions: testutil.Options(-1)}, util.ErrQuestionCorrectCount},
		{"two correct options", CreateQuestionReq{Text: "q", Category: cat.ID, AnswerOptions: twoCorrect}, util.ErrQuestionCorrectCount},
		{"unknown category", CreateQuestionReq{Text: "q", Category: "missing", AnswerOptions: testutil.Options(0)}, util.ErrCategoryReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(owner, tt.req)
			assert.Equal(t, tt.wantErr, err)
		})
	}

	var count int64
	require.NoError(t, db.Model(&model.Question{}).Count(&count).Error)
	assert.Zero(t, count)

	q, err := svc.Create(owner, CreateQuestionReq{Text: "q", Category: cat.ID, AnswerOptions: testutil.Options(2)})
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyMedium, q.Difficulty)
	assert.Equal(t, model.QuestionStatusActive, q.Status)
	assert.Equal(t, owner.UserID, q.CreatedBy)
}

func TestQuestionService_UpdateIsAllOrNothing(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewQuestionService(repository.NewQuestionRepository(db), repository.NewCategoryRepository(db))
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	q := testutil.CreateQuestion(t, db, cat.ID, owner.UserID, 0)

	_, err := svc.Update(owner, q.ID, UpdateQuestionReq{
		Text:          strPtr("changed"),
		AnswerOptions: testutil.Options(-1),
	})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = svc.Update(owner, q.ID, UpdateQuestionReq{
		Text:     strPtr("changed"),
		Category: strPtr("missing"),
	})
	assert.ErrorIs(t, err, util.ErrValidation)

	stored, err := svc.Get(q.ID)
	require.NoError(t, err)
	assert.Equal(t, "question", stored.Text)
	assert.True(t, stored.AnswerOptions[0].IsCorrect)

	_, err = svc.Update(stranger, q.ID, UpdateQuestionReq{Text: strPtr("changed")})
	assert.ErrorIs(t, err, util.ErrUnauthorized)

	updated, err := svc.Update(owner, q.ID, UpdateQuestionReq{
		Text:          strPtr("changed"),
		AnswerOptions: testutil.Options(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Text)

	stored, err = svc.Get(q.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.Text)
	assert.True(t, stored.AnswerOptions[3].IsCorrect)
	assert.False(t, stored.AnswerOptions[0].IsCorrect)
}

func TestQuestionService_ListByCategorySkipsInactive(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewQuestionService(repository.NewQuestionRepository(db), repository.NewCategoryRepository(db))
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	active := testutil.CreateQuestion(t, db, cat.ID, owner.UserID, 0)
	inactive := testutil.CreateQuestion(t, db, cat.ID, owner.UserID, 0)
	require.NoError(t, db.Model(inactive).Update("status", model.QuestionStatusInactive).Error)

	list, err := svc.ListByCategory(cat.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	mine, err := svc.ListByCreator(owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.ErrorIs(t, svc.Delete(stranger, active.ID), util.ErrUnauthorized)
	require.NoError(t, svc.Delete(owner, active.ID))
	_, err = svc.Get(active.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}
