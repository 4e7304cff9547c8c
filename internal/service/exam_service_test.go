package service

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/testutil"
	"exam_prep_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newExamService(db *gorm.DB) *ExamService {
	questions := repository.NewQuestionRepository(db)
	categories := repository.NewCategoryRepository(db)
	return NewExamService(
		repository.NewExamRepository(db),
		questions,
		categories,
		repository.NewCourseRepository(db),
		NewSelectorService(questions, categories, testAssessment),
	)
}

func TestExamService_CreateValidatesReferences(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newExamService(db)
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	q := testutil.CreateQuestion(t, db, cat.ID, "author", 0)
	missingCourse := "missing"

	tests := []struct {
		name string
		req  CreateExamReq
	}{
		{"unknown category", CreateExamReq{Title: "t", Duration: 10, Language: model.LanguageKinyarwanda, Category: "missing"}},
		{"unknown question", CreateExamReq{Title: "t", Duration: 10, Language: model.LanguageKinyarwanda, Category: cat.ID, Questions: []string{q.ID, "missing"}}},
		{"unknown course", CreateExamReq{Title: "t", Duration: 10, Language: model.LanguageKinyarwanda, Category: cat.ID, Course: &missingCourse}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(owner, tt.req)
			assert.ErrorIs(t, err, util.ErrValidation)
		})
	}

	exam, err := svc.Create(owner, CreateExamReq{
		Title:        "Mock test",
		Duration:     20,
		PassingScore: 60,
		Language:     model.LanguageKinyarwanda,
		Category:     cat.ID,
		Questions:    []string{q.ID, q.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ExamStatusDraft, exam.Status)
	assert.Equal(t, []string{q.ID}, exam.QuestionIDs)
	assert.Nil(t, exam.CourseID)
}

func TestExamService_PublishIsOneWay(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newExamService(db)
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	q := testutil.CreateQuestion(t, db, cat.ID, "author", 0)

	exam, err := svc.Create(owner, CreateExamReq{Title: "t", Duration: 10, PassingScore: 70, Language: model.LanguageKinyarwanda, Category: cat.ID})
	require.NoError(t, err)

	_, err = svc.Publish(owner, exam.ID)
	assert.Equal(t, util.ErrExamHasNoQuestions, err)

	_, err = svc.AddQuestion(owner, exam.ID, q.ID)
	require.NoError(t, err)

	_, err = svc.AddQuestion(owner, exam.ID, q.ID)
	assert.Equal(t, util.ErrQuestionAlreadyInExam, err)

	_, err = svc.Publish(stranger, exam.ID)
	assert.ErrorIs(t, err, util.ErrUnauthorized)

	published, err := svc.Publish(owner, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ExamStatusPublished, published.Status)

	_, err = svc.Publish(owner, exam.ID)
	assert.ErrorIs(t, err, util.ErrInvalidState)

	detail, err := svc.Get(exam.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ExamStatusPublished, detail.Status)
	require.Len(t, detail.QuestionItems, 1)
	assert.Equal(t, q.ID, detail.QuestionItems[0].ID)
}

func TestExamService_CreatorOnlyMutations(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newExamService(db)
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	q := testutil.CreateQuestion(t, db, cat.ID, "author", 0)
	exam := testutil.CreateExam(t, db, cat.ID, owner.UserID, model.ExamStatusDraft, 70, []string{q.ID})

	title := "renamed"
	_, err := svc.Update(stranger, exam.ID, UpdateExamReq{Title: &title})
	assert.ErrorIs(t, err, util.ErrUnauthorized)
	_, err = svc.RemoveQuestion(stranger, exam.ID, q.ID)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete(stranger, exam.ID), util.ErrUnauthorized)

	_, err = svc.RemoveQuestion(owner, exam.ID, "missing")
	assert.Equal(t, util.ErrQuestionNotInExam, err)

	updated, err := svc.RemoveQuestion(owner, exam.ID, q.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.QuestionIDs)

	updated, err = svc.Update(owner, exam.ID, UpdateExamReq{Title: &title, Questions: []string{q.ID}})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, []string{q.ID}, updated.QuestionIDs)

	require.NoError(t, svc.Delete(owner, exam.ID))
	_, err = svc.Get(exam.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestExamService_RandomAndRegenerate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newExamService(db)
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	for i := 0; i < 6; i++ {
		testutil.CreateQuestion(t, db, cat.ID, "author", 0)
	}

	exam, err := svc.CreateFromRandom(owner, RandomExamReq{Count: 4, Category: cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "Signs Assessment (4 Questions)", exam.Title)
	assert.Equal(t, model.ExamStatusDraft, exam.Status)
	assert.Equal(t, cat.ID, exam.CategoryID)
	assert.Len(t, exam.QuestionIDs, 4)

	regenerated, err := svc.Regenerate(owner, exam.ID, RegenerateReq{Count: 6})
	require.NoError(t, err)
	assert.Len(t, regenerated.QuestionIDs, 6)

	regenerated, err = svc.Regenerate(owner, exam.ID, RegenerateReq{})
	require.NoError(t, err)
	assert.Len(t, regenerated.QuestionIDs, 6)

	_, err = svc.Regenerate(stranger, exam.ID, RegenerateReq{})
	assert.ErrorIs(t, err, util.ErrUnauthorized)

	general, err := svc.CreateFromRandom(owner, RandomExamReq{Count: 2, Language: model.LanguageKinyarwanda, Title: "Custom"})
	require.NoError(t, err)
	assert.Equal(t, "Custom", general.Title)
	assert.Equal(t, cat.ID, general.CategoryID)
	assert.Len(t, general.QuestionIDs, 2)
}
