package repository_test

import (
	"sync"
	"testing"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func passAll(correct int) (float64, bool) {
	return float64(correct), true
}

func startAttempt(t *testing.T, db *gorm.DB) (*repository.ExamAttemptRepository, *model.ExamAttempt, string) {
	t.Helper()
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	q := testutil.CreateQuestion(t, db, cat.ID, "author", 0)
	exam := testutil.CreateExam(t, db, cat.ID, "author", model.ExamStatusPublished, 70, []string{q.ID})

	repo := repository.NewExamAttemptRepository(db)
	attempt := &model.ExamAttempt{
		ExamID:    exam.ID,
		UserID:    "student",
		Status:    model.AttemptStatusInProgress,
		StartTime: time.Now(),
	}
	require.NoError(t, repo.Create(attempt))
	return repo, attempt, q.ID
}

func TestCompleteOnlyOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo, attempt, qid := startAttempt(t, db)

	_, err := repo.UpsertAnswer(&model.ExamAttemptAnswer{AttemptID: attempt.ID, QuestionID: qid, SelectedOption: 0, IsCorrect: true})
	require.NoError(t, err)

	completed, err := repo.Complete(attempt.ID, []string{qid}, passAll)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusCompleted, completed.Status)
	assert.Equal(t, 1.0, completed.Score)

	_, err = repo.Complete(attempt.ID, []string{qid}, func(int) (float64, bool) { return 0, false })
	assert.ErrorIs(t, err, repository.ErrAttemptClosed)

	_, err = repo.UpsertAnswer(&model.ExamAttemptAnswer{AttemptID: attempt.ID, QuestionID: qid, SelectedOption: 2})
	assert.ErrorIs(t, err, repository.ErrAttemptClosed)

	reloaded, err := repo.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, reloaded.Score)
	assert.True(t, reloaded.Passed)
	require.Len(t, reloaded.Answers, 1)
	assert.Equal(t, 0, reloaded.Answers[0].SelectedOption)
}

func TestConcurrentComplete(t *testing.T) {
	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	repo, attempt, qid := startAttempt(t, db)

	const workers = 2
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Complete(attempt.ID, []string{qid}, passAll)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrAttemptClosed)
	}
	assert.Equal(t, 1, succeeded)
}
