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

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db))
}

func TestEnrollmentService_DuplicateEnrollment(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newEnrollmentService(db)
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	course := testutil.CreateCourse(t, db, cat.ID, "instructor", 2)

	_, err := svc.Enroll(owner, course.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(owner, course.ID)
	assert.Equal(t, util.ErrAlreadyEnrolled, err)

	var count int64
	require.NoError(t, db.Model(&model.CourseEnrollment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.Enroll(owner, "missing")
	assert.ErrorIs(t, err, util.ErrNotFound)

	status, err := svc.Check(owner, course.ID)
	require.NoError(t, err)
	assert.True(t, status.IsEnrolled)

	status, err = svc.Check(stranger, course.ID)
	require.NoError(t, err)
	assert.False(t, status.IsEnrolled)
}

func TestEnrollmentService_ProgressRange(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newEnrollmentService(db)
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	course := testutil.CreateCourse(t, db, cat.ID, "instructor", 1)

	enrollment, err := svc.Enroll(owner, course.ID)
	require.NoError(t, err)

	_, err = svc.UpdateProgress(owner, enrollment.ID, 40)
	require.NoError(t, err)

	for _, bad := range []float64{150, -1, 100.5} {
		_, err = svc.UpdateProgress(owner, enrollment.ID, bad)
		assert.Equal(t, util.ErrProgressRange, err)
	}

	_, err = svc.UpdateProgress(stranger, enrollment.ID, 50)
	assert.ErrorIs(t, err, util.ErrUnauthorized)

	stored, err := svc.Get(owner, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, stored.Progress)
	assert.Equal(t, model.EnrollmentStatusActive, stored.Status)
	assert.Nil(t, stored.CompletedAt)
}

func TestEnrollmentService_CompletionMarkedOnce(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newEnrollmentService(db)
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	course := testutil.CreateCourse(t, db, cat.ID, "instructor", 1)

	enrollment, err := svc.Enroll(owner, course.ID)
	require.NoError(t, err)

	done, err := svc.UpdateProgress(owner, enrollment.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	first := *done.CompletedAt

	again, err := svc.UpdateProgress(owner, enrollment.ID, 100)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, first.Equal(*again.CompletedAt))

	completed, err := svc.ListCompleted(owner)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}

func TestEnrollmentService_LessonCompletion(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newEnrollmentService(db)
	cat := testutil.CreateCategory(t, db, "Signs", model.LanguageKinyarwanda)
	course := testutil.CreateCourse(t, db, cat.ID, "instructor", 3)
	other := testutil.CreateCourse(t, db, cat.ID, "instructor", 1)

	enrollment, err := svc.Enroll(owner, course.ID)
	require.NoError(t, err)

	updated, err := svc.CompleteLesson(owner, enrollment.ID, course.Lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 33.0, updated.Progress)

	// 重复完成同一课时不改变进度
	updated, err = svc.CompleteLesson(owner, enrollment.ID, course.Lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 33.0, updated.Progress)

	_, err = svc.CompleteLesson(owner, enrollment.ID, other.Lessons[0].ID)
	assert.Equal(t, util.ErrLessonNotFound, err)

	_, err = svc.CompleteLesson(owner, enrollment.ID, course.Lessons[1].ID)
	require.NoError(t, err)
	updated, err = svc.CompleteLesson(owner, enrollment.ID, course.Lessons[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, updated.Progress)
	assert.Equal(t, model.EnrollmentStatusCompleted, updated.Status)

	recalculated, err := svc.RecalculateProgress(owner, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, recalculated.Progress)

	_, err = svc.RecalculateProgress(stranger, enrollment.ID)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}
