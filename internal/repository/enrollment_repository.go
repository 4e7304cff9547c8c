package repository

import (
	"exam_prep_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Create 依赖 (user_id, course_id) 唯一索引，重复报名返回 gorm.ErrDuplicatedKey
func (r *EnrollmentRepository) Create(enrollment *model.CourseEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(id string) (*model.CourseEnrollment, error) {
	var enrollment model.CourseEnrollment
	err := r.DB.First(&enrollment, "id = ?", id).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindAll() ([]model.CourseEnrollment, error) {
	var enrollments []model.CourseEnrollment
	err := r.DB.Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) FindByUser(userID string, completedOnly bool) ([]model.CourseEnrollment, error) {
	q := r.DB.Where("user_id = ?", userID)
	if completedOnly {
		q = q.Where("completed_at IS NOT NULL")
	}
	var enrollments []model.CourseEnrollment
	err := q.Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID string) (*model.CourseEnrollment, error) {
	var enrollment model.CourseEnrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return &enrollment, err
}

// SetProgress 写入进度；首次达到 100 时在同一事务内设置完成时间
func (r *EnrollmentRepository) SetProgress(id string, progress float64) (*model.CourseEnrollment, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CourseEnrollment{}).
			Where("id = ?", id).
			Update("progress", progress).Error; err != nil {
			return err
		}
		if progress < 100 {
			return nil
		}
		return tx.Model(&model.CourseEnrollment{}).
			Where("id = ? AND completed_at IS NULL", id).
			Updates(map[string]interface{}{
				"status":       model.EnrollmentStatusCompleted,
				"completed_at": time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *EnrollmentRepository) MarkLessonComplete(enrollmentID, lessonID string) error {
	completion := &model.LessonCompletion{EnrollmentID: enrollmentID, LessonID: lessonID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(completion).Error
}

// CountCompletedLessons 只统计课程当前仍存在的课时
func (r *EnrollmentRepository) CountCompletedLessons(enrollmentID, courseID string) (int64, error) {
	lessons := r.DB.Model(&model.CourseLesson{}).Select("id").Where("course_id = ?", courseID)
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("enrollment_id = ? AND lesson_id IN (?)", enrollmentID, lessons).
		Count(&count).Error
	return count, err
}
