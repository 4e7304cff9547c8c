package service

import (
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollReq struct {
	CourseID string `json:"courseId" binding:"required"`
}

type ProgressReq struct {
	Progress *float64 `json:"progress" binding:"required,gte=0,lte=100"`
}

type EnrollmentStatus struct {
	IsEnrolled bool                    `json:"isEnrolled"`
	Enrollment *model.CourseEnrollment `json:"enrollment,omitempty"`
}

type EnrollmentService struct {
	Repo       *repository.EnrollmentRepository
	CourseRepo *repository.CourseRepository
}

func NewEnrollmentService(repo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{Repo: repo, CourseRepo: courseRepo}
}

func (s *EnrollmentService) Enroll(p model.Principal, courseID string) (*model.CourseEnrollment, error) {
	exists, err := s.CourseRepo.Exists(courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrCourseNotFound
	}

	enrollment := &model.CourseEnrollment{
		UserID:   p.UserID,
		CourseID: courseID,
		Status:   model.EnrollmentStatusActive,
	}
	if err := s.Repo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}

	logger.Log.Info("User enrolled", zap.String("userID", p.UserID), zap.String("courseID", courseID))
	return enrollment, nil
}

func (s *EnrollmentService) loadOwned(p model.Principal, id string) (*model.CourseEnrollment, error) {
	enrollment, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	if enrollment.UserID != p.UserID {
		return nil, util.ErrNotEnrollmentOwner
	}
	return enrollment, nil
}

func (s *EnrollmentService) Get(p model.Principal, id string) (*model.CourseEnrollment, error) {
	return s.loadOwned(p, id)
}

func (s *EnrollmentService) ListAll() ([]model.CourseEnrollment, error) {
	return s.Repo.FindAll()
}

func (s *EnrollmentService) ListForUser(p model.Principal) ([]model.CourseEnrollment, error) {
	return s.Repo.FindByUser(p.UserID, false)
}

func (s *EnrollmentService) ListCompleted(p model.Principal) ([]model.CourseEnrollment, error) {
	return s.Repo.FindByUser(p.UserID, true)
}

func (s *EnrollmentService) Check(p model.Principal, courseID string) (*EnrollmentStatus, error) {
	enrollment, err := s.Repo.FindByUserAndCourse(p.UserID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &EnrollmentStatus{IsEnrolled: false}, nil
		}
		return nil, err
	}
	return &EnrollmentStatus{IsEnrolled: true, Enrollment: enrollment}, nil
}

// UpdateProgress 进度范围 0..100，越界时不修改已保存的值
func (s *EnrollmentService) UpdateProgress(p model.Principal, id string, progress float64) (*model.CourseEnrollment, error) {
	if math.IsNaN(progress) || progress < 0 || progress > 100 {
		return nil, util.ErrProgressRange
	}
	enrollment, err := s.loadOwned(p, id)
	if err != nil {
		return nil, err
	}
	return s.Repo.SetProgress(enrollment.ID, progress)
}

func (s *EnrollmentService) CompleteLesson(p model.Principal, id, lessonID string) (*model.CourseEnrollment, error) {
	enrollment, err := s.loadOwned(p, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.CourseRepo.FindLesson(enrollment.CourseID, lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if err := s.Repo.MarkLessonComplete(enrollment.ID, lessonID); err != nil {
		return nil, err
	}
	return s.recalculate(enrollment)
}

// RecalculateProgress 按已完成课时占比重算进度
func (s *EnrollmentService) RecalculateProgress(p model.Principal, id string) (*model.CourseEnrollment, error) {
	enrollment, err := s.loadOwned(p, id)
	if err != nil {
		return nil, err
	}
	return s.recalculate(enrollment)
}

func (s *EnrollmentService) recalculate(enrollment *model.CourseEnrollment) (*model.CourseEnrollment, error) {
	total, err := s.CourseRepo.CountLessons(enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.Repo.CountCompletedLessons(enrollment.ID, enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	progress := 0.0
	if total > 0 {
		progress = math.Round(float64(completed) / float64(total) * 100)
	}
	return s.Repo.SetProgress(enrollment.ID, progress)
}
