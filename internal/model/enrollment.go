package model

import "time"

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
)

// swagger:model CourseEnrollment
type CourseEnrollment struct {
	UUIDBase
	UserID      string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course" json:"user"`
	CourseID    string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course" json:"course"`
	Progress    float64    `gorm:"default:0" json:"progress"`
	Status      string     `gorm:"size:20;default:'active'" json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}

type LessonCompletion struct {
	UUIDBase
	EnrollmentID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_lesson" json:"enrollment"`
	LessonID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_lesson" json:"lesson"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
