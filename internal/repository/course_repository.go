package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByCategory(categoryID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("category_id = ?", categoryID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByInstructor(userID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", userID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// Update 仅更新课程本身，课时通过 ReplaceLessons 维护
func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Omit("Lessons").Save(course).Error
}

func (r *CourseRepository) ReplaceLessons(courseID string, lessons []model.CourseLesson) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&model.CourseLesson{}).Error; err != nil {
			return err
		}
		for i := range lessons {
			lessons[i].ID = ""
			lessons[i].CourseID = courseID
			if err := tx.Create(&lessons[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseLesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

func (r *CourseRepository) FindLesson(courseID, lessonID string) (*model.CourseLesson, error) {
	var lesson model.CourseLesson
	err := r.DB.Where("course_id = ? AND id = ?", courseID, lessonID).First(&lesson).Error
	return &lesson, err
}

func (r *CourseRepository) CountLessons(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseLesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
