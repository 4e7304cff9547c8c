package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, "id = ?", id).Error
	return &exam, err
}

func (r *ExamRepository) FindAll() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Order("created_at DESC").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) FindByCategory(categoryID string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("category_id = ?", categoryID).Order("created_at DESC").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) FindByCourse(courseID string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("course_id = ?", courseID).Order("created_at DESC").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) FindByCreator(userID string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("created_by = ?", userID).Order("created_at DESC").Find(&exams).Error
	return exams, err
}

// Update 写回除状态外的全部字段，状态只经 Publish 变更
func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Model(exam).Select("*").Omit("status", "created_at").Updates(exam).Error
}

// Publish 仅草稿状态可发布，返回是否发生状态变更
func (r *ExamRepository) Publish(id string) (bool, error) {
	res := r.DB.Model(&model.Exam{}).
		Where("id = ? AND status = ?", id, model.ExamStatusDraft).
		Update("status", model.ExamStatusPublished)
	return res.RowsAffected == 1, res.Error
}

func (r *ExamRepository) Delete(id string) error {
	return r.DB.Delete(&model.Exam{}, "id = ?", id).Error
}
