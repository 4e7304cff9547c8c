package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// Create 依赖 category_name 唯一索引，重名时返回 gorm.ErrDuplicatedKey
func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindByID(id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, "id = ?", id).Error
	return &category, err
}

func (r *CategoryRepository) FindByName(name string) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, "category_name = ?", name).Error
	return &category, err
}

func (r *CategoryRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("category_name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(category *model.Category) error {
	return r.DB.Save(category).Error
}

// Delete 物理删除，释放唯一索引上的名称
func (r *CategoryRepository) Delete(id string) error {
	return r.DB.Unscoped().Delete(&model.Category{}, "id = ?", id).Error
}
