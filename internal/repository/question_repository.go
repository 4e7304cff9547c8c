package repository

import (
	"exam_prep_backend/internal/model"
	"math/rand/v2"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// QuestionFilter 随机抽题的筛选条件，空字段表示不限制
type QuestionFilter struct {
	Language   model.Language
	CategoryID string
	Difficulty string
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(questions, 100).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Category").First(&question, "id = ?", id).Error
	return &question, err
}

// FindByIDs 按传入顺序返回，不存在的 id 被跳过
func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return []model.Question{}, nil
	}
	var rows []model.Question
	if err := r.DB.Preload("Category").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]model.Question, len(rows))
	for _, q := range rows {
		byID[q.ID] = q
	}
	ordered := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

func (r *QuestionRepository) CountExisting(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.Question{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *QuestionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Category").Order("created_at DESC").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindActiveByCategory(categoryID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Category").
		Where("category_id = ? AND status = ?", categoryID, model.QuestionStatusActive).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByCreator(userID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Preload("Category").
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Omit("Category").Save(question).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Question{}, "id = ?", id).Error
}

func (r *QuestionRepository) filtered(f QuestionFilter) *gorm.DB {
	q := r.DB.Model(&model.Question{}).
		Joins("JOIN categories ON categories.id = questions.category_id AND categories.deleted_at IS NULL").
		Where("questions.status = ?", model.QuestionStatusActive)
	if f.Language != "" {
		q = q.Where("categories.language = ?", f.Language)
	}
	if f.CategoryID != "" {
		q = q.Where("questions.category_id = ?", f.CategoryID)
	}
	if f.Difficulty != "" {
		q = q.Where("questions.difficulty = ?", f.Difficulty)
	}
	return q
}

func (r *QuestionRepository) CountMatching(f QuestionFilter) (int64, error) {
	var total int64
	err := r.filtered(f).Count(&total).Error
	return total, err
}

// Sample 无放回均匀抽取 n 道不同的题目，候选不足时全部返回
func (r *QuestionRepository) Sample(f QuestionFilter, n int) ([]model.Question, error) {
	var ids []string
	if err := r.filtered(f).Pluck("questions.id", &ids).Error; err != nil {
		return nil, err
	}
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if n < len(ids) {
		ids = ids[:n]
	}
	return r.FindByIDs(ids)
}
