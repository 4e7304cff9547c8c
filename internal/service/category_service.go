package service

import (
	"context"
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type CategoryReq struct {
	CategoryName string         `json:"categoryName" binding:"required,max=100"`
	Description  string         `json:"description"`
	Language     model.Language `json:"language" binding:"omitempty,oneof=ENG FRA KIN"`
}

// UpdateCategoryReq 只修改请求中出现的字段
type UpdateCategoryReq struct {
	CategoryName *string         `json:"categoryName" binding:"omitempty,max=100"`
	Description  *string         `json:"description"`
	Language     *model.Language `json:"language" binding:"omitempty,oneof=ENG FRA KIN"`
}

type CategoryService struct {
	Repo  *repository.CategoryRepository
	Cache *repository.CategoryCache
}

func NewCategoryService(repo *repository.CategoryRepository, cache *repository.CategoryCache) *CategoryService {
	return &CategoryService{Repo: repo, Cache: cache}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	if cached, ok := s.Cache.Get(ctx); ok {
		return cached, nil
	}
	categories, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, categories)
	return categories, nil
}

func (s *CategoryService) Get(id string) (*model.Category, error) {
	category, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req CategoryReq) (*model.Category, error) {
	category := &model.Category{
		CategoryName: req.CategoryName,
		Description:  req.Description,
		Language:     req.Language,
	}
	if category.Language == "" {
		category.Language = model.LanguageKinyarwanda
	}

	if err := s.Repo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrCategoryNameExists
		}
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req UpdateCategoryReq) (*model.Category, error) {
	if req.CategoryName != nil && strings.TrimSpace(*req.CategoryName) == "" {
		return nil, util.ErrCategoryNameEmpty
	}
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.CategoryName != nil {
		category.CategoryName = *req.CategoryName
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Language != nil {
		category.Language = *req.Language
	}

	if err := s.Repo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrCategoryNameExists
		}
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

// requireCategory 校验引用的分类存在，不存在时为校验错误
func requireCategory(repo *repository.CategoryRepository, id string) (*model.Category, error) {
	category, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryReference
		}
		return nil, err
	}
	return category, nil
}
