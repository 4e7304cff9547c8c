package service

import (
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateQuestionReq struct {
	Text                   string               `json:"text" binding:"required"`
	ImageURL               string               `json:"imageUrl"`
	AnswerOptions          []model.AnswerOption `json:"answerOptions" binding:"required"`
	RightAnswerDescription string               `json:"rightAnswerDescription"`
	Difficulty             string               `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Status                 string               `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Category               string               `json:"category" binding:"required"`
}

// UpdateQuestionReq 指针字段为 nil 表示不修改
type UpdateQuestionReq struct {
	Text                   *string              `json:"text"`
	ImageURL               *string              `json:"imageUrl"`
	AnswerOptions          []model.AnswerOption `json:"answerOptions"`
	RightAnswerDescription *string              `json:"rightAnswerDescription"`
	Difficulty             *string              `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Status                 *string              `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Category               *string              `json:"category"`
}

type QuestionService struct {
	Repo         *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
}

func NewQuestionService(repo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository) *QuestionService {
	return &QuestionService{Repo: repo, CategoryRepo: categoryRepo}
}

func validateOptions(options []model.AnswerOption) error {
	countOK, correctOK := model.ValidateAnswerOptions(options)
	if !countOK {
		return util.ErrQuestionOptionCount
	}
	if !correctOK {
		return util.ErrQuestionCorrectCount
	}
	return nil
}

func (s *QuestionService) Create(p model.Principal, req CreateQuestionReq) (*model.Question, error) {
	if _, err := requireCategory(s.CategoryRepo, req.Category); err != nil {
		return nil, err
	}
	if err := validateOptions(req.AnswerOptions); err != nil {
		return nil, err
	}

	question := &model.Question{
		Text:                   req.Text,
		ImageURL:               req.ImageURL,
		AnswerOptions:          req.AnswerOptions,
		RightAnswerDescription: req.RightAnswerDescription,
		Difficulty:             req.Difficulty,
		Status:                 req.Status,
		CategoryID:             req.Category,
		CreatedBy:              p.UserID,
	}
	if question.Difficulty == "" {
		question.Difficulty = model.DifficultyMedium
	}
	if question.Status == "" {
		question.Status = model.QuestionStatusActive
	}

	if err := s.Repo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Get(id string) (*model.Question, error) {
	question, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) List() ([]model.Question, error) {
	return s.Repo.FindAll()
}

func (s *QuestionService) ListByCategory(categoryID string) ([]model.Question, error) {
	return s.Repo.FindActiveByCategory(categoryID)
}

func (s *QuestionService) ListByCreator(p model.Principal) ([]model.Question, error) {
	return s.Repo.FindByCreator(p.UserID)
}

// Update 全部校验通过后才修改字段，失败时不落库
func (s *QuestionService) Update(p model.Principal, id string, req UpdateQuestionReq) (*model.Question, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if question.CreatedBy != p.UserID {
		return nil, util.ErrNotQuestionCreator
	}

	if req.Category != nil && *req.Category != question.CategoryID {
		if _, err := requireCategory(s.CategoryRepo, *req.Category); err != nil {
			return nil, err
		}
	}
	if req.AnswerOptions != nil {
		if err := validateOptions(req.AnswerOptions); err != nil {
			return nil, err
		}
	}

	if req.Text != nil && *req.Text != "" {
		question.Text = *req.Text
	}
	if req.ImageURL != nil {
		question.ImageURL = *req.ImageURL
	}
	if req.AnswerOptions != nil {
		question.AnswerOptions = req.AnswerOptions
	}
	if req.RightAnswerDescription != nil {
		question.RightAnswerDescription = *req.RightAnswerDescription
	}
	if req.Difficulty != nil && *req.Difficulty != "" {
		question.Difficulty = *req.Difficulty
	}
	if req.Status != nil && *req.Status != "" {
		question.Status = *req.Status
	}
	if req.Category != nil && *req.Category != "" {
		question.CategoryID = *req.Category
		question.Category = nil
	}

	if err := s.Repo.Update(question); err != nil {
		return nil, err
	}
	logger.Log.Debug("Question updated", zap.String("questionID", question.ID))
	return question, nil
}

func (s *QuestionService) Delete(p model.Principal, id string) error {
	question, err := s.Get(id)
	if err != nil {
		return err
	}
	if question.CreatedBy != p.UserID {
		return util.ErrNotQuestionCreator
	}
	return s.Repo.Delete(id)
}
