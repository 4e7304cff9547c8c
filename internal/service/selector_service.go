package service

import (
	"errors"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// AssessmentDescriptor 随机组卷结果，不落库
type AssessmentDescriptor struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Duration      int              `json:"duration"`
	PassingScore  int              `json:"passingScore"`
	QuestionCount int              `json:"questionCount"`
	Category      string           `json:"category"`
	CategoryName  string           `json:"categoryName,omitempty"`
	Language      model.Language   `json:"language"`
	Questions     []model.Question `json:"questions"`
}

type RandomQuery struct {
	Count      string
	CategoryID string
	Difficulty string
	Language   string
}

type SelectorService struct {
	Repo         *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository

	mu       sync.RWMutex
	defaults config.AssessmentConfig
}

func NewSelectorService(repo *repository.QuestionRepository, categoryRepo *repository.CategoryRepository, defaults config.AssessmentConfig) *SelectorService {
	return &SelectorService{Repo: repo, CategoryRepo: categoryRepo, defaults: defaults}
}

// SetDefaults 配置热更新回调
func (s *SelectorService) SetDefaults(defaults config.AssessmentConfig) {
	s.mu.Lock()
	s.defaults = defaults
	s.mu.Unlock()
}

func (s *SelectorService) Defaults() config.AssessmentConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// leadingInt 取字符串开头的整数部分，"5abc" 视为 5
var leadingInt = regexp.MustCompile(`^\s*[+-]?\d+`)

// ParseCount 空值取默认数量，开头不是数字或越界为校验错误
func (s *SelectorService) ParseCount(raw string) (int, error) {
	d := s.Defaults()
	if raw == "" {
		return d.DefaultCount, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(leadingInt.FindString(raw)))
	if err != nil || n < 1 || n > d.MaxCount {
		return 0, util.ErrQuestionCountRange
	}
	return n, nil
}

func (s *SelectorService) Random(q RandomQuery) (*AssessmentDescriptor, error) {
	d := s.Defaults()
	n, err := s.ParseCount(q.Count)
	if err != nil {
		return nil, err
	}
	language := model.Language(q.Language)
	if language == "" {
		language = model.Language(d.DefaultLanguage)
	}

	questions, err := s.draw(repository.QuestionFilter{
		Language:   language,
		CategoryID: q.CategoryID,
		Difficulty: q.Difficulty,
	}, n, util.ErrNoQuestionsMatch)
	if err != nil {
		return nil, err
	}

	name := language.DisplayName()
	return &AssessmentDescriptor{
		Title:         fmt.Sprintf("General Assessment (%d Questions) - %s", len(questions), name),
		Description:   fmt.Sprintf("Custom general assessment with mixed questions in %s", name),
		Duration:      len(questions),
		PassingScore:  d.PassingScore,
		QuestionCount: len(questions),
		Category:      q.CategoryID,
		Language:      language,
		Questions:     questions,
	}, nil
}

func (s *SelectorService) RandomByCategory(categoryID, rawCount string) (*AssessmentDescriptor, error) {
	n, err := s.ParseCount(rawCount)
	if err != nil {
		return nil, err
	}
	category, err := s.CategoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	questions, err := s.draw(repository.QuestionFilter{CategoryID: category.ID}, n, util.ErrNoQuestionsInCategory)
	if err != nil {
		return nil, err
	}

	return &AssessmentDescriptor{
		Title:         fmt.Sprintf("%s Assessment (%d Questions)", category.CategoryName, len(questions)),
		Description:   fmt.Sprintf("Random questions from %s category", category.CategoryName),
		Duration:      len(questions),
		PassingScore:  s.Defaults().PassingScore,
		QuestionCount: len(questions),
		Category:      category.ID,
		CategoryName:  category.CategoryName,
		Language:      category.Language,
		Questions:     questions,
	}, nil
}

// draw 先计数再抽样，数量上限为可用题目数
func (s *SelectorService) draw(f repository.QuestionFilter, n int, empty error) ([]model.Question, error) {
	total, err := s.Repo.CountMatching(f)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, empty
	}
	if int64(n) > total {
		n = int(total)
	}
	return s.Repo.Sample(f, n)
}
