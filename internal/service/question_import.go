package service

import (
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// QuestionBank YAML 题库文件，按分类分组
type QuestionBank struct {
	Categories []BankCategory `yaml:"categories"`
}

type BankCategory struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Language    model.Language `yaml:"language"`
	Questions   []BankQuestion `yaml:"questions"`
}

// BankQuestion answer 为正确选项的下标
type BankQuestion struct {
	Text        string   `yaml:"text"`
	ImageURL    string   `yaml:"image_url"`
	Options     []string `yaml:"options"`
	Answer      int      `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
	Difficulty  string   `yaml:"difficulty"`
}

type ImportResult struct {
	CategoriesCreated int `json:"categoriesCreated"`
	CategoriesReused  int `json:"categoriesReused"`
	QuestionsCreated  int `json:"questionsCreated"`
}

func ParseQuestionBank(r io.Reader) (*QuestionBank, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var bank QuestionBank
	if err := dec.Decode(&bank); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, util.Validation("Question bank is empty")
		}
		return nil, util.Validation("Invalid question bank: " + err.Error())
	}
	if err := bank.validate(); err != nil {
		return nil, err
	}
	return &bank, nil
}

func (b *QuestionBank) validate() error {
	if len(b.Categories) == 0 {
		return util.Validation("Question bank has no categories")
	}
	for _, c := range b.Categories {
		if c.Name == "" {
			return util.Validation("Question bank category name is required")
		}
		if c.Language != "" && !c.Language.Valid() {
			return util.Validation(fmt.Sprintf("%s: language must be one of ENG, FRA, KIN", c.Name))
		}
		for i, q := range c.Questions {
			if err := q.validate(); err != nil {
				return util.Validation(fmt.Sprintf("%s question %d: %s", c.Name, i+1, err.Error()))
			}
		}
	}
	return nil
}

func (q BankQuestion) validate() error {
	if q.Text == "" {
		return errors.New("text is required")
	}
	if len(q.Options) != model.AnswerOptionCount {
		return util.ErrQuestionOptionCount
	}
	if q.Answer < 0 || q.Answer >= model.AnswerOptionCount {
		return util.ErrQuestionCorrectCount
	}
	switch q.Difficulty {
	case "", model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return errors.New("difficulty must be one of Easy, Medium, Hard")
	}
	return nil
}

func (q BankQuestion) toModel(categoryID, createdBy string) model.Question {
	options := make([]model.AnswerOption, len(q.Options))
	for i, text := range q.Options {
		options[i] = model.AnswerOption{Text: text, IsCorrect: i == q.Answer}
	}
	difficulty := q.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	return model.Question{
		Text:                   q.Text,
		ImageURL:               q.ImageURL,
		AnswerOptions:          options,
		RightAnswerDescription: q.Explanation,
		Difficulty:             difficulty,
		Status:                 model.QuestionStatusActive,
		CategoryID:             categoryID,
		CreatedBy:              createdBy,
	}
}

// Import 在一个事务中写入题库；已存在的同名分类直接复用
func (s *QuestionService) Import(p model.Principal, bank *QuestionBank) (*ImportResult, error) {
	result := &ImportResult{}
	err := s.Repo.DB.Transaction(func(tx *gorm.DB) error {
		categories := repository.NewCategoryRepository(tx)
		questions := repository.NewQuestionRepository(tx)

		for _, c := range bank.Categories {
			category, err := categories.FindByName(c.Name)
			switch {
			case err == nil:
				result.CategoriesReused++
			case errors.Is(err, gorm.ErrRecordNotFound):
				category = &model.Category{CategoryName: c.Name, Description: c.Description, Language: c.Language}
				if category.Language == "" {
					category.Language = model.LanguageKinyarwanda
				}
				if err := categories.Create(category); err != nil {
					return err
				}
				result.CategoriesCreated++
			default:
				return err
			}

			batch := make([]model.Question, 0, len(c.Questions))
			for _, q := range c.Questions {
				batch = append(batch, q.toModel(category.ID, p.UserID))
			}
			if err := questions.CreateBatch(batch); err != nil {
				return err
			}
			result.QuestionsCreated += len(batch)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Question bank imported",
		zap.String("userID", p.UserID),
		zap.Int("categoriesCreated", result.CategoriesCreated),
		zap.Int("questionsCreated", result.QuestionsCreated),
	)
	return result, nil
}
