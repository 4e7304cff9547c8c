package service

import (
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StartAttemptReq struct {
	ExamID string `json:"examId" binding:"required"`
}

type SubmitAnswerReq struct {
	AttemptID      string `json:"attemptId" binding:"required"`
	QuestionID     string `json:"questionId" binding:"required"`
	SelectedOption *int   `json:"selectedOption" binding:"required,min=0,max=3"`
}

// AttemptListFilter 列表筛选：全部 / 已完成 / 已通过
type AttemptListFilter string

const (
	AttemptsAll       AttemptListFilter = "all"
	AttemptsCompleted AttemptListFilter = "completed"
	AttemptsPassed    AttemptListFilter = "passed"
)

type ExamAttemptService struct {
	Repo         *repository.ExamAttemptRepository
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
}

func NewExamAttemptService(
	repo *repository.ExamAttemptRepository,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
) *ExamAttemptService {
	return &ExamAttemptService{Repo: repo, ExamRepo: examRepo, QuestionRepo: questionRepo}
}

var hundred = decimal.NewFromInt(100)

// Score 百分制，四舍五入保留两位小数；试卷没有题目时得分为 0
func Score(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(correct)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}

func (s *ExamAttemptService) findExam(id string) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamAttemptService) Start(p model.Principal, examID string) (*model.ExamAttempt, error) {
	exam, err := s.findExam(examID)
	if err != nil {
		return nil, err
	}
	if !exam.IsPublished() {
		return nil, util.ErrExamNotPublished
	}

	attempt := &model.ExamAttempt{
		ExamID:    exam.ID,
		UserID:    p.UserID,
		Status:    model.AttemptStatusInProgress,
		StartTime: time.Now(),
		Answers:   []model.ExamAttemptAnswer{},
	}
	if err := s.Repo.Create(attempt); err != nil {
		return nil, err
	}

	monitoring.AttemptsStarted.Inc()
	logger.Log.Info("Exam attempt started",
		zap.String("attemptID", attempt.ID),
		zap.String("examID", exam.ID),
		zap.String("userID", p.UserID),
	)
	return attempt, nil
}

// loadOwned 校验作答存在且属于当前用户
func (s *ExamAttemptService) loadOwned(p model.Principal, id string) (*model.ExamAttempt, error) {
	attempt, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != p.UserID {
		return nil, util.ErrNotAttemptOwner
	}
	return attempt, nil
}

func (s *ExamAttemptService) SubmitAnswer(p model.Principal, req SubmitAnswerReq) (*model.ExamAttemptAnswer, error) {
	attempt, err := s.loadOwned(p, req.AttemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return nil, util.ErrAttemptNotInProgress
	}
	selected := *req.SelectedOption
	if selected < 0 || selected >= model.AnswerOptionCount {
		return nil, util.ErrOptionOutOfRange
	}

	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	exam, err := s.findExam(attempt.ExamID)
	if err != nil {
		return nil, err
	}
	if !exam.HasQuestion(question.ID) {
		return nil, util.ErrQuestionNotInExam
	}

	isCorrect := selected < len(question.AnswerOptions) && question.AnswerOptions[selected].IsCorrect
	answer, err := s.Repo.UpsertAnswer(&model.ExamAttemptAnswer{
		AttemptID:      attempt.ID,
		QuestionID:     question.ID,
		SelectedOption: selected,
		IsCorrect:      isCorrect,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAttemptClosed) {
			return nil, util.ErrAttemptNotInProgress
		}
		return nil, err
	}
	return answer, nil
}

func (s *ExamAttemptService) Complete(p model.Principal, id string) (*model.ExamAttempt, error) {
	attempt, err := s.loadOwned(p, id)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptStatusInProgress {
		return nil, util.ErrAttemptNotInProgress
	}
	exam, err := s.findExam(attempt.ExamID)
	if err != nil {
		return nil, err
	}

	total := len(exam.QuestionIDs)
	completed, err := s.Repo.Complete(attempt.ID, exam.QuestionIDs, func(correct int) (float64, bool) {
		score := Score(correct, total)
		return score, score >= float64(exam.PassingScore)
	})
	if err != nil {
		if errors.Is(err, repository.ErrAttemptClosed) {
			return nil, util.ErrAttemptNotInProgress
		}
		return nil, err
	}

	monitoring.ObserveAttemptCompleted(completed.Score, completed.Passed)
	logger.Log.Info("Exam attempt completed",
		zap.String("attemptID", completed.ID),
		zap.String("examID", exam.ID),
		zap.Float64("score", completed.Score),
		zap.Bool("passed", completed.Passed),
	)
	return completed, nil
}

func (s *ExamAttemptService) Get(p model.Principal, id string) (*model.ExamAttempt, error) {
	return s.loadOwned(p, id)
}

func (s *ExamAttemptService) List(p model.Principal, filter AttemptListFilter) ([]model.ExamAttempt, error) {
	var f repository.AttemptFilter
	switch filter {
	case AttemptsCompleted:
		f.Status = model.AttemptStatusCompleted
	case AttemptsPassed:
		f.Status = model.AttemptStatusCompleted
		f.PassedOnly = true
	}
	return s.Repo.FindByUser(p.UserID, f)
}

// ListForExam 当前用户在某试卷下的全部作答
func (s *ExamAttemptService) ListForExam(p model.Principal, examID string) ([]model.ExamAttempt, error) {
	if _, err := s.findExam(examID); err != nil {
		return nil, err
	}
	return s.Repo.FindByUser(p.UserID, repository.AttemptFilter{ExamID: examID})
}
