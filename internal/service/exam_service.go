package service

import (
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateExamReq struct {
	Title        string         `json:"title" binding:"required,max=255"`
	Description  string         `json:"description"`
	Duration     int            `json:"duration" binding:"required,min=1"`
	PassingScore int            `json:"passingScore" binding:"gte=0,lte=100"`
	Language     model.Language `json:"language" binding:"required,oneof=ENG FRA KIN"`
	Category     string         `json:"category" binding:"required"`
	Course       *string        `json:"course"`
	Questions    []string       `json:"questions"`
}

type UpdateExamReq struct {
	Title        *string         `json:"title" binding:"omitempty,max=255"`
	Description  *string         `json:"description"`
	Duration     *int            `json:"duration" binding:"omitempty,min=1"`
	PassingScore *int            `json:"passingScore" binding:"omitempty,gte=0,lte=100"`
	Language     *model.Language `json:"language" binding:"omitempty,oneof=ENG FRA KIN"`
	Category     *string         `json:"category"`
	Course       *string         `json:"course"`
	Questions    []string        `json:"questions"`
}

type ExamQuestionReq struct {
	QuestionID string `json:"questionId" binding:"required"`
}

// RandomExamReq 由随机抽题结果创建草稿试卷
type RandomExamReq struct {
	Count        int            `json:"count" binding:"omitempty,min=1,max=100"`
	Category     string         `json:"category"`
	Difficulty   string         `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Language     model.Language `json:"language" binding:"omitempty,oneof=ENG FRA KIN"`
	Title        string         `json:"title" binding:"omitempty,max=255"`
	Description  string         `json:"description"`
	PassingScore *int           `json:"passingScore" binding:"omitempty,gte=0,lte=100"`
	Course       *string        `json:"course"`
}

type RegenerateReq struct {
	Count int `json:"count" binding:"omitempty,min=1,max=100"`
}

type ExamDetail struct {
	model.Exam
	QuestionItems []model.Question `json:"questionItems"`
}

type ExamService struct {
	Repo         *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
	CourseRepo   *repository.CourseRepository
	Selector     *SelectorService
}

func NewExamService(
	repo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	categoryRepo *repository.CategoryRepository,
	courseRepo *repository.CourseRepository,
	selector *SelectorService,
) *ExamService {
	return &ExamService{
		Repo:         repo,
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		CourseRepo:   courseRepo,
		Selector:     selector,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// validateRefs 每次修改前重新校验分类、课程与题目引用
func (s *ExamService) validateRefs(categoryID string, courseID *string, questionIDs []string) error {
	if _, err := requireCategory(s.CategoryRepo, categoryID); err != nil {
		return err
	}
	if courseID != nil && *courseID != "" {
		exists, err := s.CourseRepo.Exists(*courseID)
		if err != nil {
			return err
		}
		if !exists {
			return util.ErrCourseReference
		}
	}
	if len(questionIDs) > 0 {
		found, err := s.QuestionRepo.CountExisting(questionIDs)
		if err != nil {
			return err
		}
		if found != int64(len(questionIDs)) {
			return util.ErrQuestionReference
		}
	}
	return nil
}

func (s *ExamService) find(id string) (*model.Exam, error) {
	exam, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) findOwned(p model.Principal, id string) (*model.Exam, error) {
	exam, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if exam.CreatedBy != p.UserID {
		return nil, util.ErrNotExamCreator
	}
	return exam, nil
}

func normalizeCourse(courseID *string) *string {
	if courseID == nil || *courseID == "" {
		return nil
	}
	return courseID
}

func (s *ExamService) Create(p model.Principal, req CreateExamReq) (*model.Exam, error) {
	questionIDs := dedupe(req.Questions)
	if err := s.validateRefs(req.Category, req.Course, questionIDs); err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:        req.Title,
		Description:  req.Description,
		Duration:     req.Duration,
		PassingScore: req.PassingScore,
		Language:     req.Language,
		CategoryID:   req.Category,
		CourseID:     normalizeCourse(req.Course),
		QuestionIDs:  questionIDs,
		Status:       model.ExamStatusDraft,
		CreatedBy:    p.UserID,
	}
	if err := s.Repo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) CreateFromRandom(p model.Principal, req RandomExamReq) (*model.Exam, error) {
	if req.Course != nil && *req.Course != "" {
		exists, err := s.CourseRepo.Exists(*req.Course)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, util.ErrCourseReference
		}
	}

	var descriptor *AssessmentDescriptor
	var err error
	count := ""
	if req.Count > 0 {
		count = strconv.Itoa(req.Count)
	}
	if req.Category != "" && req.Language == "" && req.Difficulty == "" {
		descriptor, err = s.Selector.RandomByCategory(req.Category, count)
	} else {
		descriptor, err = s.Selector.Random(RandomQuery{
			Count:      count,
			CategoryID: req.Category,
			Difficulty: req.Difficulty,
			Language:   string(req.Language),
		})
	}
	if err != nil {
		return nil, err
	}

	categoryID := descriptor.Category
	if categoryID == "" {
		categoryID = descriptor.Questions[0].CategoryID
	}

	exam := &model.Exam{
		Title:        descriptor.Title,
		Description:  descriptor.Description,
		Duration:     descriptor.Duration,
		PassingScore: descriptor.PassingScore,
		Language:     descriptor.Language,
		CategoryID:   categoryID,
		CourseID:     normalizeCourse(req.Course),
		QuestionIDs:  questionIDsOf(descriptor.Questions),
		Status:       model.ExamStatusDraft,
		CreatedBy:    p.UserID,
	}
	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.Description != "" {
		exam.Description = req.Description
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}

	if err := s.Repo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) Get(id string) (*ExamDetail, error) {
	exam, err := s.find(id)
	if err != nil {
		return nil, err
	}
	questions, err := s.QuestionRepo.FindByIDs(exam.QuestionIDs)
	if err != nil {
		return nil, err
	}
	return &ExamDetail{Exam: *exam, QuestionItems: questions}, nil
}

func (s *ExamService) List() ([]model.Exam, error) {
	return s.Repo.FindAll()
}

func (s *ExamService) ListByCategory(categoryID string) ([]model.Exam, error) {
	return s.Repo.FindByCategory(categoryID)
}

func (s *ExamService) ListByCourse(courseID string) ([]model.Exam, error) {
	return s.Repo.FindByCourse(courseID)
}

func (s *ExamService) ListByCreator(p model.Principal) ([]model.Exam, error) {
	return s.Repo.FindByCreator(p.UserID)
}

func (s *ExamService) Update(p model.Principal, id string, req UpdateExamReq) (*model.Exam, error) {
	exam, err := s.findOwned(p, id)
	if err != nil {
		return nil, err
	}

	categoryID := exam.CategoryID
	if req.Category != nil && *req.Category != "" {
		categoryID = *req.Category
	}
	courseID := exam.CourseID
	if req.Course != nil {
		courseID = normalizeCourse(req.Course)
	}
	questionIDs := exam.QuestionIDs
	if req.Questions != nil {
		questionIDs = dedupe(req.Questions)
	}
	if err := s.validateRefs(categoryID, courseID, questionIDs); err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Duration != nil {
		exam.Duration = *req.Duration
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}
	if req.Language != nil && *req.Language != "" {
		exam.Language = *req.Language
	}
	exam.CategoryID = categoryID
	exam.CourseID = courseID
	exam.QuestionIDs = questionIDs

	if err := s.Repo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) AddQuestion(p model.Principal, id, questionID string) (*model.Exam, error) {
	exam, err := s.findOwned(p, id)
	if err != nil {
		return nil, err
	}
	if exam.HasQuestion(questionID) {
		return nil, util.ErrQuestionAlreadyInExam
	}
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if err := s.validateRefs(exam.CategoryID, exam.CourseID, exam.QuestionIDs); err != nil {
		return nil, err
	}

	exam.QuestionIDs = append(exam.QuestionIDs, questionID)
	if err := s.Repo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) RemoveQuestion(p model.Principal, id, questionID string) (*model.Exam, error) {
	exam, err := s.findOwned(p, id)
	if err != nil {
		return nil, err
	}
	if !exam.HasQuestion(questionID) {
		return nil, util.ErrQuestionNotInExam
	}

	remaining := make([]string, 0, len(exam.QuestionIDs)-1)
	for _, qid := range exam.QuestionIDs {
		if qid != questionID {
			remaining = append(remaining, qid)
		}
	}
	if err := s.validateRefs(exam.CategoryID, exam.CourseID, remaining); err != nil {
		return nil, err
	}

	exam.QuestionIDs = remaining
	if err := s.Repo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// Publish 草稿到发布是单向的
func (s *ExamService) Publish(p model.Principal, id string) (*model.Exam, error) {
	exam, err := s.findOwned(p, id)
	if err != nil {
		return nil, err
	}
	if exam.IsPublished() {
		return nil, util.ErrExamAlreadyPublished
	}
	if len(exam.QuestionIDs) == 0 {
		return nil, util.ErrExamHasNoQuestions
	}
	if err := s.validateRefs(exam.CategoryID, exam.CourseID, exam.QuestionIDs); err != nil {
		return nil, err
	}

	ok, err := s.Repo.Publish(exam.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrExamAlreadyPublished
	}
	exam.Status = model.ExamStatusPublished
	logger.Log.Info("Exam published", zap.String("examID", exam.ID), zap.Int("questions", len(exam.QuestionIDs)))
	return exam, nil
}

// Regenerate 按试卷自身的分类和语言重新抽题并替换题目列表
func (s *ExamService) Regenerate(p model.Principal, id string, req RegenerateReq) (*model.Exam, error) {
	exam, err := s.findOwned(p, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateRefs(exam.CategoryID, exam.CourseID, nil); err != nil {
		return nil, err
	}

	count := req.Count
	if count == 0 {
		count = len(exam.QuestionIDs)
	}
	if count == 0 {
		count = s.Selector.Defaults().DefaultCount
	}

	descriptor, err := s.Selector.Random(RandomQuery{
		Count:      strconv.Itoa(count),
		CategoryID: exam.CategoryID,
		Language:   string(exam.Language),
	})
	if err != nil {
		return nil, err
	}

	exam.QuestionIDs = questionIDsOf(descriptor.Questions)
	if err := s.Repo.Update(exam); err != nil {
		return nil, err
	}
	logger.Log.Info("Exam questions regenerated", zap.String("examID", exam.ID), zap.Int("questions", len(exam.QuestionIDs)))
	return exam, nil
}

func (s *ExamService) Delete(p model.Principal, id string) error {
	if _, err := s.findOwned(p, id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func questionIDsOf(questions []model.Question) []string {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}
