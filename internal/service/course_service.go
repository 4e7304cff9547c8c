package service

import (
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
)

type LessonReq struct {
	Title       string `json:"title" binding:"required,max=255"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl"`
	DocumentURL string `json:"documentUrl"`
}

type CourseReq struct {
	Title        string      `json:"title" binding:"required,max=255"`
	Description  string      `json:"description"`
	Language     string      `json:"language" binding:"omitempty,max=50"`
	Category     string      `json:"category" binding:"required"`
	ThumbnailURL string      `json:"thumbnailUrl"`
	IsPublished  bool        `json:"isPublished"`
	Lessons      []LessonReq `json:"lessons" binding:"omitempty,dive"`
}

type CourseService struct {
	Repo         *repository.CourseRepository
	CategoryRepo *repository.CategoryRepository
}

func NewCourseService(repo *repository.CourseRepository, categoryRepo *repository.CategoryRepository) *CourseService {
	return &CourseService{Repo: repo, CategoryRepo: categoryRepo}
}

func toLessons(reqs []LessonReq) []model.CourseLesson {
	lessons := make([]model.CourseLesson, 0, len(reqs))
	for i, l := range reqs {
		lessons = append(lessons, model.CourseLesson{
			Title:       l.Title,
			Content:     l.Content,
			VideoURL:    l.VideoURL,
			DocumentURL: l.DocumentURL,
			Order:       i + 1,
		})
	}
	return lessons
}

func (s *CourseService) Create(p model.Principal, req CourseReq) (*model.Course, error) {
	if _, err := requireCategory(s.CategoryRepo, req.Category); err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Language:     req.Language,
		CategoryID:   req.Category,
		InstructorID: p.UserID,
		ThumbnailURL: req.ThumbnailURL,
		IsPublished:  req.IsPublished,
		Lessons:      toLessons(req.Lessons),
	}
	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(id string) (*model.Course, error) {
	course, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List() ([]model.Course, error) {
	return s.Repo.FindAll()
}

func (s *CourseService) ListByCategory(categoryID string) ([]model.Course, error) {
	return s.Repo.FindByCategory(categoryID)
}

func (s *CourseService) ListByInstructor(p model.Principal) ([]model.Course, error) {
	return s.Repo.FindByInstructor(p.UserID)
}

// Update 请求中带 lessons 时整体替换课时列表
func (s *CourseService) Update(p model.Principal, id string, req CourseReq) (*model.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != p.UserID {
		return nil, util.ErrNotCourseOwner
	}
	if _, err := requireCategory(s.CategoryRepo, req.Category); err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Language = req.Language
	course.CategoryID = req.Category
	course.ThumbnailURL = req.ThumbnailURL
	course.IsPublished = req.IsPublished
	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}

	if req.Lessons != nil {
		if err := s.Repo.ReplaceLessons(course.ID, toLessons(req.Lessons)); err != nil {
			return nil, err
		}
	}
	return s.Get(course.ID)
}

func (s *CourseService) Delete(p model.Principal, id string) error {
	course, err := s.Get(id)
	if err != nil {
		return err
	}
	if course.InstructorID != p.UserID {
		return util.ErrNotCourseOwner
	}
	return s.Repo.Delete(id)
}
