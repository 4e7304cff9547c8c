package repository

import (
	"errors"
	"exam_prep_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAttemptClosed 条件更新未命中，作答已不处于进行中
var ErrAttemptClosed = errors.New("attempt is no longer in progress")

type ExamAttemptRepository struct {
	DB *gorm.DB
}

func NewExamAttemptRepository(db *gorm.DB) *ExamAttemptRepository {
	return &ExamAttemptRepository{DB: db}
}

type AttemptFilter struct {
	ExamID     string
	Status     string
	PassedOnly bool
}

func (r *ExamAttemptRepository) Create(attempt *model.ExamAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *ExamAttemptRepository) FindByID(id string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&attempt, "id = ?", id).Error
	return &attempt, err
}

func (r *ExamAttemptRepository) FindByUser(userID string, f AttemptFilter) ([]model.ExamAttempt, error) {
	q := r.DB.Preload("Answers").Where("user_id = ?", userID)
	if f.ExamID != "" {
		q = q.Where("exam_id = ?", f.ExamID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PassedOnly {
		q = q.Where("passed = ?", true)
	}
	var attempts []model.ExamAttempt
	err := q.Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}

// touchInProgress 对进行中的作答做条件更新，未命中时返回 ErrAttemptClosed
func touchInProgress(tx *gorm.DB, attemptID string, values map[string]interface{}) error {
	res := tx.Model(&model.ExamAttempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusInProgress).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAttemptClosed
	}
	return nil
}

// UpsertAnswer 同一题目重复作答时覆盖之前的答案
func (r *ExamAttemptRepository) UpsertAnswer(answer *model.ExamAttemptAnswer) (*model.ExamAttemptAnswer, error) {
	var saved model.ExamAttemptAnswer
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := touchInProgress(tx, answer.AttemptID, map[string]interface{}{"updated_at": time.Now()}); err != nil {
			return err
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"selected_option", "is_correct", "updated_at"}),
		}).Create(answer).Error
		if err != nil {
			return err
		}

		return tx.Where("attempt_id = ? AND question_id = ?", answer.AttemptID, answer.QuestionID).
			First(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Grader 根据答对题数计算分数和是否通过
type Grader func(correct int) (score float64, passed bool)

// Complete 将作答由进行中切换为已完成并在同一事务内计分，只有一次调用能成功
func (r *ExamAttemptRepository) Complete(attemptID string, questionIDs []string, grade Grader) (*model.ExamAttempt, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := touchInProgress(tx, attemptID, map[string]interface{}{
			"status":   model.AttemptStatusCompleted,
			"end_time": now,
		}); err != nil {
			return err
		}

		var correct int64
		if len(questionIDs) > 0 {
			if err := tx.Model(&model.ExamAttemptAnswer{}).
				Where("attempt_id = ? AND is_correct = ? AND question_id IN ?", attemptID, true, questionIDs).
				Count(&correct).Error; err != nil {
				return err
			}
		}

		score, passed := grade(int(correct))
		return tx.Model(&model.ExamAttempt{}).
			Where("id = ?", attemptID).
			Updates(map[string]interface{}{"score": score, "passed": passed}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(attemptID)
}
