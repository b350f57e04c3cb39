package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

// AttemptFilter listAttempts 的查询条件
type AttemptFilter struct {
	QuizID   string
	LessonID string
	Limit    int
}

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create 追加一条尝试记录。尝试流水只追加，不提供更新和删除。
func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.Attempt, error) {
	var a model.Attempt
	if err := r.DB.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) ListByUser(userID string, filter AttemptFilter) ([]model.Attempt, error) {
	query := r.DB.Where("user_id = ?", userID)

	if filter.QuizID != "" {
		query = query.Where("subject_id = ? AND subject_type = ?", filter.QuizID, model.SubjectQuiz)
	}
	if filter.LessonID != "" {
		query = query.Where("lesson_id = ?", filter.LessonID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var attempts []model.Attempt
	err := query.Order("created_at DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}

// ListBySubject 取某测验/练习的全部尝试，按创建时间升序，供统计和排行榜现算
func (r *AttemptRepository) ListBySubject(subjectID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("subject_id = ?", subjectID).
		Order("created_at ASC").
		Find(&attempts).Error
	return attempts, err
}

// ListQuizAttempts 取测验类尝试，userID/quizID 任一为空表示不过滤该维度
func (r *AttemptRepository) ListQuizAttempts(userID, quizID string) ([]model.Attempt, error) {
	query := r.DB.Where("subject_type = ?", model.SubjectQuiz)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if quizID != "" {
		query = query.Where("subject_id = ?", quizID)
	}

	var attempts []model.Attempt
	err := query.Order("created_at ASC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountByLesson(lessonID string, subjectType model.SubjectType) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("lesson_id = ? AND subject_type = ?", lessonID, subjectType).
		Count(&count).Error
	return count, err
}
