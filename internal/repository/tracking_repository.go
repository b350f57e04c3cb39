package repository

import (
	"errors"
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type TrackingRepository struct {
	DB *gorm.DB
}

func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{DB: db}
}

func (r *TrackingRepository) Create(tracking *model.LessonTracking) error {
	return r.DB.Create(tracking).Error
}

func (r *TrackingRepository) Update(tracking *model.LessonTracking) error {
	return r.DB.Save(tracking).Error
}

func (r *TrackingRepository) FindByID(id string) (*model.LessonTracking, error) {
	var t model.LessonTracking
	if err := r.DB.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindLatestOpen 取 (user, lesson) 下最近一条未完成记录，按 start_time 倒序。
// 没有未完成记录时返回 (nil, nil)，由调用方决定是否新建。
func (r *TrackingRepository) FindLatestOpen(userID, lessonID string) (*model.LessonTracking, error) {
	var t model.LessonTracking
	err := r.DB.Where("user_id = ? AND lesson_id = ? AND completed = ?", userID, lessonID, false).
		Order("start_time DESC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByLesson 取课时的全部跟踪记录，供课时参与度聚合重算
func (r *TrackingRepository) ListByLesson(lessonID string) ([]model.LessonTracking, error) {
	var trackings []model.LessonTracking
	err := r.DB.Where("lesson_id = ?", lessonID).
		Order("start_time ASC").
		Find(&trackings).Error
	return trackings, err
}

func (r *TrackingRepository) ListByUserAndLesson(userID, lessonID string) ([]model.LessonTracking, error) {
	var trackings []model.LessonTracking
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("start_time DESC").
		Find(&trackings).Error
	return trackings, err
}
