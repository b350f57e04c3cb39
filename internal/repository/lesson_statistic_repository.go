package repository

import (
	"errors"
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonStatisticRepository struct {
	DB *gorm.DB
}

func NewLessonStatisticRepository(db *gorm.DB) *LessonStatisticRepository {
	return &LessonStatisticRepository{DB: db}
}

// Upsert 按课时覆写聚合结果
func (r *LessonStatisticRepository) Upsert(stat *model.LessonStatistic) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"view_count",
			"completion_count",
			"average_progress",
			"total_time_seconds",
			"exercise_attempt_count",
			"computed_at",
			"updated_at",
		}),
	}).Create(stat).Error
}

func (r *LessonStatisticRepository) FindByLesson(lessonID string) (*model.LessonStatistic, error) {
	var s model.LessonStatistic
	err := r.DB.First(&s, "lesson_id = ?", lessonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
