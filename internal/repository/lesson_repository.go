package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var l model.Lesson
	if err := r.DB.First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LessonRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
