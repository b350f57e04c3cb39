package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) FindByID(id string) (*model.Exercise, error) {
	var e model.Exercise
	if err := r.DB.First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExerciseRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Exercise{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
