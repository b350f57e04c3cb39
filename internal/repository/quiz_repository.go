package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var q model.Quiz
	if err := r.DB.First(&q, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
