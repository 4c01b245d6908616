package repository

import (
	"learnquest_backend/internal/model"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

// Create appends an attempt. Attempts are immutable; there is no Update.
func (r *QuizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	attempt.EnsurePublicID()
	return r.DB.Create(attempt).Error
}

func (r *QuizAttemptRepository) FindByUserID(userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ?", userID).Order("attempted_at asc").Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).Count(&count).Error
	return count, err
}
