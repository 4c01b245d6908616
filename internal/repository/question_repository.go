package repository

import (
	"learnquest_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	return &question, err
}

func (r *QuestionRepository) FindByModuleID(moduleID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("module_id = ?", moduleID).Order("id asc").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByModuleIDs(moduleIDs []uint) ([]model.Question, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	var questions []model.Question
	err := r.DB.Where("module_id IN ?", moduleIDs).Order("id asc").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByContestID(contestID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("contest_id = ?", contestID).Order("id asc").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuestionRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Count(&count).Error
	return count, err
}
