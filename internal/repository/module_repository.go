package repository

import (
	"learnquest_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) List() ([]model.LearningModule, error) {
	var modules []model.LearningModule
	err := r.DB.Order("course_id asc, module_no asc").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByID(id uint) (*model.LearningModule, error) {
	var module model.LearningModule
	err := r.DB.First(&module, id).Error
	return &module, err
}

func (r *ModuleRepository) Create(module *model.LearningModule) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) Update(module *model.LearningModule) error {
	return r.DB.Save(module).Error
}

// Delete removes the module together with its question bank.
func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.LearningModule{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("module_id = ?", id).Delete(&model.Question{}).Error
	})
}

// NextModuleNo returns the next sequential module number within a course.
func (r *ModuleRepository) NextModuleNo(courseID uint) (int, error) {
	var max *int
	err := r.DB.Model(&model.LearningModule{}).
		Where("course_id = ?", courseID).
		Select("MAX(module_no)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *ModuleRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningModule{}).Count(&count).Error
	return count, err
}
