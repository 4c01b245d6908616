package service

import (
	"errors"

	"learnquest_backend/internal/model"
	"learnquest_backend/internal/util"

	"gorm.io/gorm"
)

// ContentService serves the read-only course/module catalogue.
type ContentService struct {
	Courses CourseStore
	Modules ModuleStore
}

func NewContentService(courses CourseStore, modules ModuleStore) *ContentService {
	return &ContentService{Courses: courses, Modules: modules}
}

func (s *ContentService) ListCourses() ([]model.Course, error) {
	return s.Courses.List()
}

func (s *ContentService) ListModules() ([]model.LearningModule, error) {
	return s.Modules.List()
}

func (s *ContentService) GetModule(moduleID uint) (*model.LearningModule, error) {
	module, err := s.Modules.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}
