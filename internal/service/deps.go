package service

import (
	"time"

	"learnquest_backend/internal/model"
)

// Persistence surfaces consumed by the services. The gorm repositories in
// internal/repository satisfy these; tests substitute in-memory fakes.
// Services never touch a process-wide handle; every store is injected
// through the constructor.

type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	UpdateLastLogin(userID uint, at time.Time) error
	AddBadge(userID uint, badge string) error
	Count() (int64, error)
	CountByRole(role model.UserRole) (int64, error)
}

type CourseStore interface {
	List() ([]model.Course, error)
	FindByID(id uint) (*model.Course, error)
	Create(course *model.Course) error
}

type ModuleStore interface {
	List() ([]model.LearningModule, error)
	FindByID(id uint) (*model.LearningModule, error)
	Create(module *model.LearningModule) error
	Update(module *model.LearningModule) error
	Delete(id uint) error
	NextModuleNo(courseID uint) (int, error)
	Count() (int64, error)
}

type QuestionStore interface {
	FindByID(id uint) (*model.Question, error)
	FindByModuleID(moduleID uint) ([]model.Question, error)
	FindByModuleIDs(moduleIDs []uint) ([]model.Question, error)
	FindByContestID(contestID uint) ([]model.Question, error)
	Create(question *model.Question) error
	CreateBatch(questions []model.Question) error
	Update(question *model.Question) error
	Delete(id uint) error
	Count() (int64, error)
}

type AttemptStore interface {
	Create(attempt *model.QuizAttempt) error
	FindByUserID(userID uint) ([]model.QuizAttempt, error)
	Count() (int64, error)
}

type ContestStore interface {
	List() ([]model.Contest, error)
	FindByID(id uint) (*model.Contest, error)
	Create(contest *model.Contest) error
	Update(contest *model.Contest) error
	Delete(id uint) error
	Count() (int64, error)
}

type LeaderboardStore interface {
	FindEntry(contestID, userID uint) (*model.LeaderboardEntry, error)
	CreateIfAbsent(entry *model.LeaderboardEntry) (*model.LeaderboardEntry, error)
	Save(entry *model.LeaderboardEntry) error
	FindByContestID(contestID uint) ([]model.LeaderboardEntry, error)
	UpdateRanks(entries []model.LeaderboardEntry) error
}
