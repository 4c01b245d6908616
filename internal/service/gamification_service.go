package service

import (
	"errors"

	"learnquest_backend/internal/model"
	"learnquest_backend/internal/util"

	"gorm.io/gorm"
)

// GamificationService exposes the learner-facing progression reads: profile
// and attempt history with derived XP/level.
type GamificationService struct {
	Users    UserStore
	Attempts AttemptStore
}

func NewGamificationService(users UserStore, attempts AttemptStore) *GamificationService {
	return &GamificationService{Users: users, Attempts: attempts}
}

type AttemptView struct {
	ModuleID    uint   `json:"moduleId"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	XPEarned    int    `json:"xpEarned"`
	TimeTaken   int    `json:"timeTaken"`
	AttemptedAt string `json:"attemptedAt"`
}

type ProgressView struct {
	TotalXP     int           `json:"totalXp"`
	Level       int           `json:"level"`
	NextLevelXP int           `json:"nextLevelXp"`
	Attempts    []AttemptView `json:"attempts"`
}

func (s *GamificationService) Profile(userID uint) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Progress derives total XP and level from the attempt history itself, so
// the report stays consistent even if the learner document lags a write.
func (s *GamificationService) Progress(userID uint) (*ProgressView, error) {
	if _, err := s.Profile(userID); err != nil {
		return nil, err
	}

	attempts, err := s.Attempts.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	totalXP := 0
	views := make([]AttemptView, len(attempts))
	for i, a := range attempts {
		totalXP += a.XPEarned
		views[i] = AttemptView{
			ModuleID:    a.ModuleID,
			Score:       a.Score,
			Total:       a.Total,
			XPEarned:    a.XPEarned,
			TimeTaken:   a.TimeTaken,
			AttemptedAt: a.AttemptedAt.UTC().Format(util.TimeFormat),
		}
	}

	return &ProgressView{
		TotalXP:     totalXP,
		Level:       LevelForXP(totalXP),
		NextLevelXP: NextLevelXP(totalXP),
		Attempts:    views,
	}, nil
}
