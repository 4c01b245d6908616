package repository

import (
	"errors"

	"learnquest_backend/internal/model"

	"gorm.io/gorm"
)

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

func (r *LeaderboardRepository) FindEntry(contestID, userID uint) (*model.LeaderboardEntry, error) {
	var entry model.LeaderboardEntry
	err := r.DB.Where("contest_id = ? AND user_id = ?", contestID, userID).First(&entry).Error
	return &entry, err
}

// CreateIfAbsent inserts a joined-state entry unless one already exists for
// the (contest, learner) pair. The existing entry is returned untouched, so a
// repeat join can never reset a score.
func (r *LeaderboardRepository) CreateIfAbsent(entry *model.LeaderboardEntry) (*model.LeaderboardEntry, error) {
	var out *model.LeaderboardEntry
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.LeaderboardEntry
		err := tx.Where("contest_id = ? AND user_id = ?", entry.ContestID, entry.UserID).
			First(&existing).Error
		if err == nil {
			out = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		out = entry
		return nil
	})
	return out, err
}

func (r *LeaderboardRepository) Save(entry *model.LeaderboardEntry) error {
	return r.DB.Save(entry).Error
}

func (r *LeaderboardRepository) FindByContestID(contestID uint) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.DB.Where("contest_id = ?", contestID).Find(&entries).Error
	return entries, err
}

// UpdateRanks writes the recomputed rank column for every entry in one
// transaction so concurrent readers never observe a half-applied ranking.
func (r *LeaderboardRepository) UpdateRanks(entries []model.LeaderboardEntry) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			if err := tx.Model(&model.LeaderboardEntry{}).
				Where("id = ?", entries[i].ID).
				Update("rank", entries[i].Rank).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
