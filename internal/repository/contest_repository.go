package repository

import (
	"learnquest_backend/internal/model"

	"gorm.io/gorm"
)

type ContestRepository struct {
	DB *gorm.DB
}

func NewContestRepository(db *gorm.DB) *ContestRepository {
	return &ContestRepository{DB: db}
}

func (r *ContestRepository) List() ([]model.Contest, error) {
	var contests []model.Contest
	err := r.DB.Order("created_at desc").Find(&contests).Error
	return contests, err
}

func (r *ContestRepository) FindByID(id uint) (*model.Contest, error) {
	var contest model.Contest
	err := r.DB.First(&contest, id).Error
	return &contest, err
}

func (r *ContestRepository) Create(contest *model.Contest) error {
	return r.DB.Create(contest).Error
}

func (r *ContestRepository) Update(contest *model.Contest) error {
	return r.DB.Save(contest).Error
}

// Delete removes the contest along with its leaderboard and any custom
// questions attached to it.
func (r *ContestRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Contest{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("contest_id = ?", id).Delete(&model.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("contest_id = ?", id).Delete(&model.Question{}).Error
	})
}

func (r *ContestRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Contest{}).Count(&count).Error
	return count, err
}
