package model

import "time"

// UnansweredOption is the sentinel a client sends for a question it skipped.
// Skipped questions neither score nor attract negative marking.
const UnansweredOption = -1

// AnswerRecord is one graded answer inside a leaderboard entry.
type AnswerRecord struct {
	QuestionID     uint `json:"questionId"`
	SelectedOption int  `json:"selectedOption"`
	IsCorrect      bool `json:"isCorrect"`
}

// LeaderboardEntry is the unique (contest, learner) participation record. It
// is created in the joined state and transitions to submitted; Rank is only
// ever written by the ranking engine.
type LeaderboardEntry struct {
	BaseModel
	ContestID   uint           `gorm:"uniqueIndex:idx_contest_user;not null" json:"contestId"`
	UserID      uint           `gorm:"uniqueIndex:idx_contest_user;not null" json:"userId"`
	Score       float64        `gorm:"default:0" json:"score"`
	Answers     []AnswerRecord `gorm:"type:json;serializer:json" json:"answers"`
	TimeTaken   int            `gorm:"default:0" json:"timeTaken"`
	IsSubmitted bool           `gorm:"default:false" json:"isSubmitted"`
	SubmittedAt *time.Time     `json:"submittedAt,omitempty"`
	Rank        *int           `json:"rank,omitempty"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
