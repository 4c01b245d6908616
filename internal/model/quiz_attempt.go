package model

import "time"

// QuizAttempt is an immutable record of one graded quiz submission. The core
// only ever appends attempts; history drives badge evaluation.
type QuizAttempt struct {
	BaseModel
	ExternalID
	UserID      uint      `gorm:"index;not null" json:"userId"`
	ModuleID    uint      `gorm:"index;not null" json:"moduleId"`
	Score       int       `gorm:"not null" json:"score"`
	Total       int       `gorm:"not null" json:"total"`
	XPEarned    int       `gorm:"not null" json:"xpEarned"`
	TimeTaken   int       `gorm:"not null" json:"timeTaken"`
	AttemptedAt time.Time `gorm:"not null" json:"attemptedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// Ratio is score over total, with an empty module treated as 0 rather than a
// division fault.
func (a *QuizAttempt) Ratio() float64 {
	if a.Total <= 0 {
		return 0
	}
	return float64(a.Score) / float64(a.Total)
}
