package model

import "time"

// Tie-break policy tags. "time" ranks equal scores by time taken ascending;
// "score" ignores time and falls through to submission order.
const (
	TieBreakTime  = "time"
	TieBreakScore = "score"
)

type Contest struct {
	BaseModel
	Title            string     `gorm:"size:200;not null" json:"title"`
	ModuleIDs        UintList   `gorm:"type:json;serializer:json" json:"moduleIds"`
	StartTime        *time.Time `json:"startTime,omitempty"` // advisory window, not enforced as a hard cutoff
	EndTime          *time.Time `json:"endTime,omitempty"`
	DurationMinutes  int        `gorm:"default:30" json:"durationMinutes"`
	MarksPerQuestion int        `gorm:"default:1" json:"marksPerQuestion"`
	NegativeMarking  float64    `gorm:"default:0" json:"negativeMarking"`
	TieBreak         string     `gorm:"size:20;default:'time'" json:"tieBreak"`
}

func (Contest) TableName() string {
	return "contests"
}

// UintList is stored as a JSON array column.
type UintList []uint
