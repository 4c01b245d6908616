package model

// Question provenance.
const (
	QuestionSourceManual        = "manual"
	QuestionSourcePDF           = "pdf"
	QuestionSourceCustomContest = "custom_contest"
)

// Question belongs to exactly one module or exactly one contest, never both.
// CorrectAnswer is the zero-based index into Options.
type Question struct {
	BaseModel
	ModuleID      *uint      `gorm:"index" json:"moduleId,omitempty"`
	ContestID     *uint      `gorm:"index" json:"contestId,omitempty"`
	Prompt        string     `gorm:"type:text;not null" json:"question"`
	Options       StringList `gorm:"type:json;serializer:json" json:"options"`
	CorrectAnswer int        `gorm:"not null" json:"correctAnswer"`
	Difficulty    string     `gorm:"size:20;default:'easy'" json:"difficulty"`
	Source        string     `gorm:"size:30;default:'manual'" json:"source"`
}

func (Question) TableName() string {
	return "questions"
}

// Valid ownership means exactly one of ModuleID/ContestID is set.
func (q *Question) OwnedByModule() bool {
	return q.ModuleID != nil && q.ContestID == nil
}

func (q *Question) OwnedByContest() bool {
	return q.ContestID != nil && q.ModuleID == nil
}
