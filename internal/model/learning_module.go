package model

// LearningModule is one unit of course content. Its question bank feeds the
// quiz grading engine and, transitively, contest pools.
type LearningModule struct {
	BaseModel
	CourseID         uint       `gorm:"index;not null" json:"courseId"`
	ModuleNo         int        `gorm:"not null" json:"moduleNo"`
	Title            string     `gorm:"size:200;not null" json:"title"`
	Context          string     `gorm:"type:text" json:"context"`
	VideoLinks       StringList `gorm:"type:json;serializer:json" json:"videoLinks"`
	GeneratedFromPDF bool       `gorm:"default:false" json:"generatedFromPdf"`
}

func (LearningModule) TableName() string {
	return "learning_modules"
}
