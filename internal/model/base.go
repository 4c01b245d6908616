package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ExternalID is attached to records exposed to clients that should not leak
// sequential database ids (attempt receipts, upload references).
type ExternalID struct {
	PublicID string `gorm:"size:36;uniqueIndex" json:"publicId"`
}

func (e *ExternalID) EnsurePublicID() {
	if e.PublicID == "" {
		e.PublicID = uuid.New().String()
	}
}
