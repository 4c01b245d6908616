package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// Badge names. A badge, once earned, is never removed.
const (
	BadgePerfectScore  = "Perfect Score"
	BadgeQuickLearner  = "Quick Learner"
	BadgeModuleMaster  = "Module Master"
	BadgeContestWinner = "Contest Winner"
)

// swagger:model User
type User struct {
	BaseModel
	Name             string     `gorm:"size:100;not null" json:"name"`
	Email            string     `gorm:"size:100;unique;not null" json:"email"`
	Password         string     `gorm:"size:100;not null" json:"-"`
	Role             UserRole   `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	XP               int        `gorm:"default:0" json:"xp"`
	Level            int        `gorm:"default:1" json:"level"` // always recomputed from XP on write
	Badges           StringList `gorm:"type:json;serializer:json" json:"badges"`
	CompletedModules StringList `gorm:"type:json;serializer:json" json:"completedModules"`
	LastLogin        time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// HasBadge reports whether the user already holds the named badge.
func (u *User) HasBadge(name string) bool {
	return u.Badges.Contains(name)
}

// AddBadge appends the badge if not yet held. Adding a held badge is a no-op,
// so badge sets only ever grow.
func (u *User) AddBadge(name string) bool {
	if u.HasBadge(name) {
		return false
	}
	u.Badges = append(u.Badges, name)
	return true
}

// AddCompletedModule records a module as completed, idempotently.
func (u *User) AddCompletedModule(moduleID string) bool {
	if u.CompletedModules.Contains(moduleID) {
		return false
	}
	u.CompletedModules = append(u.CompletedModules, moduleID)
	return true
}
