package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is the scoring subject. Identity fields are managed by the account
// collaborator; TotalPoints and CurrentStreak are only ever written by the
// transition executor.
type User struct {
	DefaultModel
	Name          string `json:"name,omitempty"`
	TotalPoints   int64  `json:"totalPoints"`   // Monotonically non-decreasing
	CurrentStreak int64  `json:"currentStreak"` // Consecutive completed monthly settlements
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	return nil
}
