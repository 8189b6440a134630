package models

import (
	"github.com/google/uuid"
)

// Notification is the persisted record of a user-facing event. It is
// written in the same transaction as the state transition it reports, so
// there is exactly one notification per transition.
type Notification struct {
	DefaultModel
	UserID      uuid.UUID `json:"userId"`
	User        User      `json:"-"`
	ObjectiveID uuid.UUID `json:"objectiveId"`
	Kind        string    `json:"kind"` // objective_completed or objective_failed
	Message     string    `json:"message"`
	Points      int64     `json:"points"`
	Read        bool      `json:"read"`
}
