package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ObjectiveStatus is the lifecycle state of a tracked objective.
type ObjectiveStatus string

const (
	StatusInProgress ObjectiveStatus = "IN_PROGRESS"
	StatusCompleted  ObjectiveStatus = "COMPLETED"
	StatusFailed     ObjectiveStatus = "FAILED"
)

// Terminal reports whether the status can never change again.
func (s ObjectiveStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// UserObjective is the tracked relation between a user and an objective.
// It is the only entity the engine transitions.
//
// FinalValue, PointsAwarded and CompletedAt are all nil while the relation
// is in progress and are all set in the same transaction that moves the
// relation to a terminal status. Once terminal, the relation is never
// mutated again.
type UserObjective struct {
	DefaultModel
	UserID        uuid.UUID           `json:"userId" gorm:"uniqueIndex:user_objective_relation"`
	User          User                `json:"-"`
	ObjectiveID   uuid.UUID           `json:"objectiveId" gorm:"uniqueIndex:user_objective_relation"`
	Objective     Objective           `json:"-"`
	Status        ObjectiveStatus     `json:"status"`
	FinalValue    decimal.NullDecimal `json:"finalValue" gorm:"type:DECIMAL(20,8)"`
	PointsAwarded *int64              `json:"pointsAwarded"`
	CompletedAt   *time.Time          `json:"completedAt"`
}

// BeforeCreate generates the UUID and sets the initial status. Relations
// are always born in progress.
func (r *UserObjective) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	if r.Status == "" {
		r.Status = StatusInProgress
	}

	return nil
}
