// Package notify delivers user-facing events to a per-user channel.
//
// The engine is agnostic to the transport: it receives a Port at
// construction time and calls Emit after a transition commits. Delivery
// is best-effort, a failing port never affects the committed transition.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventKind is the type of a user-facing event.
type EventKind string

const (
	EventObjectiveCompleted EventKind = "objective_completed"
	EventObjectiveFailed    EventKind = "objective_failed"
)

// Event is the payload pushed to the user's channel after an objective
// transition.
type Event struct {
	UserID        uuid.UUID       `json:"userId"`
	Kind          EventKind       `json:"kind"`
	ObjectiveID   uuid.UUID       `json:"objectiveId"`
	Title         string          `json:"title"`
	Status        string          `json:"status"`
	Points        int64           `json:"points"`
	BasePoints    int64           `json:"basePoints"`
	StreakBonus   int64           `json:"streakBonus"`
	CurrentStreak int64           `json:"currentStreak"`
	FinalValue    decimal.Decimal `json:"finalValue"`
	TargetValue   decimal.Decimal `json:"targetValue"`
	Message       string          `json:"message"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Port pushes events to the affected user's channel.
type Port interface {
	Emit(ctx context.Context, event Event) error
}
