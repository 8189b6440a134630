// Package engine implements the objective lifecycle and scoring engine.
//
// Three evaluators race to observe and close the same tracked objective:
// the eager failure check after every debit, the on-demand completion
// recheck and the authoritative monthly settlement. All of them route
// their decisions through TryTransition, which serializes them with a
// compare-and-set guard on the relation's status.
package engine

import (
	"context"
	"time"

	"github.com/darumi/backend/internal/models"
	"github.com/darumi/backend/internal/notify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// defaultRelationTimeout bounds the evaluation of a single relation in
// batch operations. A timeout is treated as a transient failure.
const defaultRelationTimeout = 10 * time.Second

// Engine evaluates tracked objectives and awards points and streaks.
type Engine struct {
	db              *gorm.DB
	port            notify.Port
	now             func() time.Time
	relationTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the engine's clock. Used in tests to pin the
// calendar month the evaluators operate on.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRelationTimeout sets the per-relation timeout for batch operations.
func WithRelationTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.relationTimeout = timeout
	}
}

// New returns an Engine using the given database handle and notification
// port.
func New(db *gorm.DB, port notify.Port, opts ...Option) *Engine {
	e := &Engine{
		db:              db,
		port:            port,
		now:             func() time.Time { return time.Now().In(time.UTC) },
		relationTimeout: defaultRelationTimeout,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// OnExpenseRecorded is the hook for the expense-write path. For debits it
// runs the eager failure check first and the completion recheck second,
// so an over-budget objective fails before a completion is considered.
// Income never transitions objectives.
func (e *Engine) OnExpenseRecorded(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, categoryID *uuid.UUID) error {
	if !amount.IsNegative() {
		return nil
	}

	if err := e.EvaluateDebit(ctx, userID, categoryID); err != nil {
		return err
	}

	_, err := e.RecheckUser(ctx, userID)
	return err
}

// inProgressRelations returns all in-progress relations of the user with
// their objectives preloaded.
func (e *Engine) inProgressRelations(ctx context.Context, userID uuid.UUID) ([]models.UserObjective, error) {
	var relations []models.UserObjective

	err := e.db.WithContext(ctx).
		Preload("Objective").
		Where("user_objectives.user_id = ?", userID).
		Where("user_objectives.status = ?", models.StatusInProgress).
		Find(&relations).Error
	if err != nil {
		return nil, err
	}

	return relations, nil
}
