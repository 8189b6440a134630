package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/darumi/backend/internal/models"
	"github.com/darumi/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// settlementConcurrency bounds how many users are settled in parallel.
// Relations of a single user are always processed sequentially.
const settlementConcurrency = 4

// SettlementResult is the summary of one monthly settlement run.
type SettlementResult struct {
	Processed   int       `json:"processed"` // relations transitioned in this run
	Skipped     int       `json:"skipped"`   // relations already closed by an earlier evaluator
	Errored     int       `json:"errored"`   // relations with transient failures, left for the next run
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
}

// RunMonthlySettlement authoritatively closes every still-open relation
// over the entire previous calendar month. There is no progress gate: a
// relation that never reached 100% of the window is settled anyway.
//
// Relations already closed earlier in the month lose the CAS race in the
// executor and are skipped silently, they never receive a second score.
// Per-relation failures are counted and do not abort the batch.
func (e *Engine) RunMonthlySettlement(ctx context.Context) (SettlementResult, error) {
	period := types.MonthOf(e.now()).Previous()
	from, to := period.Bounds()

	result := SettlementResult{
		PeriodStart: from,
		PeriodEnd:   to,
	}

	var userIDs []uuid.UUID
	err := e.db.WithContext(ctx).
		Model(&models.UserObjective{}).
		Where("user_objectives.status = ?", models.StatusInProgress).
		Distinct().
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return result, err
	}

	var processed, skipped, errored atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settlementConcurrency)

	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			relations, err := e.inProgressRelations(gctx, userID)
			if err != nil {
				log.Error().
					Err(err).
					Str("user", userID.String()).
					Msg("settlement: cannot load relations for user")
				errored.Add(1)
				return nil
			}

			for _, relation := range relations {
				transition, err := e.settleRelation(gctx, userID, relation, from, to)
				if err != nil {
					log.Warn().
						Err(err).
						Str("relation", relation.ID.String()).
						Msg("settlement failed for relation")
					errored.Add(1)
					continue
				}

				if transition.Applied {
					processed.Add(1)
				} else {
					skipped.Add(1)
				}
			}

			return nil
		})
	}

	// Errors are swallowed per user, Wait only propagates a cancelled context.
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.Processed = int(processed.Load())
	result.Skipped = int(skipped.Load())
	result.Errored = int(errored.Load())

	log.Info().
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Int("errored", result.Errored).
		Str("period", period.String()).
		Msg("monthly settlement finished")

	return result, nil
}

// settleRelation closes a single relation over the settlement window.
func (e *Engine) settleRelation(ctx context.Context, userID uuid.UUID, relation models.UserObjective, from, to time.Time) (TransitionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.relationTimeout)
	defer cancel()

	spend, err := e.Spend(ctx, userID, relation.Objective.CategoryID, &from, &to)
	if err != nil {
		return TransitionResult{}, err
	}

	decision := Decision{
		Status:     models.StatusFailed,
		FinalValue: spend,
		Settlement: true,
	}
	if spend.LessThanOrEqual(relation.Objective.TargetValue) {
		decision.Status = models.StatusCompleted
	}

	return e.TryTransition(ctx, relation.ID, decision)
}
