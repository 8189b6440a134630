package engine

import (
	"context"
	"time"

	"github.com/darumi/backend/internal/models"
	"github.com/darumi/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecheckResult summarizes an on-demand completion check.
type RecheckResult struct {
	Verified    int                `json:"verified"`
	Completed   int                `json:"completed"`
	Failed      int                `json:"failed"`
	Transitions []TransitionResult `json:"transitions"`
}

// RecheckUser re-evaluates all in-progress objectives of the user against
// the current calendar month and closes out the ones that reached 100% of
// the window. Objectives below 100% are left untouched.
//
// This check is advisory: whatever it decides, the monthly settlement
// remains the authoritative close-out.
func (e *Engine) RecheckUser(ctx context.Context, userID uuid.UUID) (RecheckResult, error) {
	var result RecheckResult

	var user models.User
	err := e.db.WithContext(ctx).First(&user, "users.id = ?", userID).Error
	if err != nil {
		return result, err
	}

	relations, err := e.inProgressRelations(ctx, userID)
	if err != nil {
		return result, err
	}

	from, to := types.MonthOf(e.now()).Bounds()

	for _, relation := range relations {
		transition, err := e.recheckRelation(ctx, userID, relation, from, to)
		if err != nil {
			log.Warn().
				Err(err).
				Str("relation", relation.ID.String()).
				Msg("recheck failed for relation")
			continue
		}

		result.Verified++

		if transition == nil || !transition.Applied {
			continue
		}

		result.Transitions = append(result.Transitions, *transition)
		switch transition.Relation.Status {
		case models.StatusCompleted:
			result.Completed++
		case models.StatusFailed:
			result.Failed++
		}
	}

	return result, nil
}

// recheckRelation evaluates a single relation against the month-to-date
// window. It returns nil when the objective has not reached 100% of the
// window yet.
func (e *Engine) recheckRelation(ctx context.Context, userID uuid.UUID, relation models.UserObjective, from, to time.Time) (*TransitionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.relationTimeout)
	defer cancel()

	spend, err := e.Spend(ctx, userID, relation.Objective.CategoryID, &from, &to)
	if err != nil {
		return nil, err
	}

	target := relation.Objective.TargetValue
	if progressPercent(spend, target) < 100 {
		return nil, nil
	}

	decision := Decision{
		Status:     models.StatusFailed,
		FinalValue: spend,
	}
	if spend.LessThanOrEqual(target) {
		decision.Status = models.StatusCompleted
		decision.Points = completionPoints(target, spend, relation.Objective.Multiplier)
	}

	transition, err := e.TryTransition(ctx, relation.ID, decision)
	if err != nil {
		return nil, err
	}

	return &transition, nil
}
