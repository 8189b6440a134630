package engine

import (
	"context"

	"github.com/darumi/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EvaluateDebit is the eager failure check, run synchronously after a
// debit was recorded. It only ever fails objectives: an objective whose
// lifetime spend exceeds its target can never be completed anymore, so
// there is no reason to wait for the monthly settlement to tell the user.
//
// Objectives scoped to a category other than the debit's are skipped
// entirely, they cannot be affected by this expense. Completion is never
// decided here, that needs the window progress logic of the recheck and
// the settlement.
func (e *Engine) EvaluateDebit(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) error {
	relations, err := e.inProgressRelations(ctx, userID)
	if err != nil {
		return err
	}

	for _, relation := range relations {
		if !relation.Objective.AppliesTo(categoryID) {
			continue
		}

		// One failing objective must not block the others.
		err := e.evaluateDebitRelation(ctx, userID, relation)
		if err != nil {
			log.Warn().
				Err(err).
				Str("relation", relation.ID.String()).
				Msg("eager evaluation failed for relation")
		}
	}

	return nil
}

func (e *Engine) evaluateDebitRelation(ctx context.Context, userID uuid.UUID, relation models.UserObjective) error {
	ctx, cancel := context.WithTimeout(ctx, e.relationTimeout)
	defer cancel()

	// Lifetime-to-date spend: the eager check uses an unbounded window.
	spend, err := e.Spend(ctx, userID, relation.Objective.CategoryID, nil, nil)
	if err != nil {
		return err
	}

	if !spend.GreaterThan(relation.Objective.TargetValue) {
		return nil
	}

	_, err = e.TryTransition(ctx, relation.ID, Decision{
		Status:     models.StatusFailed,
		FinalValue: spend,
	})

	return err
}
