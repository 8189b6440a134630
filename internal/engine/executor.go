package engine

import (
	"context"
	"fmt"

	"github.com/darumi/backend/internal/models"
	"github.com/darumi/backend/internal/notify"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransitionResult reports the outcome of a transition attempt.
type TransitionResult struct {
	// Applied is false when the relation was already terminal. This is a
	// benign outcome, not an error: the caller lost the race against
	// another evaluator.
	Applied  bool                 `json:"applied"`
	Relation models.UserObjective `json:"relation"`
}

// TryTransition atomically applies a decision to a relation.
//
// The whole transition is one unit of work: the relation row, the user's
// points and streak and the notification record are committed together or
// not at all. The conditional update on status = IN_PROGRESS is the
// compare-and-set guard that serializes the concurrent evaluators; a
// relation can only be scored once.
//
// The event push happens after the commit and is best-effort. A sink
// failure is logged and never rolls back or fails the transition.
func (e *Engine) TryTransition(ctx context.Context, relationID uuid.UUID, decision Decision) (TransitionResult, error) {
	var relation models.UserObjective
	var event notify.Event
	applied := false

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Objective").First(&relation, "user_objectives.id = ?", relationID).Error
		if err != nil {
			return err
		}

		if relation.Status.Terminal() {
			return nil
		}

		var user models.User
		err = tx.First(&user, "users.id = ?", relation.UserID).Error
		if err != nil {
			return err
		}

		points := decision.Points
		basePoints := int64(0)
		streakBonus := int64(0)
		streak := user.CurrentStreak

		if decision.Settlement {
			// The streak is read and rewritten in the same unit of work,
			// so it inherits the CAS serialization of the relation.
			if decision.Status == models.StatusCompleted {
				streak = user.CurrentStreak + 1
				points, basePoints, streakBonus = settlementPoints(streak)
			} else {
				streak = 0
				points = 0
			}
		} else if decision.Status == models.StatusCompleted {
			basePoints = points
		}

		completedAt := e.now()

		// Compare-and-set: the update only matches while the relation is
		// still in progress. Zero affected rows means another evaluator
		// closed it first.
		res := tx.Model(&models.UserObjective{}).
			Where("id = ? AND status = ?", relation.ID, models.StatusInProgress).
			Updates(map[string]interface{}{
				"status":         decision.Status,
				"final_value":    decision.FinalValue,
				"points_awarded": points,
				"completed_at":   completedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true

		userUpdates := map[string]interface{}{}
		if points > 0 {
			userUpdates["total_points"] = gorm.Expr("total_points + ?", points)
		}
		if decision.Settlement {
			userUpdates["current_streak"] = streak
		}
		if len(userUpdates) > 0 {
			err = tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(userUpdates).Error
			if err != nil {
				return err
			}
		}

		kind := notify.EventObjectiveFailed
		message := fmt.Sprintf("Objective %q failed: %s spent of a %s target", relation.Objective.Title, decision.FinalValue, relation.Objective.TargetValue)
		if decision.Status == models.StatusCompleted {
			kind = notify.EventObjectiveCompleted
			message = fmt.Sprintf("Objective %q completed, you earned %d points", relation.Objective.Title, points)
		}

		notification := models.Notification{
			UserID:      user.ID,
			ObjectiveID: relation.ObjectiveID,
			Kind:        string(kind),
			Message:     message,
			Points:      points,
		}
		err = tx.Create(&notification).Error
		if err != nil {
			return err
		}

		relation.Status = decision.Status
		relation.FinalValue = decimal.NewNullDecimal(decision.FinalValue)
		relation.PointsAwarded = &points
		relation.CompletedAt = &completedAt

		event = notify.Event{
			UserID:        user.ID,
			Kind:          kind,
			ObjectiveID:   relation.ObjectiveID,
			Title:         relation.Objective.Title,
			Status:        string(decision.Status),
			Points:        points,
			BasePoints:    basePoints,
			StreakBonus:   streakBonus,
			CurrentStreak: streak,
			FinalValue:    decision.FinalValue,
			TargetValue:   relation.Objective.TargetValue,
			Message:       message,
			Timestamp:     completedAt,
		}

		return nil
	})
	if err != nil {
		return TransitionResult{}, err
	}

	if !applied {
		log.Debug().
			Str("relation", relationID.String()).
			Str("status", string(relation.Status)).
			Msg("transition skipped, relation already terminal")

		return TransitionResult{Applied: false, Relation: relation}, nil
	}

	err = e.port.Emit(ctx, event)
	if err != nil {
		log.Warn().
			Err(err).
			Str("relation", relationID.String()).
			Msg("event delivery failed")
	}

	return TransitionResult{Applied: true, Relation: relation}, nil
}
