package engine

import (
	"github.com/darumi/backend/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// settlementBasePoints is awarded for every objective met at monthly
	// settlement.
	settlementBasePoints = 100

	// streakBonusStep is the extra points per consecutive met settlement
	// beyond the first.
	streakBonusStep = 50
)

// Decision describes the transition an evaluator wants to apply to a
// relation. The executor only applies it if the relation is still in
// progress when the transaction runs.
type Decision struct {
	Status     models.ObjectiveStatus
	FinalValue decimal.Decimal

	// Points to award. Ignored for settlement decisions, where points and
	// streak are derived from the user's current streak inside the
	// executor's unit of work.
	Points int64

	// Settlement marks the decision as coming from the monthly settlement
	// job, the only caller that manages the streak.
	Settlement bool
}

// completionPoints is the early-completion formula:
// floor((target - spend) * multiplier).
func completionPoints(target, spend, multiplier decimal.Decimal) int64 {
	return target.Sub(spend).Mul(multiplier).Floor().IntPart()
}

// progressPercent returns min(100, round(spend/target*100)).
func progressPercent(spend, target decimal.Decimal) int64 {
	if !target.IsPositive() {
		return 100
	}

	percent := spend.Div(target).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if percent > 100 {
		return 100
	}

	return percent
}

// settlementPoints is the monthly settlement formula for a met objective:
// 100 base points plus 50 per consecutive met settlement beyond the first.
func settlementPoints(newStreak int64) (points, base, bonus int64) {
	base = settlementBasePoints
	bonus = (newStreak - 1) * streakBonusStep
	return base + bonus, base, bonus
}
