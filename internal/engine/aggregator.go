package engine

import (
	"context"
	"time"

	"github.com/darumi/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Spend returns the cumulative qualifying spend of the user: the sum of
// the absolute values of all active debits, optionally restricted to a
// category and to an inclusive [from, to] window. Passing nil bounds
// makes the window unbounded on that side, so Spend(ctx, id, nil, nil, nil)
// is the lifetime-to-date spend.
//
// The aggregation is read-only and safe to call concurrently.
func (e *Engine) Spend(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, from, to *time.Time) (decimal.Decimal, error) {
	query := e.db.WithContext(ctx).
		Where("expenses.user_id = ?", userID).
		Where("expenses.active = ?", true).
		Where("expenses.amount < 0")

	if categoryID != nil {
		query = query.Where("expenses.category_id = ?", *categoryID)
	}

	// Dates are normalized to UTC before they are stored, so a plain
	// comparison is correct on both the SQLite and postgresql drivers.
	if from != nil {
		query = query.Where("expenses.date >= ?", *from)
	}

	if to != nil {
		query = query.Where("expenses.date <= ?", *to)
	}

	var expenses []models.Expense
	err := query.Find(&expenses).Error
	if err != nil {
		return decimal.Zero, err
	}

	spend := decimal.Zero
	for _, expense := range expenses {
		spend = spend.Add(expense.Amount.Abs())
	}

	return spend, nil
}
