package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a row of the expense ledger. Negative amounts are debits,
// positive amounts are income. The engine only ever reads this entity;
// rows are produced by the expense-write collaborator.
type Expense struct {
	DefaultModel
	UserID     uuid.UUID       `json:"userId"`
	User       User            `json:"-"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	CategoryID *uuid.UUID      `json:"categoryId,omitempty"`
	Category   *Category       `json:"-"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note"`
	Active     bool            `json:"active"`
}

// Debit reports whether the expense reduces the user's balance.
func (e Expense) Debit() bool {
	return e.Amount.IsNegative()
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
func (e *Expense) AfterFind(_ *gorm.DB) (err error) {
	e.Date = e.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date to UTC.
func (e *Expense) BeforeSave(_ *gorm.DB) (err error) {
	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}
