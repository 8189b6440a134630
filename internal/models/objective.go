package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Objective is an immutable spend target template. A nil CategoryID means
// the objective counts all spend ("general scope"), otherwise only spend
// in the referenced category counts.
//
// The engine never mutates objectives, it only reads them when evaluating
// the tracked relations.
type Objective struct {
	DefaultModel
	Title       string          `json:"title"`
	TargetValue decimal.Decimal `json:"targetValue" gorm:"type:DECIMAL(20,8)"`
	Multiplier  decimal.Decimal `json:"multiplier" gorm:"type:DECIMAL(20,8)"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	Category    *Category       `json:"-"`
}

// General reports whether the objective counts spend in every category.
func (o Objective) General() bool {
	return o.CategoryID == nil
}

// AppliesTo reports whether spend in the given category counts towards
// the objective. A nil category on a debit only matches general objectives.
func (o Objective) AppliesTo(categoryID *uuid.UUID) bool {
	if o.General() {
		return true
	}
	if categoryID == nil {
		return false
	}
	return *o.CategoryID == *categoryID
}

func (o *Objective) BeforeSave(_ *gorm.DB) error {
	o.Title = strings.TrimSpace(o.Title)

	if o.Multiplier.IsZero() {
		o.Multiplier = decimal.NewFromInt(1)
	}

	return nil
}

func (o *Objective) AfterSave(_ *gorm.DB) error {
	if !o.TargetValue.IsPositive() {
		return ErrTargetValueNotPositive
	}

	if !o.Multiplier.IsPositive() {
		return ErrMultiplierNotPositive
	}

	return nil
}
