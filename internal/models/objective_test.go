package models_test

import (
	"strings"

	"github.com/darumi/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestObjectiveAfterSave() {
	tests := []struct {
		targetValue decimal.Decimal
		multiplier  decimal.Decimal
		err         error
	}{
		{decimal.NewFromFloat(-10), decimal.NewFromInt(1), models.ErrTargetValueNotPositive},
		{decimal.Zero, decimal.NewFromInt(1), models.ErrTargetValueNotPositive},
		{decimal.NewFromFloat(750), decimal.NewFromFloat(-1.5), models.ErrMultiplierNotPositive},
		{decimal.NewFromFloat(750), decimal.NewFromFloat(1.5), nil},
	}

	for _, tt := range tests {
		o := models.Objective{
			TargetValue: tt.targetValue,
			Multiplier:  tt.multiplier,
		}

		err := o.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err)
	}
}

func (suite *TestSuiteStandard) TestObjectiveDefaultMultiplier() {
	objective := suite.createTestObjective(models.Objective{
		Title:       "No more take-away",
		TargetValue: decimal.NewFromInt(300),
	})

	assert.True(suite.T(), objective.Multiplier.Equal(decimal.NewFromInt(1)), "multiplier should default to 1, is %s", objective.Multiplier)
}

func (suite *TestSuiteStandard) TestObjectiveTrimWhitespace() {
	title := "  Cut the groceries bill  \t"

	objective := suite.createTestObjective(models.Objective{
		Title:       title,
		TargetValue: decimal.NewFromInt(500),
	})

	assert.Equal(suite.T(), strings.TrimSpace(title), objective.Title)
}

func (suite *TestSuiteStandard) TestObjectiveAppliesTo() {
	food := uuid.New()
	travel := uuid.New()

	general := models.Objective{}
	scoped := models.Objective{CategoryID: &food}

	assert.True(suite.T(), general.AppliesTo(&food))
	assert.True(suite.T(), general.AppliesTo(nil))
	assert.True(suite.T(), scoped.AppliesTo(&food))
	assert.False(suite.T(), scoped.AppliesTo(&travel))
	assert.False(suite.T(), scoped.AppliesTo(nil))
}
