package engine_test

import (
	"context"

	"github.com/darumi/backend/internal/models"
	"github.com/darumi/backend/internal/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestEvaluateDebitFailsOverTarget() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "Yearly cap", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	// Lifetime debits of 1200 against a target of 1000
	suite.createTestDebit(user.ID, 700, nil, suite.now.AddDate(0, -3, 0))
	suite.createTestDebit(user.ID, 500, nil, suite.now)

	err := suite.engine.EvaluateDebit(context.Background(), user.ID, nil)
	assert.Nil(suite.T(), err)

	reloaded := suite.reloadRelation(relation.ID)
	assert.Equal(suite.T(), models.StatusFailed, reloaded.Status)
	assert.True(suite.T(), reloaded.FinalValue.Decimal.Equal(decimal.NewFromInt(1200)), "finalValue is %s, should be 1200", reloaded.FinalValue.Decimal)

	events := suite.port.Events()
	if assert.Len(suite.T(), events, 1) {
		assert.Equal(suite.T(), notify.EventObjectiveFailed, events[0].Kind)
	}
}

func (suite *TestSuiteStandard) TestEvaluateDebitLeavesUnderTarget() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "Yearly cap", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	// Exactly on target is not over target
	suite.createTestDebit(user.ID, 1000, nil, suite.now)

	err := suite.engine.EvaluateDebit(context.Background(), user.ID, nil)
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.StatusInProgress, suite.reloadRelation(relation.ID).Status)
	assert.Empty(suite.T(), suite.port.Events())
}

func (suite *TestSuiteStandard) TestEvaluateDebitCategoryIsolation() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	food := suite.createTestCategory(models.Category{Name: "Food"})
	travel := suite.createTestCategory(models.Category{Name: "Travel"})

	foodObjective := suite.createTestObjective(models.Objective{Title: "Food cap", TargetValue: decimal.NewFromInt(100), CategoryID: &food.ID})
	foodRelation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: foodObjective.ID})

	// Blow way past the food target, but in the travel category
	suite.createTestDebit(user.ID, 5000, &travel.ID, suite.now)

	err := suite.engine.EvaluateDebit(context.Background(), user.ID, &travel.ID)
	assert.Nil(suite.T(), err)

	// A debit in category A must not affect an objective scoped to category B
	assert.Equal(suite.T(), models.StatusInProgress, suite.reloadRelation(foodRelation.ID).Status)

	// The same debit in the scoped category does fail it
	suite.createTestDebit(user.ID, 200, &food.ID, suite.now)
	err = suite.engine.EvaluateDebit(context.Background(), user.ID, &food.ID)
	assert.Nil(suite.T(), err)

	reloaded := suite.reloadRelation(foodRelation.ID)
	assert.Equal(suite.T(), models.StatusFailed, reloaded.Status)
	assert.True(suite.T(), reloaded.FinalValue.Decimal.Equal(decimal.NewFromInt(200)))
}

func (suite *TestSuiteStandard) TestEvaluateDebitNeverCompletes() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "Cap", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	// 100% of the window reached, but completion is not the eager
	// evaluator's call
	suite.createTestDebit(user.ID, 1000, nil, suite.now)

	err := suite.engine.EvaluateDebit(context.Background(), user.ID, nil)
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.StatusInProgress, suite.reloadRelation(relation.ID).Status)
}

func (suite *TestSuiteStandard) TestEvaluateDebitGeneralObjectiveMatchesAnyCategory() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	travel := suite.createTestCategory(models.Category{Name: "Travel"})

	objective := suite.createTestObjective(models.Objective{Title: "Total cap", TargetValue: decimal.NewFromInt(100)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	suite.createTestDebit(user.ID, 500, &travel.ID, suite.now)

	err := suite.engine.EvaluateDebit(context.Background(), user.ID, &travel.ID)
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.StatusFailed, suite.reloadRelation(relation.ID).Status)
}
