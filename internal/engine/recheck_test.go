package engine_test

import (
	"context"
	"time"

	"github.com/darumi/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRecheckUserCompletes() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{
		Title:       "March budget",
		TargetValue: decimal.NewFromInt(1000),
		Multiplier:  decimal.NewFromFloat(1.5),
	})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	// 995.50 of 1000 rounds to 100%, completing under target
	suite.createTestDebit(user.ID, 995.50, nil, suite.now.AddDate(0, 0, -3))

	result, err := suite.engine.RecheckUser(context.Background(), user.ID)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Verified)
	assert.Equal(suite.T(), 1, result.Completed)
	assert.Equal(suite.T(), 0, result.Failed)
	assert.Len(suite.T(), result.Transitions, 1)

	reloaded := suite.reloadRelation(relation.ID)
	assert.Equal(suite.T(), models.StatusCompleted, reloaded.Status)

	// floor((1000 - 995.50) * 1.5) = floor(6.75) = 6
	if assert.NotNil(suite.T(), reloaded.PointsAwarded) {
		assert.Equal(suite.T(), int64(6), *reloaded.PointsAwarded)
	}
	assert.Equal(suite.T(), int64(6), suite.reloadUser(user.ID).TotalPoints)

	// The recheck never touches the streak
	assert.Equal(suite.T(), int64(0), suite.reloadUser(user.ID).CurrentStreak)
}

func (suite *TestSuiteStandard) TestRecheckUserFailsOverTarget() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "March budget", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	suite.createTestDebit(user.ID, 1100, nil, suite.now.AddDate(0, 0, -1))

	result, err := suite.engine.RecheckUser(context.Background(), user.ID)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Failed)

	reloaded := suite.reloadRelation(relation.ID)
	assert.Equal(suite.T(), models.StatusFailed, reloaded.Status)
	assert.True(suite.T(), reloaded.FinalValue.Decimal.Equal(decimal.NewFromInt(1100)))
	if assert.NotNil(suite.T(), reloaded.PointsAwarded) {
		assert.Equal(suite.T(), int64(0), *reloaded.PointsAwarded)
	}
}

func (suite *TestSuiteStandard) TestRecheckUserBelowGateUntouched() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "March budget", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	suite.createTestDebit(user.ID, 800, nil, suite.now.AddDate(0, 0, -1))

	result, err := suite.engine.RecheckUser(context.Background(), user.ID)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Verified)
	assert.Equal(suite.T(), 0, result.Completed)
	assert.Equal(suite.T(), 0, result.Failed)
	assert.Empty(suite.T(), result.Transitions)

	assert.Equal(suite.T(), models.StatusInProgress, suite.reloadRelation(relation.ID).Status)
}

func (suite *TestSuiteStandard) TestRecheckUserUsesMonthToDateWindow() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "March budget", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	// Spend from February must not count towards the March window
	suite.createTestDebit(user.ID, 2000, nil, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))

	result, err := suite.engine.RecheckUser(context.Background(), user.ID)
	assert.Nil(suite.T(), err)
	assert.Empty(suite.T(), result.Transitions)

	assert.Equal(suite.T(), models.StatusInProgress, suite.reloadRelation(relation.ID).Status)
}

func (suite *TestSuiteStandard) TestRecheckUserUnknownUser() {
	_, err := suite.engine.RecheckUser(context.Background(), uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
