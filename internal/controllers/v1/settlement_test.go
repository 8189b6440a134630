package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/darumi/backend/internal/controllers/v1"
	"github.com/darumi/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateSettlement() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "Monthly budget", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	// Spend in February, the month being settled
	suite.createTestDebit(user.ID, 800, nil, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))

	w := suite.request(http.MethodPost, "/v1/settlements", nil)
	assert.Equal(suite.T(), http.StatusCreated, w.Code, "Body: %s", w.Body.String())

	var response v1.SettlementResponse
	suite.decode(w, &response)
	if assert.NotNil(suite.T(), response.Data) {
		assert.Equal(suite.T(), 1, response.Data.Processed)
		assert.Equal(suite.T(), 0, response.Data.Errored)
		assert.True(suite.T(), response.Data.PeriodStart.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	}

	assert.Equal(suite.T(), models.StatusCompleted, suite.reloadRelation(relation.ID).Status)
}

func (suite *TestSuiteStandard) TestCreateSettlementNoRelations() {
	w := suite.request(http.MethodPost, "/v1/settlements", nil)
	assert.Equal(suite.T(), http.StatusCreated, w.Code, "Body: %s", w.Body.String())

	var response v1.SettlementResponse
	suite.decode(w, &response)
	if assert.NotNil(suite.T(), response.Data) {
		assert.Equal(suite.T(), 0, response.Data.Processed)
	}
}
