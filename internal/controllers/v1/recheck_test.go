package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/darumi/backend/internal/controllers/v1"
	"github.com/darumi/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateRecheck() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "March budget", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	// Month-to-date spend right below target completes on recheck
	suite.createTestDebit(user.ID, 995.50, nil, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	w := suite.request(http.MethodPost, fmt.Sprintf("/v1/users/%s/recheck", user.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code, "Body: %s", w.Body.String())

	var response v1.RecheckResponse
	suite.decode(w, &response)
	if assert.NotNil(suite.T(), response.Data) {
		assert.Equal(suite.T(), 1, response.Data.Verified)
		assert.Equal(suite.T(), 1, response.Data.Completed)
		assert.Equal(suite.T(), 0, response.Data.Failed)

		if assert.Len(suite.T(), response.Data.Transitions, 1) {
			transition := response.Data.Transitions[0]
			assert.True(suite.T(), transition.Applied)
			assert.Equal(suite.T(), relation.ID, transition.Relation.ID)
			assert.Equal(suite.T(), models.StatusCompleted, transition.Relation.Status)
		}
	}

	assert.Equal(suite.T(), models.StatusCompleted, suite.reloadRelation(relation.ID).Status)
}

func (suite *TestSuiteStandard) TestCreateRecheckBelowGate() {
	user := suite.createTestUser(models.User{Name: "Irene"})
	objective := suite.createTestObjective(models.Objective{Title: "March budget", TargetValue: decimal.NewFromInt(1000)})
	relation := suite.createTestUserObjective(models.UserObjective{UserID: user.ID, ObjectiveID: objective.ID})

	suite.createTestDebit(user.ID, 400, nil, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	w := suite.request(http.MethodPost, fmt.Sprintf("/v1/users/%s/recheck", user.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code, "Body: %s", w.Body.String())

	var response v1.RecheckResponse
	suite.decode(w, &response)
	if assert.NotNil(suite.T(), response.Data) {
		assert.Equal(suite.T(), 1, response.Data.Verified)
		assert.Equal(suite.T(), 0, response.Data.Completed)
		assert.Empty(suite.T(), response.Data.Transitions)
	}

	assert.Equal(suite.T(), models.StatusInProgress, suite.reloadRelation(relation.ID).Status)
}

func (suite *TestSuiteStandard) TestCreateRecheckUnknownUser() {
	w := suite.request(http.MethodPost, fmt.Sprintf("/v1/users/%s/recheck", uuid.New()), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code, "Body: %s", w.Body.String())
}

func (suite *TestSuiteStandard) TestCreateRecheckInvalidUUID() {
	w := suite.request(http.MethodPost, "/v1/users/not-a-uuid/recheck", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code, "Body: %s", w.Body.String())
}
