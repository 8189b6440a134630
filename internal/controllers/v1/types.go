package v1

import (
	"errors"
	"net/http"

	"github.com/darumi/backend/internal/engine"
	"github.com/darumi/backend/internal/models"
	darumi_uuid "github.com/darumi/backend/internal/uuid"
)

// Controller exposes the engine's trigger operations over HTTP.
type Controller struct {
	Engine *engine.Engine
}

func NewController(e *engine.Engine) Controller {
	return Controller{Engine: e}
}

type URIID struct {
	ID darumi_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type httpError struct {
	Error string `json:"error" example:"there is no user matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Expense event errors
var (
	errUserIDRequired = errors.New("the userId field must be set")
	errAmountZero     = errors.New("the amount must not be zero")
)
