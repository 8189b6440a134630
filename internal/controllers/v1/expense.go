package v1

import (
	"net/http"
	"time"

	"github.com/darumi/backend/internal/httputil"
	"github.com/darumi/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterEventRoutes registers the routes for expense events with the
// RouterGroup that is passed.
func RegisterEventRoutes(co Controller, r *gin.RouterGroup) {
	r.OPTIONS("/expense", OptionsExpenseEvent)
	r.POST("/expense", co.CreateExpenseEvent)
}

// OptionsExpenseEvent returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Events
//	@Success		204
//	@Router			/v1/events/expense [options]
func OptionsExpenseEvent(c *gin.Context) {
	httputil.OptionsPost(c)
}

type ExpenseEventEditable struct {
	UserID     uuid.UUID       `json:"userId" example:"d2fd4d40-bb8a-4439-8f37-08dbdc2dfddc"`
	CategoryID *uuid.UUID      `json:"categoryId" example:"a44c4233-cf81-45f6-92fb-e0e1fdbbbf5a"`  // nil means the expense is uncategorized
	Amount     decimal.Decimal `json:"amount" example:"-14.37"`                                    // negative amounts are debits, positive are income
	Date       time.Time       `json:"date" example:"2024-03-08T00:00:00Z"`                        // defaults to the current time
	Note       string          `json:"note" example:"Groceries for the week"`
}

func (editable ExpenseEventEditable) model() models.Expense {
	return models.Expense{
		UserID:     editable.UserID,
		CategoryID: editable.CategoryID,
		Amount:     editable.Amount,
		Date:       editable.Date,
		Note:       editable.Note,
		Active:     true,
	}
}

type ExpenseEventResponse struct {
	Data  *models.Expense `json:"data"`
	Error *string         `json:"error"`
}

// CreateExpenseEvent records an expense and runs the objective evaluation
// for it
//
//	@Summary		Record expense
//	@Description	Records an expense for a user and evaluates their tracked objectives. Debits can fail objectives over target and complete objectives at 100% of the month; income is stored but never transitions objectives.
//	@Tags			Events
//	@Produce		json
//	@Success		201		{object}	ExpenseEventResponse
//	@Failure		400		{object}	ExpenseEventResponse
//	@Failure		404		{object}	ExpenseEventResponse
//	@Failure		500		{object}	ExpenseEventResponse
//	@Param			expense	body		ExpenseEventEditable	true	"Expense"
//	@Router			/v1/events/expense [post]
func (co Controller) CreateExpenseEvent(c *gin.Context) {
	var editable ExpenseEventEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseEventResponse{Error: &s})
		return
	}

	if editable.UserID == uuid.Nil {
		s := errUserIDRequired.Error()
		c.JSON(http.StatusBadRequest, ExpenseEventResponse{Error: &s})
		return
	}

	if editable.Amount.IsZero() {
		s := errAmountZero.Error()
		c.JSON(http.StatusBadRequest, ExpenseEventResponse{Error: &s})
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", editable.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseEventResponse{Error: &s})
		return
	}

	if editable.CategoryID != nil {
		var category models.Category
		err = models.DB.First(&category, "id = ?", editable.CategoryID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ExpenseEventResponse{Error: &s})
			return
		}
	}

	expense := editable.model()
	err = models.DB.Create(&expense).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseEventResponse{Error: &s})
		return
	}

	// The expense is committed at this point. An evaluation error does not
	// undo the write, the next debit or recheck picks the state up again.
	err = co.Engine.OnExpenseRecorded(c.Request.Context(), expense.UserID, expense.Amount, expense.CategoryID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseEventResponse{Data: &expense, Error: &s})
		return
	}

	c.JSON(http.StatusCreated, ExpenseEventResponse{Data: &expense})
}
