package v1

import (
	"net/http"
	"time"

	"github.com/darumi/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterSettlementRoutes registers the routes for settlements with the
// RouterGroup that is passed.
func RegisterSettlementRoutes(co Controller, r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettlementList)
	r.POST("", co.CreateSettlement)
}

// OptionsSettlementList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Settlements
//	@Success		204
//	@Router			/v1/settlements [options]
func OptionsSettlementList(c *gin.Context) {
	httputil.OptionsPost(c)
}

type Settlement struct {
	Processed   int       `json:"processed" example:"128"` // Relations settled in this pass
	Skipped     int       `json:"skipped" example:"2"`     // Relations closed by another evaluator during the pass
	Errored     int       `json:"errored" example:"1"`     // Relations that failed transiently and stay open
	PeriodStart time.Time `json:"periodStart" example:"2024-02-01T00:00:00Z"`
	PeriodEnd   time.Time `json:"periodEnd" example:"2024-02-29T23:59:59Z"`
}

type SettlementResponse struct {
	Data  *Settlement `json:"data"`
	Error *string     `json:"error"`
}

// CreateSettlement triggers a settlement pass for the previous month
//
//	@Summary		Run settlement
//	@Description	Settles all open objective relations against the previous calendar month. This is the authoritative evaluation; it also maintains streaks. The scheduled monthly run uses the same code path.
//	@Tags			Settlements
//	@Produce		json
//	@Success		201	{object}	SettlementResponse
//	@Failure		500	{object}	SettlementResponse
//	@Router			/v1/settlements [post]
func (co Controller) CreateSettlement(c *gin.Context) {
	result, err := co.Engine.RunMonthlySettlement(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettlementResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, SettlementResponse{
		Data: &Settlement{
			Processed:   result.Processed,
			Skipped:     result.Skipped,
			Errored:     result.Errored,
			PeriodStart: result.PeriodStart,
			PeriodEnd:   result.PeriodEnd,
		},
	})
}
