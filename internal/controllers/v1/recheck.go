package v1

import (
	"net/http"

	"github.com/darumi/backend/internal/engine"
	"github.com/darumi/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the routes for user triggers with the
// RouterGroup that is passed.
func RegisterUserRoutes(co Controller, r *gin.RouterGroup) {
	r.OPTIONS("/:id/recheck", OptionsRecheck)
	r.POST("/:id/recheck", co.CreateRecheck)
}

// OptionsRecheck returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/users/{id}/recheck [options]
func OptionsRecheck(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

type Recheck struct {
	Verified    int                       `json:"verified" example:"3"`  // Number of open objectives that were verified
	Completed   int                       `json:"completed" example:"1"` // Objectives completed by this recheck
	Failed      int                       `json:"failed" example:"0"`    // Objectives failed by this recheck
	Transitions []engine.TransitionResult `json:"transitions"`           // State transitions applied by this recheck
}

type RecheckResponse struct {
	Data  *Recheck `json:"data"`
	Error *string  `json:"error"`
}

// CreateRecheck triggers the completion recheck for one user
//
//	@Summary		Recheck user objectives
//	@Description	Verifies all open objectives of the user against their month-to-date spend, completing or failing the ones that reached 100% of the window.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	RecheckResponse
//	@Failure		400	{object}	RecheckResponse
//	@Failure		404	{object}	RecheckResponse
//	@Failure		500	{object}	RecheckResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/users/{id}/recheck [post]
func (co Controller) CreateRecheck(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecheckResponse{Error: &s})
		return
	}

	result, err := co.Engine.RecheckUser(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecheckResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, RecheckResponse{
		Data: &Recheck{
			Verified:    result.Verified,
			Completed:   result.Completed,
			Failed:      result.Failed,
			Transitions: result.Transitions,
		},
	})
}
