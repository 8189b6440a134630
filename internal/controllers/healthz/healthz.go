// Package healthz implements the health check endpoint.
package healthz

import (
	"net/http"

	"github.com/darumi/backend/internal/httputil"
	"github.com/darumi/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the routes for the healthz endpoint.
func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// Options returns the allowed HTTP verbs.
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns no content if the database can be reached, an error
// otherwise.
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = sqlDB.Ping()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
