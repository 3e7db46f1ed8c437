package handlers

import (
	"net/http"

	"captionboard/internal/middleware"
	"captionboard/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentProfile pulls the authenticated profile set by
// middleware.LoadUser. Only call behind middleware.AuthRequired.
func CurrentProfile(c *gin.Context) *models.Profile {
	return c.MustGet(middleware.CurrentUserKey).(*models.Profile)
}

// ServerError reports a store failure. Messages propagate verbatim; no
// retry happens anywhere in the request path.
func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// BadRequest reports a malformed request.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
