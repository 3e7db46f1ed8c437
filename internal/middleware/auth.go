package middleware

import (
	"net/http"

	"captionboard/internal/db"
	"captionboard/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "current_user"

// LoadUser retrieves the profile for the session and sets it on the
// context. A stale session (profile deleted) is treated as signed out.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		profileID := session.Get("profile_id")

		if profileID != nil {
			var profile models.Profile
			if err := db.DB.First(&profile, "id = ?", profileID).Error; err == nil {
				c.Set(CurrentUserKey, &profile)
			}
		}
		c.Next()
	}
}

// AuthRequired guards the JSON API. Every route behind it answers 401
// before touching the store when there is no valid session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
