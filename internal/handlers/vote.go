package handlers

import (
	"errors"
	"net/http"
	"strings"

	"captionboard/internal/models"
	"captionboard/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type votePayload struct {
	CaptionID string `json:"captionId"`
	VoteValue *int   `json:"voteValue"`
}

// Cast serves POST /api/votes.
func (h *VoteHandler) Cast(c *gin.Context) {
	profile := CurrentProfile(c)

	var payload votePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, "Invalid vote payload")
		return
	}

	captionID := strings.TrimSpace(payload.CaptionID)
	if captionID == "" || payload.VoteValue == nil || !models.IsValidVoteValue(*payload.VoteValue) {
		BadRequest(c, "Invalid vote payload")
		return
	}

	result, err := services.CastVote(captionID, profile.ID, *payload.VoteValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Caption not found"})
			return
		}
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
