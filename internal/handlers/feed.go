package handlers

import (
	"net/http"

	"captionboard/internal/services"
	"captionboard/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	recentDefaultLimit = 24
	recentMaxLimit     = 60
	topDefaultLimit    = 100
	topMaxLimit        = 200
)

type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

// Recent serves GET /api/recent: the time-ordered feed with its
// continuation cursor.
func (h *FeedHandler) Recent(c *gin.Context) {
	profile := CurrentProfile(c)

	offset := utils.ParsePagingParam(c.Query("offset"), 0)
	limit := utils.ClampLimit(utils.ParsePagingParam(c.Query("limit"), recentDefaultLimit), recentMaxLimit)

	result, err := services.BuildRecentRows(profile.ID, limit, offset)
	if err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Top100 serves GET /api/top-100. The assembler returns a single bounded
// page; a full page means more may exist.
func (h *FeedHandler) Top100(c *gin.Context) {
	profile := CurrentProfile(c)

	offset := utils.ParsePagingParam(c.Query("offset"), 0)
	limit := utils.ClampLimit(utils.ParsePagingParam(c.Query("limit"), topDefaultLimit), topMaxLimit)

	rows, err := services.BuildTopRows(profile.ID, limit, offset)
	if err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":       rows,
		"hasMore":    len(rows) == limit,
		"nextOffset": offset + len(rows),
	})
}
