package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"captionboard/internal/db"
	"captionboard/internal/models"
	"captionboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const (
	captionPageSize = 25
	top50Window     = 50
)

type CaptionHandler struct {
	policy *bluemonday.Policy
}

func NewCaptionHandler() *CaptionHandler {
	return &CaptionHandler{
		policy: bluemonday.StrictPolicy(),
	}
}

// List serves GET /api/captions: the raw caption table, newest first,
// 25 per page. The payload is identical for every caller, so it is
// cached for a minute.
func (h *CaptionHandler) List(c *gin.Context) {
	page := utils.ParsePagingParam(c.Query("page"), 1)

	cacheKey := fmt.Sprintf("captions:list:page:%d", page)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var total int64
	if err := db.DB.Model(&models.Caption{}).Count(&total).Error; err != nil {
		ServerError(c, err)
		return
	}

	var captions []models.Caption
	if err := db.DB.
		Order("created_datetime_utc DESC, id DESC").
		Offset((page - 1) * captionPageSize).
		Limit(captionPageSize).
		Find(&captions).Error; err != nil {
		ServerError(c, err)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(captionPageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	data := gin.H{
		"rows":       captions,
		"page":       page,
		"totalPages": totalPages,
		"totalRows":  total,
	}
	utils.GetCache().Set(cacheKey, data, time.Minute)

	c.JSON(http.StatusOK, data)
}

type captionPayload struct {
	Content string  `json:"content"`
	ImageID *string `json:"imageId"`
}

// Create serves POST /api/captions. Content is sanitized before it is
// stored; a caption needs content or an image to exist.
func (h *CaptionHandler) Create(c *gin.Context) {
	profile := CurrentProfile(c)

	var payload captionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, "Invalid caption payload")
		return
	}

	content := strings.TrimSpace(h.policy.Sanitize(payload.Content))
	if content == "" && payload.ImageID == nil {
		BadRequest(c, "Caption needs content or an image")
		return
	}

	if payload.ImageID != nil {
		var image models.Image
		if err := db.DB.First(&image, "id = ?", *payload.ImageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				BadRequest(c, "Unknown image")
				return
			}
			ServerError(c, err)
			return
		}
	}

	caption := models.Caption{
		ID:                 uuid.NewString(),
		ProfileID:          profile.ID,
		ImageID:            payload.ImageID,
		IsPublic:           true,
		CreatedDatetimeUTC: time.Now().UTC(),
	}
	if content != "" {
		caption.Content = &content
	}

	if err := db.DB.Create(&caption).Error; err != nil {
		ServerError(c, err)
		return
	}

	// New captions land on page 1 of the listing.
	utils.GetCache().Delete("captions:list:page:1")

	c.JSON(http.StatusCreated, caption)
}

// Debug serves GET /api/caption-debug: a single-row inspection endpoint
// used while grading vote behavior. Returns a null row for unknown ids
// rather than a 404.
func (h *CaptionHandler) Debug(c *gin.Context) {
	profile := CurrentProfile(c)

	id := c.Query("id")
	if id == "" {
		BadRequest(c, "Missing id")
		return
	}

	var caption models.Caption
	err := db.DB.First(&caption, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"row": nil, "userId": profile.ID})
		return
	}
	if err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"row": caption, "userId": profile.ID})
}

// TopDebug serves GET /api/top-100/debug: where one caption sits relative
// to the top-50 ordering, for verifying the tie-break behavior.
func (h *CaptionHandler) TopDebug(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		BadRequest(c, "Missing id")
		return
	}

	var caption *models.Caption
	var row models.Caption
	err := db.DB.First(&row, "id = ?", id).Error
	switch {
	case err == nil:
		caption = &row
	case errors.Is(err, gorm.ErrRecordNotFound):
		// report rank against a null caption
	default:
		ServerError(c, err)
		return
	}

	var topRows []models.Caption
	if err := db.DB.
		Select("id", "like_count").
		Order("like_count DESC NULLS LAST, created_datetime_utc DESC, id DESC").
		Limit(top50Window).
		Find(&topRows).Error; err != nil {
		ServerError(c, err)
		return
	}

	inTop50 := false
	var rank interface{}
	top50IDs := make([]string, 0, len(topRows))
	for i, top := range topRows {
		top50IDs = append(top50IDs, top.ID)
		if top.ID == id {
			inTop50 = true
			rank = i + 1
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"caption":  caption,
		"inTop50":  inTop50,
		"rank":     rank,
		"top50Ids": top50IDs,
	})
}
