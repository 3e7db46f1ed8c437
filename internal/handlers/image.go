package handlers

import (
	"math"
	"net/http"

	"captionboard/internal/db"
	"captionboard/internal/models"
	"captionboard/internal/utils"

	"github.com/gin-gonic/gin"
)

const imagePageSize = 25

type ImageHandler struct{}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// List serves GET /api/images: the raw image table, newest first.
func (h *ImageHandler) List(c *gin.Context) {
	page := utils.ParsePagingParam(c.Query("page"), 1)

	var total int64
	if err := db.DB.Model(&models.Image{}).Count(&total).Error; err != nil {
		ServerError(c, err)
		return
	}

	var images []models.Image
	if err := db.DB.
		Order("created_datetime_utc DESC, id DESC").
		Offset((page - 1) * imagePageSize).
		Limit(imagePageSize).
		Find(&images).Error; err != nil {
		ServerError(c, err)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(imagePageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":       images,
		"page":       page,
		"totalPages": totalPages,
		"totalRows":  total,
	})
}
