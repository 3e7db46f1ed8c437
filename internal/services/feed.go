package services

import (
	"log"
	"strings"
	"time"

	"captionboard/internal/db"
	"captionboard/internal/models"
)

// Image resolution states carried by top-feed rows. The recent feed only
// ever emits ImageStatusOK; anything else is dropped before it reaches
// the client.
const (
	ImageStatusOK         = "ok"
	ImageStatusMissingRow = "missing_image_row"
	ImageStatusMissingURL = "missing_image_url"
)

const defaultImageAlt = "Caption image"

// FeedRow is a caption joined with its image and the requesting user's
// own vote. Derived per request, never persisted.
type FeedRow struct {
	ID                 string    `json:"id"`
	Content            *string   `json:"content"`
	CreatedDatetimeUTC time.Time `json:"created_datetime_utc"`
	ImageID            *string   `json:"imageId"`
	ImageURL           *string   `json:"imageUrl"`
	ImageAlt           string    `json:"imageAlt"`
	ImageStatus        string    `json:"imageStatus"`
	LikeCount          int       `json:"likeCount"`
	UserVote           int       `json:"userVote"`
}

// loadFeedContext batch-fetches the images and the caller's votes for one
// batch of captions: collect ids, one grouped query per table, build
// lookup maps. A fetch is skipped entirely when its id set is empty, so
// no "IN ()" query is ever issued.
//
// Enrichment failures degrade to empty maps rather than failing the
// request; captions still come through, just without image or vote data.
// Logged so the degradation is visible in tests and in production.
func loadFeedContext(captions []models.Caption, profileID string) (map[string]models.Image, map[string]int) {
	imageIDs := make([]string, 0, len(captions))
	captionIDs := make([]string, 0, len(captions))
	for _, caption := range captions {
		if caption.ImageID != nil && *caption.ImageID != "" {
			imageIDs = append(imageIDs, *caption.ImageID)
		}
		captionIDs = append(captionIDs, caption.ID)
	}

	imagesByID := make(map[string]models.Image, len(imageIDs))
	if len(imageIDs) > 0 {
		var images []models.Image
		if err := db.DB.Where("id IN ?", imageIDs).Find(&images).Error; err != nil {
			log.Printf("feed: image lookup failed, serving captions without images: %v", err)
		}
		for _, image := range images {
			imagesByID[image.ID] = image
		}
	}

	votesByCaptionID := make(map[string]int, len(captionIDs))
	if len(captionIDs) > 0 {
		var votes []models.CaptionVote
		if err := db.DB.Where("caption_id IN ? AND profile_id = ?", captionIDs, profileID).Find(&votes).Error; err != nil {
			log.Printf("feed: vote lookup failed, serving captions without votes: %v", err)
		}
		for _, vote := range votes {
			votesByCaptionID[vote.CaptionID] = vote.VoteValue
		}
	}

	return imagesByID, votesByCaptionID
}

// resolveImage looks a caption's image up in the batch map. Returns nil
// when the caption has no image_id or the row is absent.
func resolveImage(caption models.Caption, imagesByID map[string]models.Image) *models.Image {
	if caption.ImageID == nil {
		return nil
	}
	if image, ok := imagesByID[*caption.ImageID]; ok {
		return &image
	}
	return nil
}

func imageAlt(image *models.Image) string {
	if image != nil && image.ImageDescription != nil {
		if alt := strings.TrimSpace(*image.ImageDescription); alt != "" {
			return alt
		}
	}
	return defaultImageAlt
}
