package services

import (
	"captionboard/internal/db"
	"captionboard/internal/models"
)

// BuildTopRows assembles a single page of captions ordered by like count
// (nulls last), then recency, then id, so the order is total even when
// likes and timestamps collide.
//
// Unlike the recent feed, nothing is dropped here: rows with an
// unresolvable image are tagged with an ImageStatus and the client
// decides how to render them. No cursor either; callers derive hasMore
// from whether the page came back full.
func BuildTopRows(profileID string, limit, offset int) ([]FeedRow, error) {
	var captions []models.Caption
	if err := db.DB.
		Order("like_count DESC NULLS LAST, created_datetime_utc DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&captions).Error; err != nil {
		return nil, err
	}

	rows := make([]FeedRow, 0, len(captions))
	if len(captions) == 0 {
		return rows, nil
	}

	imagesByID, votesByCaptionID := loadFeedContext(captions, profileID)

	for _, caption := range captions {
		image := resolveImage(caption, imagesByID)

		status := ImageStatusOK
		var url *string
		switch {
		case image == nil:
			status = ImageStatusMissingRow
		case image.URL == nil || *image.URL == "":
			status = ImageStatusMissingURL
		default:
			url = image.URL
		}

		rows = append(rows, FeedRow{
			ID:                 caption.ID,
			Content:            caption.Content,
			CreatedDatetimeUTC: caption.CreatedDatetimeUTC,
			ImageID:            caption.ImageID,
			ImageURL:           url,
			ImageAlt:           imageAlt(image),
			ImageStatus:        status,
			LikeCount:          caption.LikeCountValue(),
			UserVote:           votesByCaptionID[caption.ID],
		})
	}

	return rows, nil
}
