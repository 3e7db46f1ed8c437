package services

import (
	"captionboard/internal/db"
	"captionboard/internal/models"
)

// The recent feed drops captions whose image cannot be resolved, so each
// batch over-fetches by this factor to keep the page full without a
// round-trip per dropped row.
const batchMultiplier = 4

// RecentResult is one page of the time-ordered feed. NextOffset is an
// absolute position into the caption source, not into the filtered rows.
type RecentResult struct {
	Rows       []FeedRow `json:"rows"`
	HasMore    bool      `json:"hasMore"`
	NextOffset int       `json:"nextOffset"`
}

// BuildRecentRows assembles a page of captions ordered by recency,
// enriched with image and per-user vote data. Captions without a
// resolvable image URL are skipped; the loop keeps consuming batches
// until `limit` resolvable rows are collected or the source runs dry.
//
// When the page fills mid-batch, NextOffset points just past the last
// consumed source row so the next call resumes exactly there, without
// duplicates or gaps. Callers validate limit before invoking; the
// assembler does not clamp.
func BuildRecentRows(profileID string, limit, offset int) (*RecentResult, error) {
	batchSize := limit * batchMultiplier
	cursor := offset
	collected := make([]FeedRow, 0, limit)

	for {
		var captions []models.Caption
		if err := db.DB.
			Order("created_datetime_utc DESC, id DESC").
			Offset(cursor).
			Limit(batchSize).
			Find(&captions).Error; err != nil {
			return nil, err
		}
		if len(captions) == 0 {
			return &RecentResult{Rows: collected, HasMore: false, NextOffset: cursor}, nil
		}

		imagesByID, votesByCaptionID := loadFeedContext(captions, profileID)

		for i, caption := range captions {
			image := resolveImage(caption, imagesByID)
			if image == nil || image.URL == nil || *image.URL == "" {
				// A recency feed is image-first; a caption with no
				// renderable image is not worth surfacing.
				continue
			}
			collected = append(collected, FeedRow{
				ID:                 caption.ID,
				Content:            caption.Content,
				CreatedDatetimeUTC: caption.CreatedDatetimeUTC,
				ImageID:            caption.ImageID,
				ImageURL:           image.URL,
				ImageAlt:           imageAlt(image),
				ImageStatus:        ImageStatusOK,
				LikeCount:          caption.LikeCountValue(),
				UserVote:           votesByCaptionID[caption.ID],
			})
			if len(collected) == limit {
				return &RecentResult{Rows: collected, HasMore: true, NextOffset: cursor + i + 1}, nil
			}
		}

		cursor += len(captions)
		if len(captions) < batchSize {
			// Short batch: the source is exhausted.
			break
		}
	}

	return &RecentResult{Rows: collected, HasMore: false, NextOffset: cursor}, nil
}
