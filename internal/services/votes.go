package services

import (
	"errors"
	"time"

	"captionboard/internal/db"
	"captionboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteResult is the caption's counter and the caller's vote after a cast.
type VoteResult struct {
	LikeCount int `json:"likeCount"`
	UserVote  int `json:"userVote"`
}

// CastVote applies a vote change for one (caption, voter) pair and keeps
// the caption's like_count in step with the sum of its votes.
//
// State machine per pair: previous value comes from the existing vote row
// (absent = 0), delta = new - previous. delta == 0 is an idempotent no-op
// (double submit). A new value of 0 deletes the row; an existing row is
// updated in place; otherwise a row is inserted.
//
// The row mutation and the counter update share one transaction, the
// counter moves via an in-store increment rather than read-then-write,
// and the insert path upserts on the (caption_id, profile_id) unique
// index, so concurrent votes can neither lose counter updates nor
// create duplicate rows.
//
// Returns gorm.ErrRecordNotFound when the caption does not exist.
func CastVote(captionID, profileID string, voteValue int) (*VoteResult, error) {
	result := &VoteResult{}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var caption models.Caption
		if err := tx.Select("id", "like_count").Where("id = ?", captionID).First(&caption).Error; err != nil {
			return err
		}

		previous := models.VoteNone
		var existing models.CaptionVote
		err := tx.Where("caption_id = ? AND profile_id = ?", captionID, profileID).First(&existing).Error
		switch {
		case err == nil:
			previous = existing.VoteValue
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no prior vote
		default:
			return err
		}

		delta := voteValue - previous
		if delta == 0 {
			result.LikeCount = caption.LikeCountValue()
			result.UserVote = previous
			return nil
		}

		now := time.Now().UTC()
		switch {
		case voteValue == models.VoteNone:
			// Zero votes are never persisted; a reset deletes the row.
			if err := tx.Delete(&models.CaptionVote{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		case previous != models.VoteNone:
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"vote_value":            voteValue,
				"modified_datetime_utc": now,
			}).Error; err != nil {
				return err
			}
		default:
			vote := models.CaptionVote{
				ID:                 uuid.NewString(),
				CaptionID:          captionID,
				ProfileID:          profileID,
				VoteValue:          voteValue,
				CreatedDatetimeUTC: now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "caption_id"}, {Name: "profile_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"vote_value":            voteValue,
					"modified_datetime_utc": now,
				}),
			}).Create(&vote).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Caption{}).
			Where("id = ?", captionID).
			UpdateColumn("like_count", gorm.Expr("COALESCE(like_count, 0) + ?", delta)).
			Error; err != nil {
			return err
		}

		// Re-read rather than computing from the pre-increment value, so
		// the response reflects concurrent increments too.
		var refreshed models.Caption
		if err := tx.Select("like_count").Where("id = ?", captionID).First(&refreshed).Error; err != nil {
			return err
		}
		result.LikeCount = refreshed.LikeCountValue()
		result.UserVote = voteValue
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
