package models

import (
	"time"
)

// Vote values. A reset to VoteNone deletes the row instead of persisting
// a zero value.
const (
	VoteUp   = 1
	VoteNone = 0
	VoteDown = -1
)

// IsValidVoteValue checks a client-supplied vote value.
func IsValidVoteValue(v int) bool {
	return v == VoteUp || v == VoteDown || v == VoteNone
}

// CaptionVote is one user's vote on one caption.
// Unique key: caption_id + profile_id.
type CaptionVote struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	CaptionID           string     `gorm:"size:36;not null;uniqueIndex:idx_caption_profile,priority:1" json:"caption_id"`
	ProfileID           string     `gorm:"size:36;not null;uniqueIndex:idx_caption_profile,priority:2" json:"profile_id"`
	VoteValue           int        `gorm:"not null" json:"vote_value"`
	CreatedDatetimeUTC  time.Time  `gorm:"column:created_datetime_utc" json:"created_datetime_utc"`
	ModifiedDatetimeUTC *time.Time `gorm:"column:modified_datetime_utc" json:"modified_datetime_utc"`
}
