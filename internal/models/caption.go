package models

import (
	"time"
)

// Caption is the core content unit: a short text attached to an image.
// LikeCount is a cached counter kept in step with the caption_votes table;
// it is nullable in the schema and treated as 0 when absent.
type Caption struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	ProfileID          string    `gorm:"size:36;index" json:"profile_id"`
	Content            *string   `gorm:"type:text" json:"content"`
	ImageID            *string   `gorm:"size:36;index" json:"image_id"`
	LikeCount          *int      `gorm:"column:like_count" json:"like_count"`
	IsPublic           bool      `gorm:"default:true" json:"is_public"`
	CreatedDatetimeUTC time.Time `gorm:"column:created_datetime_utc;not null;index" json:"created_datetime_utc"`
}

// LikeCountValue reads the cached counter with null meaning 0.
func (c *Caption) LikeCountValue() int {
	if c.LikeCount == nil {
		return 0
	}
	return *c.LikeCount
}
