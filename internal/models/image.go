package models

import (
	"time"
)

// Image is read-only from the feed's perspective. URL may be null for
// rows whose upload never finished; the feeds handle that per their own
// policy (recent drops, top tags).
type Image struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	URL                *string   `gorm:"column:url" json:"url"`
	ImageDescription   *string   `gorm:"type:text" json:"image_description"`
	CreatedDatetimeUTC time.Time `gorm:"column:created_datetime_utc" json:"created_datetime_utc"`
}
