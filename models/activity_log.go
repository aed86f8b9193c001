package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityLog is one day's care record for a crop. There is at most one
// row per (crop, date); saving the daily form upserts the existing row.
type ActivityLog struct {
	gorm.Model
	CropID uint      `gorm:"uniqueIndex:idx_activity_crop_date;not null" json:"crop_id"`
	Date   time.Time `gorm:"uniqueIndex:idx_activity_crop_date;not null" json:"date"` // truncated to local midnight

	DidIrrigate       bool `gorm:"default:false" json:"did_irrigate"`
	DidFertilize      bool `gorm:"default:false" json:"did_fertilize"`
	DidApplyPesticide bool `gorm:"default:false" json:"did_apply_pesticide"`

	Notes string `gorm:"type:text" json:"notes"`
}
