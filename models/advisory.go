package models

import (
	"time"

	"gorm.io/gorm"
)

// Advisory categories. Display metadata only; the analyzer never
// branches on them.
const (
	CategoryUrgent  = "URGENT"
	CategoryRoutine = "ROUTINE"
	CategoryTip     = "TIP"
)

// Advisory is one generated recommendation for a crop on a given day.
// Regeneration replaces the whole set for that day, and rows older than
// the retention window are purged.
type Advisory struct {
	gorm.Model
	CropID uint `gorm:"index;not null" json:"crop_id"`

	Message        string    `gorm:"type:text;not null" json:"message"`
	Category       string    `gorm:"size:10;not null" json:"category"` // URGENT | ROUTINE | TIP
	Date           time.Time `gorm:"index;not null" json:"date"`       // generation day, local midnight
	IsAcknowledged bool      `gorm:"default:false" json:"is_acknowledged"`
}
