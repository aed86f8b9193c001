package models

import (
	"time"

	"gorm.io/gorm"
)

// Crop is one growing cycle of a named plant for one user. Harvested
// crops stay around as history; a user can start a new cycle with the
// same name once the previous one is harvested.
type Crop struct {
	gorm.Model
	UserID uint `gorm:"index;not null" json:"user_id"`

	Name        string `gorm:"not null;size:100" json:"name"` // Malayalam name
	EnglishName string `gorm:"size:100" json:"english_name"`

	// Care parameters, usually prefilled from the crop catalog
	ImageURL         string `json:"image_url"`
	Fertilizer       string `gorm:"size:200" json:"fertilizer"`
	Pesticide        string `gorm:"size:200" json:"pesticide"`
	IrrigationLiters string `gorm:"size:50" json:"irrigation_liters"`
	SunlightHours    string `gorm:"size:50" json:"sunlight_hours"`
	SowingMonths     MonthSet `gorm:"type:text" json:"sowing_months"`
	HarvestingMonths MonthSet `gorm:"type:text" json:"harvesting_months"`
	Notes            string   `gorm:"type:text" json:"notes"`

	// Lifecycle: IsSown implies SownDate set; IsHarvested implies IsSown
	// and HarvestedDate >= SownDate.
	SownDate      *time.Time `json:"sown_date"`
	HarvestedDate *time.Time `json:"harvested_date"`
	IsSown        bool       `gorm:"default:false" json:"is_sown"`
	IsHarvested   bool       `gorm:"default:false" json:"is_harvested"`

	ActivityLogs []ActivityLog `gorm:"foreignKey:CropID;constraint:OnDelete:CASCADE" json:"activity_logs,omitempty"`
	Advisories   []Advisory    `gorm:"foreignKey:CropID;constraint:OnDelete:CASCADE" json:"advisories,omitempty"`
}

// DisplayName prefers the English name when present, matching how the
// dashboard labels crops.
func (c *Crop) DisplayName() string {
	if c.EnglishName != "" {
		return c.EnglishName
	}
	return c.Name
}

// AgeDays is the number of whole days since sowing, at the given date.
func (c *Crop) AgeDays(today time.Time) int {
	if c.SownDate == nil {
		return 0
	}
	sown := time.Date(c.SownDate.Year(), c.SownDate.Month(), c.SownDate.Day(), 0, 0, 0, 0, today.Location())
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return int(day.Sub(sown).Hours() / 24)
}
