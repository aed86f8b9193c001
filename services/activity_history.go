package services

import (
	"errors"
	"time"

	"github.com/Vanshhsoni/kissan/models"
	"github.com/Vanshhsoni/kissan/utils"

	"gorm.io/gorm"
)

// ActivityHistory answers "when did this crop last get watered /
// fertilized / checked for pests". Pure queries, no mutation.
type ActivityHistory struct {
	db *gorm.DB
}

func NewActivityHistory(db *gorm.DB) *ActivityHistory {
	return &ActivityHistory{db: db}
}

// Recency returns days elapsed since the latest log with each flag set.
// Activities never logged get utils.DaysNeverLogged so staleness rules
// still fire instead of being muted by missing data.
func (h *ActivityHistory) Recency(cropID uint, today time.Time) (utils.ActivityRecency, error) {
	rec := utils.ActivityRecency{
		DaysSinceIrrigation: utils.DaysNeverLogged,
		DaysSinceFertilizer: utils.DaysNeverLogged,
		DaysSincePesticide:  utils.DaysNeverLogged,
	}

	irrigation, err := h.lastWith(cropID, "did_irrigate")
	if err != nil {
		return rec, err
	}
	if irrigation != nil {
		rec.DaysSinceIrrigation = daysBetween(irrigation.Date, today)
	}

	fertilizer, err := h.lastWith(cropID, "did_fertilize")
	if err != nil {
		return rec, err
	}
	if fertilizer != nil {
		rec.DaysSinceFertilizer = daysBetween(fertilizer.Date, today)
	}

	pesticide, err := h.lastWith(cropID, "did_apply_pesticide")
	if err != nil {
		return rec, err
	}
	if pesticide != nil {
		rec.DaysSincePesticide = daysBetween(pesticide.Date, today)
	}

	return rec, nil
}

func (h *ActivityHistory) lastWith(cropID uint, flag string) (*models.ActivityLog, error) {
	var entry models.ActivityLog
	err := h.db.
		Where("crop_id = ? AND "+flag+" = ?", cropID, true).
		Order("date DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, to.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(t.Sub(f).Hours() / 24)
}
