package services

import (
	"errors"
	"time"

	"github.com/Vanshhsoni/kissan/models"

	"gorm.io/gorm"
)

type ActivityLogService struct {
	db *gorm.DB
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{db: db}
}

// UpsertDailyLog saves today's care record, overwriting the existing
// row for (crop, date) if one exists.
func (s *ActivityLogService) UpsertDailyLog(cropID uint, date time.Time, irrigated, fertilized, pesticide bool, notes string) error {
	day := dayStartLocal(date)

	// Upsert by (crop_id, date @ local midnight). Assign takes a map so
	// that flags flipped back to false are written too.
	var entry models.ActivityLog
	return s.db.
		Where("crop_id = ? AND date = ?", cropID, day).
		Assign(map[string]interface{}{
			"did_irrigate":        irrigated,
			"did_fertilize":       fertilized,
			"did_apply_pesticide": pesticide,
			"notes":               notes,
		}).
		FirstOrCreate(&entry).Error
}

// LogForDate returns the single entry for that day, or nil.
func (s *ActivityLogService) LogForDate(cropID uint, date time.Time) (*models.ActivityLog, error) {
	day := dayStartLocal(date)

	var entry models.ActivityLog
	err := s.db.Where("crop_id = ? AND date = ?", cropID, day).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (s *ActivityLogService) ListForCrop(cropID uint) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := s.db.Where("crop_id = ?", cropID).Order("date DESC").Find(&entries).Error
	return entries, err
}

// CalendarEvents maps dates ("2006-01-02") to the event names the
// activity calendar renders, including the sown and harvest markers
// from the crop itself.
func (s *ActivityLogService) CalendarEvents(crop *models.Crop) (map[string][]string, error) {
	entries, err := s.ListForCrop(crop.ID)
	if err != nil {
		return nil, err
	}

	events := map[string][]string{}
	for _, e := range entries {
		key := e.Date.Format("2006-01-02")
		if e.DidIrrigate {
			events[key] = append(events[key], "irrigate")
		}
		if e.DidFertilize {
			events[key] = append(events[key], "fertilize")
		}
		if e.DidApplyPesticide {
			events[key] = append(events[key], "pesticide")
		}
	}
	if crop.IsSown && crop.SownDate != nil {
		key := crop.SownDate.Format("2006-01-02")
		events[key] = append(events[key], "sown")
	}
	if crop.IsHarvested && crop.HarvestedDate != nil {
		key := crop.HarvestedDate.Format("2006-01-02")
		events[key] = append(events[key], "harvest")
	}
	return events, nil
}
