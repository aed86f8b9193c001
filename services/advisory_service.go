package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Vanshhsoni/kissan/models"
	"github.com/Vanshhsoni/kissan/utils"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// Advisories older than this are purged on generation and by the
// periodic cleanup sweep.
const retentionDays = 7

// ErrCropNotFound is returned both when a crop does not exist and when
// it belongs to someone else, so requests cannot probe for other users'
// crops.
var ErrCropNotFound = errors.New("crop not found")

// AdvisoryService owns the advisory lifecycle: daily generation,
// acknowledgment, stats and retention cleanup. Realtime hub, push and
// mail fan-out are optional; a nil dependency just skips that channel.
type AdvisoryService struct {
	db      *gorm.DB
	weather ForecastProvider
	history *ActivityHistory
	clock   clockwork.Clock

	hub  *RealtimeHub
	push *PushService

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewAdvisoryService(db *gorm.DB, weather ForecastProvider, hub *RealtimeHub, push *PushService) *AdvisoryService {
	return &AdvisoryService{
		db:      db,
		weather: weather,
		history: NewActivityHistory(db),
		clock:   clockwork.NewRealClock(),
		hub:     hub,
		push:    push,
		locks:   make(map[uint]*sync.Mutex),
	}
}

// lockFor serializes generation per crop: delete-today-then-insert is
// not safe against a second concurrent generation for the same crop.
func (s *AdvisoryService) lockFor(cropID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[cropID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[cropID] = l
	}
	return l
}

// GenerateForCrop regenerates today's advisories for one crop:
// purge expired rows, drop any set already generated today, analyze
// current conditions, persist the fresh set. Weather being unavailable
// and analyzer faults both degrade; only persistence errors propagate.
func (s *AdvisoryService) GenerateForCrop(crop *models.Crop) ([]models.Advisory, error) {
	l := s.lockFor(crop.ID)
	l.Lock()
	defer l.Unlock()

	today := dayStartLocal(s.clock.Now())
	cutoff := today.AddDate(0, 0, -retentionDays)

	var owner models.User
	if err := s.db.First(&owner, crop.UserID).Error; err != nil {
		return nil, err
	}

	forecast := s.weather.Forecast(owner.District) // nil when unavailable

	recency, err := s.history.Recency(crop.ID, today)
	if err != nil {
		return nil, err
	}

	drafts := s.analyze(crop, recency, forecast, today)

	advisories := make([]models.Advisory, 0, len(drafts))
	for _, d := range drafts {
		advisories = append(advisories, models.Advisory{
			CropID:   crop.ID,
			Message:  d.Message,
			Category: d.Category,
			Date:     today,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("crop_id = ? AND date < ?", crop.ID, cutoff).
			Delete(&models.Advisory{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("crop_id = ? AND date = ?", crop.ID, today).
			Delete(&models.Advisory{}).Error; err != nil {
			return err
		}
		if len(advisories) == 0 {
			return nil
		}
		return tx.Create(&advisories).Error
	})
	if err != nil {
		return nil, err
	}

	s.fanOut(&owner, crop, advisories)
	return advisories, nil
}

// analyze wraps the pure rule engine so an unexpected fault inside it
// cannot leave a crop with zero advisories.
func (s *AdvisoryService) analyze(crop *models.Crop, rec utils.ActivityRecency, forecast []models.WeatherDay, today time.Time) (drafts []utils.AdvisoryDraft) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("advisory analysis failed for crop %d: %v", crop.ID, r)
			drafts = []utils.AdvisoryDraft{{
				Message:  fmt.Sprintf("Keep monitoring %s and continue the regular care routine.", crop.DisplayName()),
				Category: models.CategoryTip,
			}}
		}
	}()
	return utils.AnalyzeCropConditions(crop, rec, forecast, today)
}

func (s *AdvisoryService) fanOut(owner *models.User, crop *models.Crop, advisories []models.Advisory) {
	if len(advisories) == 0 {
		return
	}
	if s.hub != nil {
		s.hub.BroadcastAdvisories(owner.ID, map[string]any{
			"kind":       "advisory.generated",
			"crop_id":    crop.ID,
			"advisories": advisories,
		})
	}

	var urgent []string
	for _, a := range advisories {
		if a.Category == models.CategoryUrgent {
			urgent = append(urgent, a.Message)
		}
	}
	if len(urgent) == 0 {
		return
	}
	if s.push != nil {
		s.push.PushToUser(owner.ID, "Urgent crop advisory", urgent[0], map[string]string{
			"cropId": fmt.Sprintf("%d", crop.ID),
		})
	}
	if owner.Email != "" {
		if err := utils.SendUrgentAdvisoryEmail(owner.Email, crop.DisplayName(), urgent); err != nil {
			log.Printf("advisory mail failed for user %d: %v", owner.ID, err)
		}
	}
}

// MarkAllRead acknowledges every unread advisory of a crop, provided
// the crop belongs to the requesting user.
func (s *AdvisoryService) MarkAllRead(cropID, userID uint) error {
	var crop models.Crop
	if err := s.db.Where("id = ? AND user_id = ?", cropID, userID).First(&crop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCropNotFound
		}
		return err
	}
	return s.db.Model(&models.Advisory{}).
		Where("crop_id = ? AND is_acknowledged = ?", cropID, false).
		Update("is_acknowledged", true).Error
}

// ListForCrop returns a crop's advisories, newest first, scoped to the
// owning user.
func (s *AdvisoryService) ListForCrop(cropID, userID uint) ([]models.Advisory, error) {
	var crop models.Crop
	if err := s.db.Where("id = ? AND user_id = ?", cropID, userID).First(&crop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}
	var advisories []models.Advisory
	err := s.db.Where("crop_id = ?", cropID).
		Order("date DESC, id ASC").
		Find(&advisories).Error
	return advisories, err
}

// UserStats summarizes a user's active crops and the last week of
// advisories across their non-harvested crops.
type UserStats struct {
	ActiveCrops int64 `json:"active_crops"`
	Advisories  struct {
		Total   int64 `json:"total"`
		Urgent  int64 `json:"urgent"`
		Routine int64 `json:"routine"`
		Tip     int64 `json:"tip"`
		Unread  int64 `json:"unread"`
	} `json:"advisories"`
}

func (s *AdvisoryService) GetStats(userID uint) (*UserStats, error) {
	stats := &UserStats{}

	if err := s.db.Model(&models.Crop{}).
		Where("user_id = ? AND is_harvested = ?", userID, false).
		Count(&stats.ActiveCrops).Error; err != nil {
		return nil, err
	}

	cutoff := dayStartLocal(s.clock.Now()).AddDate(0, 0, -retentionDays)
	base := func() *gorm.DB {
		return s.db.Model(&models.Advisory{}).
			Joins("JOIN crops ON crops.id = advisories.crop_id").
			Where("crops.user_id = ? AND crops.is_harvested = ? AND crops.deleted_at IS NULL", userID, false).
			Where("advisories.date >= ?", cutoff)
	}

	if err := base().Count(&stats.Advisories.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("advisories.category = ?", models.CategoryUrgent).
		Count(&stats.Advisories.Urgent).Error; err != nil {
		return nil, err
	}
	if err := base().Where("advisories.category = ?", models.CategoryRoutine).
		Count(&stats.Advisories.Routine).Error; err != nil {
		return nil, err
	}
	if err := base().Where("advisories.category = ?", models.CategoryTip).
		Count(&stats.Advisories.Tip).Error; err != nil {
		return nil, err
	}
	if err := base().Where("advisories.is_acknowledged = ?", false).
		Count(&stats.Advisories.Unread).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// CleanupOld is the global retention sweep, independent of per-crop
// generation so it can run on its own schedule.
func (s *AdvisoryService) CleanupOld() error {
	cutoff := dayStartLocal(s.clock.Now()).AddDate(0, 0, -retentionDays)
	return s.db.Unscoped().Where("date < ?", cutoff).Delete(&models.Advisory{}).Error
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}
