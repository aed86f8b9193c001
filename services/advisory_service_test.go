package services

import (
	"testing"
	"time"

	"github.com/Vanshhsoni/kissan/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAdvisoryService(t *testing.T, db *gorm.DB, forecast []models.WeatherDay) (*AdvisoryService, time.Time) {
	t.Helper()

	now := time.Date(2025, time.June, 15, 10, 30, 0, 0, time.Local)
	svc := NewAdvisoryService(db, stubForecast{days: forecast}, nil, nil)
	svc.clock = clockwork.NewFakeClockAt(now)
	return svc, dayStartLocal(now)
}

func countAdvisories(t *testing.T, db *gorm.DB, cropID uint) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Advisory{}).Where("crop_id = ?", cropID).Count(&n).Error)
	return n
}

func TestGenerateForCropIdempotentSameDay(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestAdvisoryService(t, db, nil)

	user := createTestUser(t, db, "9400000001")
	crop := createSownCrop(t, db, user.ID, "Rice", 10, svc.clock.Now())

	first, err := svc.GenerateForCrop(crop)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.GenerateForCrop(crop)
	require.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	assert.Equal(t, int64(len(second)), countAdvisories(t, db, crop.ID))
}

func TestGenerateForCropReplacesTodaysSet(t *testing.T) {
	db := newTestDB(t)
	svc, today := newTestAdvisoryService(t, db, nil)

	user := createTestUser(t, db, "9400000002")
	crop := createSownCrop(t, db, user.ID, "Rice", 10, svc.clock.Now())

	stale := models.Advisory{
		CropID:   crop.ID,
		Message:  "stale advisory from an earlier run",
		Category: models.CategoryTip,
		Date:     today,
	}
	require.NoError(t, db.Create(&stale).Error)

	fresh, err := svc.GenerateForCrop(crop)
	require.NoError(t, err)
	require.NotEmpty(t, fresh)

	var remaining []models.Advisory
	require.NoError(t, db.Where("crop_id = ?", crop.ID).Find(&remaining).Error)
	for _, a := range remaining {
		assert.NotEqual(t, stale.Message, a.Message)
	}
	assert.Len(t, remaining, len(fresh))
}

func TestGenerateForCropPurgesExpired(t *testing.T) {
	db := newTestDB(t)
	svc, today := newTestAdvisoryService(t, db, nil)

	user := createTestUser(t, db, "9400000003")
	crop := createSownCrop(t, db, user.ID, "Rice", 10, svc.clock.Now())

	expired := models.Advisory{
		CropID:   crop.ID,
		Message:  "ancient advisory",
		Category: models.CategoryTip,
		Date:     today.AddDate(0, 0, -8),
	}
	kept := models.Advisory{
		CropID:   crop.ID,
		Message:  "recent advisory",
		Category: models.CategoryTip,
		Date:     today.AddDate(0, 0, -3),
	}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&kept).Error)

	_, err := svc.GenerateForCrop(crop)
	require.NoError(t, err)

	var messages []string
	require.NoError(t, db.Model(&models.Advisory{}).
		Where("crop_id = ?", crop.ID).Pluck("message", &messages).Error)
	assert.NotContains(t, messages, "ancient advisory")
	assert.Contains(t, messages, "recent advisory")
}

func TestGenerateForCropUsesWeather(t *testing.T) {
	db := newTestDB(t)

	now := time.Date(2025, time.June, 15, 10, 30, 0, 0, time.Local)
	today := dayStartLocal(now)
	hot := []models.WeatherDay{{Date: today, MaxTempC: 38, AvgHumidity: 60}}

	svc, _ := newTestAdvisoryService(t, db, hot)

	user := createTestUser(t, db, "9400000004")
	crop := createSownCrop(t, db, user.ID, "Banana", 40, now)

	advisories, err := svc.GenerateForCrop(crop)
	require.NoError(t, err)

	var sawHeatAlert bool
	for _, a := range advisories {
		if a.Category == models.CategoryUrgent {
			assert.Contains(t, a.Message, "High temperature")
			sawHeatAlert = true
		}
	}
	assert.True(t, sawHeatAlert)
}

func TestMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	svc, today := newTestAdvisoryService(t, db, nil)

	owner := createTestUser(t, db, "9400000005")
	other := createTestUser(t, db, "9400000006")
	crop := createSownCrop(t, db, owner.ID, "Rice", 10, svc.clock.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Advisory{
			CropID:   crop.ID,
			Message:  "unread advisory",
			Category: models.CategoryRoutine,
			Date:     today,
		}).Error)
	}

	// A stranger's request looks like a missing crop.
	err := svc.MarkAllRead(crop.ID, other.ID)
	assert.ErrorIs(t, err, ErrCropNotFound)

	var unread int64
	require.NoError(t, db.Model(&models.Advisory{}).
		Where("crop_id = ? AND is_acknowledged = ?", crop.ID, false).Count(&unread).Error)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, svc.MarkAllRead(crop.ID, owner.ID))
	require.NoError(t, db.Model(&models.Advisory{}).
		Where("crop_id = ? AND is_acknowledged = ?", crop.ID, false).Count(&unread).Error)
	assert.Zero(t, unread)
}

func TestListForCropHidesForeignCrops(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestAdvisoryService(t, db, nil)

	owner := createTestUser(t, db, "9400000007")
	other := createTestUser(t, db, "9400000008")
	crop := createSownCrop(t, db, owner.ID, "Rice", 10, svc.clock.Now())

	_, err := svc.ListForCrop(crop.ID, other.ID)
	assert.ErrorIs(t, err, ErrCropNotFound)

	_, err = svc.ListForCrop(9999, owner.ID)
	assert.ErrorIs(t, err, ErrCropNotFound)
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	svc, today := newTestAdvisoryService(t, db, nil)

	user := createTestUser(t, db, "9400000009")
	active := createSownCrop(t, db, user.ID, "Rice", 10, svc.clock.Now())

	harvested := createSownCrop(t, db, user.ID, "Okra", 70, svc.clock.Now())
	require.NoError(t, db.Model(harvested).Update("is_harvested", true).Error)

	seed := []models.Advisory{
		{CropID: active.ID, Message: "urgent", Category: models.CategoryUrgent, Date: today},
		{CropID: active.ID, Message: "routine", Category: models.CategoryRoutine, Date: today},
		{CropID: active.ID, Message: "tip read", Category: models.CategoryTip, Date: today, IsAcknowledged: true},
		// Outside the retention window, must not count.
		{CropID: active.ID, Message: "expired", Category: models.CategoryUrgent, Date: today.AddDate(0, 0, -8)},
		// Harvested crop, must not count.
		{CropID: harvested.ID, Message: "closed cycle", Category: models.CategoryTip, Date: today},
	}
	require.NoError(t, db.Create(&seed).Error)

	stats, err := svc.GetStats(user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.ActiveCrops)
	assert.Equal(t, int64(3), stats.Advisories.Total)
	assert.Equal(t, int64(1), stats.Advisories.Urgent)
	assert.Equal(t, int64(1), stats.Advisories.Routine)
	assert.Equal(t, int64(1), stats.Advisories.Tip)
	assert.Equal(t, int64(2), stats.Advisories.Unread)
}

func TestCleanupOld(t *testing.T) {
	db := newTestDB(t)
	svc, today := newTestAdvisoryService(t, db, nil)

	user := createTestUser(t, db, "9400000010")
	crop := createSownCrop(t, db, user.ID, "Rice", 10, svc.clock.Now())

	require.NoError(t, db.Create(&models.Advisory{
		CropID: crop.ID, Message: "old", Category: models.CategoryTip, Date: today.AddDate(0, 0, -10),
	}).Error)
	require.NoError(t, db.Create(&models.Advisory{
		CropID: crop.ID, Message: "new", Category: models.CategoryTip, Date: today,
	}).Error)

	require.NoError(t, svc.CleanupOld())

	var messages []string
	require.NoError(t, db.Model(&models.Advisory{}).Pluck("message", &messages).Error)
	assert.Equal(t, []string{"new"}, messages)
}
