package services

import (
	"testing"
	"time"

	"github.com/Vanshhsoni/kissan/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Crop{},
		&models.ActivityLog{},
		&models.Advisory{},
		&models.ChatLog{},
		&models.UserDevice{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, mobile string) *models.User {
	t.Helper()

	user := &models.User{
		Mobile:   mobile,
		Password: "not-a-real-hash",
		Name:     "Test Farmer",
		District: "Ernakulam",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createSownCrop(t *testing.T, db *gorm.DB, userID uint, name string, sownDaysAgo int, now time.Time) *models.Crop {
	t.Helper()

	sown := dayStartLocal(now).AddDate(0, 0, -sownDaysAgo)
	crop := &models.Crop{
		UserID:   userID,
		Name:     name,
		IsSown:   true,
		SownDate: &sown,
	}
	require.NoError(t, db.Create(crop).Error)
	return crop
}

// stubForecast satisfies ForecastProvider with a fixed answer.
type stubForecast struct {
	days []models.WeatherDay
}

func (s stubForecast) Forecast(district string) []models.WeatherDay {
	return s.days
}
