package services

import (
	"errors"
	"time"

	"github.com/Vanshhsoni/kissan/models"

	"gorm.io/gorm"
)

// ErrDuplicateActiveCrop rejects a second unharvested cycle with the
// same name for the same user.
var ErrDuplicateActiveCrop = errors.New("an active crop with this name already exists")

type CropService struct {
	db *gorm.DB
}

func NewCropService(db *gorm.DB) *CropService {
	return &CropService{db: db}
}

// Create registers a new, unsown growing cycle. A new cycle of the same
// name is allowed only once the previous one is harvested.
func (s *CropService) Create(crop *models.Crop) error {
	var count int64
	err := s.db.Model(&models.Crop{}).
		Where("user_id = ? AND name = ? AND is_harvested = ?", crop.UserID, crop.Name, false).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateActiveCrop
	}
	return s.db.Create(crop).Error
}

// Get fetches a crop scoped to its owner; a crop belonging to someone
// else looks identical to a missing one.
func (s *CropService) Get(cropID, userID uint) (*models.Crop, error) {
	var crop models.Crop
	if err := s.db.Where("id = ? AND user_id = ?", cropID, userID).First(&crop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}
	return &crop, nil
}

func (s *CropService) ListByUser(userID uint) ([]models.Crop, error) {
	var crops []models.Crop
	err := s.db.Where("user_id = ?", userID).Order("id DESC").Find(&crops).Error
	return crops, err
}

// Sow marks the crop sown today.
func (s *CropService) Sow(cropID, userID uint, today time.Time) (*models.Crop, error) {
	crop, err := s.Get(cropID, userID)
	if err != nil {
		return nil, err
	}
	day := dayStartLocal(today)
	crop.IsSown = true
	crop.SownDate = &day
	if err := s.db.Save(crop).Error; err != nil {
		return nil, err
	}
	return crop, nil
}

// Harvest closes the growing cycle. The crop stays around as history.
func (s *CropService) Harvest(cropID, userID uint, today time.Time) (*models.Crop, error) {
	crop, err := s.Get(cropID, userID)
	if err != nil {
		return nil, err
	}
	if !crop.IsSown {
		return nil, errors.New("crop has not been sown")
	}
	day := dayStartLocal(today)
	crop.IsHarvested = true
	crop.HarvestedDate = &day
	if err := s.db.Save(crop).Error; err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *CropService) SetImageURL(cropID, userID uint, url string) error {
	crop, err := s.Get(cropID, userID)
	if err != nil {
		return err
	}
	crop.ImageURL = url
	return s.db.Save(crop).Error
}
