package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Vanshhsoni/kissan/models"
	"github.com/Vanshhsoni/kissan/services"
	"github.com/Vanshhsoni/kissan/utils"

	"github.com/gin-gonic/gin"
)

type CropController struct {
	crops   *services.CropService
	catalog *services.CropCatalog
}

func NewCropController(crops *services.CropService, catalog *services.CropCatalog) *CropController {
	return &CropController{crops: crops, catalog: catalog}
}

func cropID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid crop id"})
		return 0, false
	}
	return uint(id), true
}

type addCropInput struct {
	Name             string          `json:"name" binding:"required"`
	EnglishName      string          `json:"english_name"`
	Fertilizer       string          `json:"fertilizer"`
	Pesticide        string          `json:"pesticide"`
	IrrigationLiters string          `json:"irrigation_liters"`
	SunlightHours    string          `json:"sunlight_hours"`
	SowingMonths     models.MonthSet `json:"sowing_months"`
	HarvestingMonths models.MonthSet `json:"harvesting_months"`
	Notes            string          `json:"notes"`
}

// AddCrop registers a new growing cycle. Care parameters left empty are
// prefilled from the crop catalog when the name is known.
func (cc *CropController) AddCrop(c *gin.Context) {
	uid := c.GetUint("userID")

	var input addCropInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crop := models.Crop{
		UserID:           uid,
		Name:             input.Name,
		EnglishName:      input.EnglishName,
		Fertilizer:       input.Fertilizer,
		Pesticide:        input.Pesticide,
		IrrigationLiters: input.IrrigationLiters,
		SunlightHours:    input.SunlightHours,
		SowingMonths:     input.SowingMonths,
		HarvestingMonths: input.HarvestingMonths,
		Notes:            input.Notes,
	}

	if cc.catalog != nil {
		if entry, ok := cc.catalog.Lookup(input.Name); ok {
			if crop.EnglishName == "" {
				crop.EnglishName = entry.EnglishName
			}
			if crop.ImageURL == "" {
				crop.ImageURL = entry.ImageURL
			}
			if crop.Fertilizer == "" {
				crop.Fertilizer = entry.Fertilizer
			}
			if crop.Pesticide == "" {
				crop.Pesticide = entry.Pesticide
			}
			if crop.IrrigationLiters == "" {
				crop.IrrigationLiters = entry.IrrigationLiters
			}
			if crop.SunlightHours == "" {
				crop.SunlightHours = entry.SunlightHours
			}
			if len(crop.SowingMonths) == 0 {
				crop.SowingMonths = entry.SowingMonths
			}
			if len(crop.HarvestingMonths) == 0 {
				crop.HarvestingMonths = entry.HarvestingMonths
			}
		}
	}

	if err := cc.crops.Create(&crop); err != nil {
		if errors.Is(err, services.ErrDuplicateActiveCrop) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, crop)
}

func (cc *CropController) ListCrops(c *gin.Context) {
	uid := c.GetUint("userID")

	crops, err := cc.crops.ListByUser(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"crops": crops})
}

func (cc *CropController) GetCrop(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	crop, err := cc.crops.Get(id, uid)
	if err != nil {
		respondCropErr(c, err)
		return
	}

	c.JSON(http.StatusOK, crop)
}

func (cc *CropController) SowCrop(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	crop, err := cc.crops.Sow(id, uid, time.Now())
	if err != nil {
		respondCropErr(c, err)
		return
	}

	c.JSON(http.StatusOK, crop)
}

func (cc *CropController) HarvestCrop(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	crop, err := cc.crops.Harvest(id, uid, time.Now())
	if err != nil {
		respondCropErr(c, err)
		return
	}

	c.JSON(http.StatusOK, crop)
}

type cropPhotoInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadCropPhoto stores a photo on S3 and records its URL on the crop.
func (cc *CropController) UploadCropPhoto(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	if _, err := cc.crops.Get(id, uid); err != nil {
		respondCropErr(c, err)
		return
	}

	var input cropPhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	url, err := utils.UploadCropImage(input.ImageBase64, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	if err := cc.crops.SetImageURL(id, uid, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Catalog exposes the crop catalog for the add-crop picker.
func (cc *CropController) Catalog(c *gin.Context) {
	if cc.catalog == nil {
		c.JSON(http.StatusOK, gin.H{"crops": []services.CatalogEntry{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"crops": cc.catalog.Entries()})
}

func respondCropErr(c *gin.Context, err error) {
	if errors.Is(err, services.ErrCropNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "crop not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
