package controllers

import (
	"net/http"
	"time"

	"github.com/Vanshhsoni/kissan/config"
	"github.com/Vanshhsoni/kissan/models"
	"github.com/Vanshhsoni/kissan/services"
	"github.com/Vanshhsoni/kissan/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	crops      *services.CropService
	advisories *services.AdvisoryService
}

func NewDashboardController(crops *services.CropService, advisories *services.AdvisoryService) *DashboardController {
	return &DashboardController{crops: crops, advisories: advisories}
}

// Dashboard aggregates what the landing page needs: the user's crops,
// advisory stats, pending advisories and the current season.
func (dc *DashboardController) Dashboard(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	crops, err := dc.crops.ListByUser(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats, err := dc.advisories.GetStats(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var pending []models.Advisory
	err = config.DB.Model(&models.Advisory{}).
		Joins("JOIN crops ON crops.id = advisories.crop_id").
		Where("crops.user_id = ? AND crops.deleted_at IS NULL AND advisories.is_acknowledged = ?", uid, false).
		Order("advisories.date DESC").
		Limit(5).
		Find(&pending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"district":           user.District,
		"season":             utils.CurrentSeason(time.Now().Month()),
		"crops":              crops,
		"stats":              stats,
		"pending_advisories": pending,
	})
}
