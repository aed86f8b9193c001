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

type AIController struct {
	chat  *services.ChatService
	crops *services.CropService
}

func NewAIController(chat *services.ChatService, crops *services.CropService) *AIController {
	return &AIController{chat: chat, crops: crops}
}

// UserContext builds the profile the assistant is primed with: who the
// farmer is, their crops, recent activity and pending advisories.
func (ai *AIController) UserContext(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	crops, err := ai.crops.ListByUser(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	since := time.Now().AddDate(0, 0, -15)
	var activities []models.ActivityLog
	err = config.DB.Model(&models.ActivityLog{}).
		Joins("JOIN crops ON crops.id = activity_logs.crop_id").
		Where("crops.user_id = ? AND crops.deleted_at IS NULL AND activity_logs.date >= ?", uid, since).
		Order("activity_logs.date DESC").
		Limit(20).
		Find(&activities).Error
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
		"profile": gin.H{
			"name":      user.Name,
			"district":  user.District,
			"acreage":   user.Acreage,
			"soil_type": user.SoilType,
			"pincode":   user.Pincode,
		},
		"crops":              crops,
		"recent_activities":  activities,
		"pending_advisories": pending,
		"season":             utils.CurrentSeason(time.Now().Month()),
	})
}

type saveChatInput struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
	Language  string `json:"language"`
	Category  string `json:"category"`
}

func (ai *AIController) SaveChat(c *gin.Context) {
	uid := c.GetUint("userID")

	var input saveChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := ai.chat.SaveInteraction(uid, input.SessionID,
		input.Question, input.Answer, input.Language, input.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session_id": entry.SessionID, "id": entry.ID})
}

func (ai *AIController) RecentChats(c *gin.Context) {
	uid := c.GetUint("userID")

	logs, err := ai.chat.Recent(uid, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": logs})
}

// FarmingTips returns season-appropriate tips plus a care reminder per
// active crop.
func (ai *AIController) FarmingTips(c *gin.Context) {
	uid := c.GetUint("userID")

	tips := utils.SeasonalTips(time.Now().Month())

	crops, err := ai.crops.ListByUser(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, crop := range crops {
		if crop.IsSown && !crop.IsHarvested {
			tips = append(tips, "Continue the daily care routine for "+crop.DisplayName()+".")
		}
	}

	if len(tips) > 10 {
		tips = tips[:10]
	}
	c.JSON(http.StatusOK, gin.H{"tips": tips})
}
