// controllers/activity_log_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/Vanshhsoni/kissan/services"

	"github.com/gin-gonic/gin"
)

type ActivityLogController struct {
	logs  *services.ActivityLogService
	crops *services.CropService
}

func NewActivityLogController(logs *services.ActivityLogService, crops *services.CropService) *ActivityLogController {
	return &ActivityLogController{logs: logs, crops: crops}
}

type dailyLogInput struct {
	DidIrrigate       bool   `json:"did_irrigate"`
	DidFertilize      bool   `json:"did_fertilize"`
	DidApplyPesticide bool   `json:"did_apply_pesticide"`
	Notes             string `json:"notes"`
}

// SaveDailyLog upserts today's care record for a crop.
func (ac *ActivityLogController) SaveDailyLog(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	if _, err := ac.crops.Get(id, uid); err != nil {
		respondCropErr(c, err)
		return
	}

	var input dailyLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := ac.logs.UpsertDailyLog(id, time.Now(),
		input.DidIrrigate, input.DidFertilize, input.DidApplyPesticide, input.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// TodayLog returns today's entry so the form toggles can be prefilled.
func (ac *ActivityLogController) TodayLog(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	if _, err := ac.crops.Get(id, uid); err != nil {
		respondCropErr(c, err)
		return
	}

	entry, err := ac.logs.LogForDate(id, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": entry})
}

// Calendar returns the crop's activity history keyed by date, with the
// sown/harvest markers included.
func (ac *ActivityLogController) Calendar(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	crop, err := ac.crops.Get(id, uid)
	if err != nil {
		respondCropErr(c, err)
		return
	}

	events, err := ac.logs.CalendarEvents(crop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
