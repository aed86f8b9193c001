package controllers

import (
	"errors"
	"net/http"

	"github.com/Vanshhsoni/kissan/services"

	"github.com/gin-gonic/gin"
)

type AdvisoryController struct {
	advisories *services.AdvisoryService
	crops      *services.CropService
}

func NewAdvisoryController(advisories *services.AdvisoryService, crops *services.CropService) *AdvisoryController {
	return &AdvisoryController{advisories: advisories, crops: crops}
}

// Generate runs advisory generation for one crop and returns today's
// fresh set. Calling it repeatedly within a day replaces rather than
// accumulates.
func (ac *AdvisoryController) Generate(c *gin.Context) {
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

	advisories, err := ac.advisories.GenerateForCrop(crop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advisories": advisories})
}

func (ac *AdvisoryController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	advisories, err := ac.advisories.ListForCrop(id, uid)
	if err != nil {
		respondCropErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advisories": advisories})
}

// MarkAllRead acknowledges every unread advisory for a crop.
func (ac *AdvisoryController) MarkAllRead(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := cropID(c)
	if !ok {
		return
	}

	if err := ac.advisories.MarkAllRead(id, uid); err != nil {
		if errors.Is(err, services.ErrCropNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "crop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (ac *AdvisoryController) Stats(c *gin.Context) {
	uid := c.GetUint("userID")

	stats, err := ac.advisories.GetStats(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
