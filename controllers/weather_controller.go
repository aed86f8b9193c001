package controllers

import (
	"net/http"

	"github.com/Vanshhsoni/kissan/config"
	"github.com/Vanshhsoni/kissan/models"
	"github.com/Vanshhsoni/kissan/services"

	"github.com/gin-gonic/gin"
)

type WeatherController struct {
	weather *services.WeatherService
}

func NewWeatherController(weather *services.WeatherService) *WeatherController {
	return &WeatherController{weather: weather}
}

// Forecast returns the five-day per-day forecast for the user's
// district. Unavailable weather is a normal response, not an error.
func (wc *WeatherController) Forecast(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	forecast := wc.weather.Forecast(user.District)
	if forecast == nil {
		c.JSON(http.StatusOK, gin.H{"status": "unavailable", "forecast": []models.WeatherDay{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "available", "forecast": forecast})
}

// Summary returns the compact dashboard view of today's weather.
func (wc *WeatherController) Summary(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, wc.weather.Summary(user.District))
}
