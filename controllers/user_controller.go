package controllers

import (
	"net/http"

	"github.com/Vanshhsoni/kissan/config"
	"github.com/Vanshhsoni/kissan/models"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateProfileInput struct {
	Name     string `json:"name"`
	District string `json:"district"`
	Acreage  string `json:"acreage"`
	SoilType string `json:"soil_type"`
	Pincode  string `json:"pincode"`
	Email    string `json:"email"`
}

func UpdateProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.District != "" {
		user.District = input.District
	}
	if input.Acreage != "" {
		user.Acreage = input.Acreage
	}
	if input.SoilType != "" {
		user.SoilType = input.SoilType
	}
	if input.Pincode != "" {
		user.Pincode = input.Pincode
	}
	if input.Email != "" {
		user.Email = input.Email
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
