package controllers

import (
	"net/http"

	"github.com/Vanshhsoni/kissan/services"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	District string `json:"district" binding:"required"`
	Acreage  string `json:"acreage" binding:"required"`
	SoilType string `json:"soil_type" binding:"required"`
	Pincode  string `json:"pincode" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.RegisterUser(input.Mobile, input.Password, input.Name,
		input.District, input.Acreage, input.SoilType, input.Pincode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
}

type LoginInput struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := services.AuthenticateUser(input.Mobile, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid mobile or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Districts lists the districts available at registration.
func Districts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"districts": services.KnownDistricts()})
}
