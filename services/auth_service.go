package services

import (
	"errors"

	"github.com/Vanshhsoni/kissan/config"
	"github.com/Vanshhsoni/kissan/models"
	"github.com/Vanshhsoni/kissan/utils"
)

// RegisterUser creates a farmer account keyed by mobile number. The
// district must be one weather can be fetched for.
func RegisterUser(mobile, password, name, district, acreage, soilType, pincode string) error {
	if _, ok := districtCoordinates[district]; !ok {
		return errors.New("unknown district")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Mobile:   mobile,
		Password: hashedPassword,
		Name:     name,
		District: district,
		Acreage:  acreage,
		SoilType: soilType,
		Pincode:  pincode,
	}

	result := config.DB.Create(&user)
	return result.Error
}

func FindUserByMobile(mobile string) (*models.User, error) {
	var user models.User
	result := config.DB.Where("mobile = ?", mobile).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func AuthenticateUser(mobile, password string) (string, error) {
	user, err := FindUserByMobile(mobile)
	if err != nil {
		return "", errors.New("user not found")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Mobile)
	if err != nil {
		return "", err
	}

	return token, nil
}
