package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Mobile   string `gorm:"uniqueIndex;not null" json:"mobile"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
	District string `gorm:"size:50" json:"district"`
	Acreage  string `gorm:"size:10" json:"acreage"` // "<1" | ">1"
	SoilType string `gorm:"size:50" json:"soil_type"`
	Pincode  string `gorm:"size:6" json:"pincode"`
	Email    string `json:"email"` // optional, for urgent advisory mails

	Crops []Crop `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"crops,omitempty"`
}
