package model

import "gorm.io/gorm"

// Doctor is a registrable doctor account.
// @Description Doctor account information
type Doctor struct {
	gorm.Model
	Username     string  `json:"username" gorm:"column:username;type:varchar(191);uniqueIndex" example:"dr_house"`
	Password     string  `json:"-" gorm:"column:password" example:"hashed_password"`
	Contact      string  `json:"contact" gorm:"column:contact" example:"555-0199"`
	PricePerHour float64 `json:"price_per_hour" gorm:"column:price_per_hour" example:"150"`
}
