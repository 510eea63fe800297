package model

import "gorm.io/gorm"

// Student is a registrable student account. Extended attributes live in
// StudentInfo, created after registration.
type Student struct {
	gorm.Model
	Username string `json:"username" gorm:"column:username;type:varchar(191);uniqueIndex" example:"alice"`
	Email    string `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex" example:"alice@example.com"`
	Password string `json:"-" gorm:"column:password" example:"hashed_password"`
}
