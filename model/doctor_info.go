package model

import "gorm.io/gorm"

// DoctorInfo is the extended 1:1 professional profile attached to a
// Doctor account.
type DoctorInfo struct {
	gorm.Model
	DoctorID          uint   `json:"doctor_id" gorm:"column:doctor_id;uniqueIndex"`
	UniName           string `json:"uni_name" gorm:"column:uni_name" example:"Princeton-Plainsboro"`
	Faculty           string `json:"faculty" gorm:"column:faculty;index" example:"Medicine"`
	Department        string `json:"department" gorm:"column:department" example:"Diagnostics"`
	StartTeachingYear int    `json:"start_teaching_year" gorm:"column:start_teaching_year" example:"2004"`
}
