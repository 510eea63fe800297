package model

import "gorm.io/gorm"

// Rating records a student's rating of a doctor. A student may rate the
// same doctor more than once; each call stores a new row.
type Rating struct {
	gorm.Model
	StudentID uint `json:"student_id" gorm:"column:student_id;index"`
	DoctorID  uint `json:"doctor_id" gorm:"column:doctor_id;index"`
	Rating    int  `json:"rating" gorm:"column:rating" example:"5"`
}
