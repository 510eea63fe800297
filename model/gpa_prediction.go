package model

import "gorm.io/gorm"

// GPAPrediction holds the latest predicted GPA per student. The unique
// index on student_id backs the upsert semantics: a new prediction
// overwrites the existing row instead of adding one.
type GPAPrediction struct {
	gorm.Model
	StudentID    uint    `json:"student_id" gorm:"column:student_id;uniqueIndex"`
	PredictedGPA float64 `json:"predicted_gpa" gorm:"column:predicted_gpa" example:"3.4"`
}
