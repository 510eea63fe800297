package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Academic year bounds accepted for a student profile.
const (
	MinAcademicYear = 0
	MaxAcademicYear = 5
)

// StudentInfo is the extended 1:1 profile attached to a Student account.
// Optional attributes use pointer fields so an unset value is stored as
// NULL rather than a zero value.
type StudentInfo struct {
	gorm.Model
	StudentID          uint     `json:"student_id" gorm:"column:student_id;uniqueIndex"`
	FirstName          string   `json:"first_name" gorm:"column:first_name" example:"John"`
	LastName           string   `json:"last_name" gorm:"column:last_name" example:"Doe"`
	UniName            string   `json:"uni_name" gorm:"column:uni_name" example:"Global Tech Uni"`
	Faculty            string   `json:"faculty" gorm:"column:faculty" example:"Engineering"`
	Department         string   `json:"department" gorm:"column:department" example:"CS"`
	Major              string   `json:"major" gorm:"column:major" example:"AI"`
	DOB                string   `json:"dob" gorm:"column:dob" example:"2002-05-15"`
	Disability         *bool    `json:"disability" gorm:"column:disability"`
	GPA                *float64 `json:"gpa" gorm:"column:gpa" example:"3.8"`
	AcademicYear       *int     `json:"academic_year" gorm:"column:academic_year" example:"3"`
	StudyHours         *float64 `json:"study_hours" gorm:"column:study_hours" example:"12.5"`
	AthleticStatus     string   `json:"athletic_status" gorm:"column:athletic_status" example:"Active"`
	CountryOfOrigin    string   `json:"country_of_origin" gorm:"column:country_of_origin" example:"Jordan"`
	CountryOfResidence string   `json:"country_of_residence" gorm:"column:country_of_residence" example:"Germany"`
	Gender             string   `json:"gender" gorm:"column:gender" example:"Female"`
	PrimaryLanguage    string   `json:"primary_language" gorm:"column:primary_language" example:"Arabic"`
}

// Validate checks the storage-layer constraints of a student profile.
func (s *StudentInfo) Validate() error {
	if s.AcademicYear != nil && (*s.AcademicYear < MinAcademicYear || *s.AcademicYear > MaxAcademicYear) {
		return fmt.Errorf("academic_year must be between %d and %d", MinAcademicYear, MaxAcademicYear)
	}
	return nil
}

// BeforeSave enforces profile constraints on every create and update.
func (s *StudentInfo) BeforeSave(tx *gorm.DB) error {
	return s.Validate()
}
