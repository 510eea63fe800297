package endpoint

import (
	"errors"
	"fmt"

	"github.com/campuscare/health-api/model"
	"github.com/campuscare/health-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createStudentInfoRequest struct {
	StudentID          uint     `json:"student_id" binding:"required"`
	FirstName          string   `json:"first_name" example:"John"`
	LastName           string   `json:"last_name" example:"Doe"`
	UniName            string   `json:"uni_name" example:"Global Tech Uni"`
	Faculty            string   `json:"faculty" example:"Engineering"`
	Department         string   `json:"department" example:"CS"`
	Major              string   `json:"major" example:"AI"`
	DOB                string   `json:"dob" example:"2002-05-15"`
	Disability         *bool    `json:"disability"`
	GPA                *float64 `json:"gpa" example:"3.8"`
	AcademicYear       *int     `json:"academic_year" example:"3"`
	StudyHours         *float64 `json:"study_hours" example:"12.5"`
	AthleticStatus     string   `json:"athletic_status" example:"Active"`
	CountryOfOrigin    string   `json:"country_of_origin"`
	CountryOfResidence string   `json:"country_of_residence"`
	Gender             string   `json:"gender"`
	PrimaryLanguage    string   `json:"primary_language"`
}

// updateStudentInfoRequest applies PATCH semantics: every field is a
// pointer, so a key absent from the payload is left untouched while an
// explicit zero value is applied.
type updateStudentInfoRequest struct {
	FirstName          *string  `json:"first_name"`
	LastName           *string  `json:"last_name"`
	UniName            *string  `json:"uni_name"`
	Faculty            *string  `json:"faculty"`
	Department         *string  `json:"department"`
	Major              *string  `json:"major"`
	DOB                *string  `json:"dob"`
	Disability         *bool    `json:"disability"`
	GPA                *float64 `json:"gpa"`
	AcademicYear       *int     `json:"academic_year"`
	StudyHours         *float64 `json:"study_hours"`
	AthleticStatus     *string  `json:"athletic_status"`
	CountryOfOrigin    *string  `json:"country_of_origin"`
	CountryOfResidence *string  `json:"country_of_residence"`
	Gender             *string  `json:"gender"`
	PrimaryLanguage    *string  `json:"primary_language"`
}

func applyStudentInfoUpdates(info *model.StudentInfo, req *updateStudentInfoRequest) {
	if req.FirstName != nil {
		info.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		info.LastName = *req.LastName
	}
	if req.UniName != nil {
		info.UniName = *req.UniName
	}
	if req.Faculty != nil {
		info.Faculty = *req.Faculty
	}
	if req.Department != nil {
		info.Department = *req.Department
	}
	if req.Major != nil {
		info.Major = *req.Major
	}
	if req.DOB != nil {
		info.DOB = *req.DOB
	}
	if req.Disability != nil {
		info.Disability = req.Disability
	}
	if req.GPA != nil {
		info.GPA = req.GPA
	}
	if req.AcademicYear != nil {
		info.AcademicYear = req.AcademicYear
	}
	if req.StudyHours != nil {
		info.StudyHours = req.StudyHours
	}
	if req.AthleticStatus != nil {
		info.AthleticStatus = *req.AthleticStatus
	}
	if req.CountryOfOrigin != nil {
		info.CountryOfOrigin = *req.CountryOfOrigin
	}
	if req.CountryOfResidence != nil {
		info.CountryOfResidence = *req.CountryOfResidence
	}
	if req.Gender != nil {
		info.Gender = *req.Gender
	}
	if req.PrimaryLanguage != nil {
		info.PrimaryLanguage = *req.PrimaryLanguage
	}
}

// CreateStudentInfo godoc
// @Summary      Create a student profile
// @Description  Attach the extended 1:1 profile to an existing student account
// @Tags         Student Info
// @Accept       json
// @Produce      json
// @Param        request body createStudentInfoRequest true "Profile attributes"
// @Success      201 {object} util.APIResponse "Profile created"
// @Failure      400 {object} util.APIResponse "Profile already exists"
// @Failure      404 {object} util.APIResponse "Student account not found"
// @Failure      422 {object} util.APIResponse "Academic year out of range"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /student-info/ [post]
func CreateStudentInfo(c *gin.Context) {
	var req createStudentInfoRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	// Verify the owning account exists before touching the profile table.
	var student model.Student
	if err := db.First(&student, req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Student account not found", Err: fmt.Errorf("no student with id %d", req.StudentID)})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	var existing model.StudentInfo
	err := db.Where("student_id = ?", req.StudentID).First(&existing).Error
	if err == nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Profile already exists for this student", Err: fmt.Errorf("duplicate profile")})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	info := model.StudentInfo{
		StudentID:          req.StudentID,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		UniName:            req.UniName,
		Faculty:            req.Faculty,
		Department:         req.Department,
		Major:              req.Major,
		DOB:                req.DOB,
		Disability:         req.Disability,
		GPA:                req.GPA,
		AcademicYear:       req.AcademicYear,
		StudyHours:         req.StudyHours,
		AthleticStatus:     req.AthleticStatus,
		CountryOfOrigin:    req.CountryOfOrigin,
		CountryOfResidence: req.CountryOfResidence,
		Gender:             req.Gender,
		PrimaryLanguage:    req.PrimaryLanguage,
	}

	if err := info.Validate(); err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: "Invalid profile attributes", Err: err})
		return
	}

	if err := db.Create(&info).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create profile", Err: err})
		return
	}

	ci := getClientInfo(c)
	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventProfileCreated,
		AccountID: fmt.Sprintf("%d", req.StudentID),
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "student profile created",
	})

	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Profile created successfully", Data: info})
}

// GetStudentInfo godoc
// @Summary      Get a student profile
// @Tags         Student Info
// @Produce      json
// @Param        student_id path int true "Student account ID"
// @Success      200 {object} util.APIResponse "Profile retrieved"
// @Failure      404 {object} util.APIResponse "Profile not found"
// @Router       /student-info/{student_id} [get]
func GetStudentInfo(c *gin.Context) {
	studentID, ok := parseIDParam(c, "student_id")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var info model.StudentInfo
	if err := db.Where("student_id = ?", studentID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Profile not found", Err: fmt.Errorf("no profile for student %d", studentID)})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile retrieved", Data: info})
}

// UpdateStudentInfo godoc
// @Summary      Update a student profile
// @Description  Apply only the supplied fields; absent keys are left untouched
// @Tags         Student Info
// @Accept       json
// @Produce      json
// @Param        student_id path int true "Student account ID"
// @Param        request body updateStudentInfoRequest true "Fields to update"
// @Success      200 {object} util.APIResponse "Profile updated"
// @Failure      404 {object} util.APIResponse "Profile not found"
// @Failure      422 {object} util.APIResponse "Academic year out of range"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /student-info/{student_id} [put]
func UpdateStudentInfo(c *gin.Context) {
	studentID, ok := parseIDParam(c, "student_id")
	if !ok {
		return
	}

	var req updateStudentInfoRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var info model.StudentInfo
	if err := db.Where("student_id = ?", studentID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Profile not found", Err: fmt.Errorf("no profile for student %d", studentID)})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	applyStudentInfoUpdates(&info, &req)

	if err := info.Validate(); err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: "Invalid profile attributes", Err: err})
		return
	}

	if err := db.Save(&info).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update profile", Err: err})
		return
	}

	ci := getClientInfo(c)
	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventProfileUpdated,
		AccountID: fmt.Sprintf("%d", studentID),
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "student profile updated",
	})

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile updated successfully", Data: info})
}

// CheckStudentInfo godoc
// @Summary      Check whether a student profile exists
// @Description  Existence probe; succeeds even for unknown student IDs
// @Tags         Student Info
// @Produce      json
// @Param        student_id path int true "Student account ID"
// @Success      200 {object} util.APIResponse "Existence result"
// @Router       /student-info/check/{student_id} [get]
func CheckStudentInfo(c *gin.Context) {
	studentID, ok := parseIDParam(c, "student_id")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var info model.StudentInfo
	err := db.Select("id").Where("student_id = ?", studentID).First(&info).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	data := gin.H{"exists": false, "student_id": studentID, "profile_id": nil}
	if err == nil {
		data["exists"] = true
		data["profile_id"] = info.ID
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile existence checked", Data: data})
}
