package endpoint

import (
	"errors"
	"fmt"

	"github.com/campuscare/health-api/model"
	"github.com/campuscare/health-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createDoctorInfoRequest struct {
	DoctorID          uint   `json:"doctor_id" binding:"required"`
	UniName           string `json:"uni_name" example:"Princeton-Plainsboro"`
	Faculty           string `json:"faculty" example:"Medicine"`
	Department        string `json:"department" example:"Diagnostics"`
	StartTeachingYear int    `json:"start_teaching_year" example:"2004"`
}

type updateDoctorInfoRequest struct {
	UniName           *string `json:"uni_name"`
	Faculty           *string `json:"faculty"`
	Department        *string `json:"department"`
	StartTeachingYear *int    `json:"start_teaching_year"`
}

// doctorFacultyRow is a doctor profile joined with its owning account's
// public fields for the faculty filter listing.
type doctorFacultyRow struct {
	model.DoctorInfo
	Username     string  `json:"username"`
	Contact      string  `json:"contact"`
	PricePerHour float64 `json:"price_per_hour"`
}

// CreateDoctorInfo godoc
// @Summary      Create a doctor profile
// @Description  Attach the extended 1:1 profile to an existing doctor account
// @Tags         Doctor Info
// @Accept       json
// @Produce      json
// @Param        request body createDoctorInfoRequest true "Profile attributes"
// @Success      201 {object} util.APIResponse "Profile created"
// @Failure      400 {object} util.APIResponse "Profile already exists"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor-info/ [post]
func CreateDoctorInfo(c *gin.Context) {
	var req createDoctorInfoRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var doctor model.Doctor
	if err := db.First(&doctor, req.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Doctor not found", Err: fmt.Errorf("no doctor with id %d", req.DoctorID)})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	var existing model.DoctorInfo
	err := db.Where("doctor_id = ?", req.DoctorID).First(&existing).Error
	if err == nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Profile already exists", Err: fmt.Errorf("duplicate profile")})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	info := model.DoctorInfo{
		DoctorID:          req.DoctorID,
		UniName:           req.UniName,
		Faculty:           req.Faculty,
		Department:        req.Department,
		StartTeachingYear: req.StartTeachingYear,
	}
	if err := db.Create(&info).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create profile", Err: err})
		return
	}

	ci := getClientInfo(c)
	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventProfileCreated,
		AccountID: fmt.Sprintf("%d", req.DoctorID),
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "doctor profile created",
	})

	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Doctor profile created", Data: info})
}

// GetDoctorInfo godoc
// @Summary      Get a doctor profile
// @Tags         Doctor Info
// @Produce      json
// @Param        doctor_id path int true "Doctor account ID"
// @Success      200 {object} util.APIResponse "Profile retrieved"
// @Failure      404 {object} util.APIResponse "Profile not found"
// @Router       /doctor-info/{doctor_id} [get]
func GetDoctorInfo(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var info model.DoctorInfo
	if err := db.Where("doctor_id = ?", doctorID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Profile not found", Err: fmt.Errorf("no profile for doctor %d", doctorID)})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile retrieved", Data: info})
}

// UpdateDoctorInfo godoc
// @Summary      Update a doctor profile
// @Description  Apply only the supplied fields; absent keys are left untouched
// @Tags         Doctor Info
// @Accept       json
// @Produce      json
// @Param        doctor_id path int true "Doctor account ID"
// @Param        request body updateDoctorInfoRequest true "Fields to update"
// @Success      200 {object} util.APIResponse "Profile updated"
// @Failure      404 {object} util.APIResponse "Profile not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor-info/{doctor_id} [put]
func UpdateDoctorInfo(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	var req updateDoctorInfoRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var info model.DoctorInfo
	if err := db.Where("doctor_id = ?", doctorID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Profile not found", Err: fmt.Errorf("no profile for doctor %d", doctorID)})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
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
	if req.StartTeachingYear != nil {
		info.StartTeachingYear = *req.StartTeachingYear
	}

	if err := db.Save(&info).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update profile", Err: err})
		return
	}

	ci := getClientInfo(c)
	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventProfileUpdated,
		AccountID: fmt.Sprintf("%d", doctorID),
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "doctor profile updated",
	})

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctor profile updated", Data: info})
}

// CheckDoctorInfo godoc
// @Summary      Check whether a doctor profile exists
// @Description  Existence probe; succeeds even for unknown doctor IDs
// @Tags         Doctor Info
// @Produce      json
// @Param        doctor_id path int true "Doctor account ID"
// @Success      200 {object} util.APIResponse "Existence result"
// @Router       /doctor-info/check/{doctor_id} [get]
func CheckDoctorInfo(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var info model.DoctorInfo
	err := db.Select("id").Where("doctor_id = ?", doctorID).First(&info).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	data := gin.H{"exists": false, "doctor_id": doctorID, "profile_id": nil}
	if err == nil {
		data["exists"] = true
		data["profile_id"] = info.ID
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Profile existence checked", Data: data})
}

// FilterDoctorInfo godoc
// @Summary      List doctor profiles by faculty
// @Description  Join doctor profiles with their owning accounts' contact and price
// @Tags         Doctor Info
// @Produce      json
// @Param        faculty query string true "Faculty name"
// @Success      200 {object} util.APIResponse "Doctors retrieved"
// @Failure      404 {object} util.APIResponse "No doctors in faculty"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor-info/filter/ [get]
func FilterDoctorInfo(c *gin.Context) {
	faculty := c.Query("faculty")
	if faculty == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Missing faculty query parameter", Err: fmt.Errorf("faculty is required")})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var rows []doctorFacultyRow
	err := db.Table("doctor_infos").
		Select("doctor_infos.*, doctors.username, doctors.contact, doctors.price_per_hour").
		Joins("JOIN doctors ON doctors.id = doctor_infos.doctor_id").
		Where("doctor_infos.faculty = ?", faculty).
		Where("doctor_infos.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve doctors", Err: err})
		return
	}

	if len(rows) == 0 {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "No doctors found for this faculty", Err: fmt.Errorf("no doctor profiles in faculty %q", faculty)})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctors retrieved",
		Data: gin.H{"total": len(rows), "doctors": rows},
	})
}
