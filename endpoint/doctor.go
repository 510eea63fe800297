package endpoint

import (
	"errors"
	"fmt"

	"github.com/campuscare/health-api/model"
	"github.com/campuscare/health-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type registerDoctorRequest struct {
	Username string   `json:"username" binding:"required" example:"dr_house"`
	Password string   `json:"password" binding:"required" example:"pw456"`
	Contact  string   `json:"contact" example:"555-0199"`
	Price    *float64 `json:"price" binding:"required" example:"150"`
}

// RegisterDoctor godoc
// @Summary      Register a doctor account
// @Description  Create a new doctor account with a unique username
// @Tags         Doctors
// @Accept       json
// @Produce      json
// @Param        request body registerDoctorRequest true "Registration details"
// @Success      201 {object} util.APIResponse "Doctor created"
// @Failure      400 {object} util.APIResponse "Username already exists or invalid price"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors/register [post]
func RegisterDoctor(c *gin.Context) {
	var req registerDoctorRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if *req.Price < 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: "Price must not be negative", Err: fmt.Errorf("negative price")})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var existing model.Doctor
	err := db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Username already exists", Err: fmt.Errorf("username already exists")})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	hashed, err := util.HashNewPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}

	doctor := model.Doctor{
		Username:     req.Username,
		Password:     hashed,
		Contact:      req.Contact,
		PricePerHour: *req.Price,
	}
	if err := db.Create(&doctor).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create doctor", Err: err})
		return
	}

	ci := getClientInfo(c)
	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventRegisterSuccess,
		AccountID: fmt.Sprintf("%d", doctor.ID),
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "doctor account created",
	})

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  fmt.Sprintf("Doctor %s created", doctor.Username),
		Data: gin.H{"id": doctor.ID, "username": doctor.Username},
	})
}

// LoginDoctor godoc
// @Summary      Doctor login
// @Description  Verify doctor credentials; no token or session is issued
// @Tags         Doctors
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse "Login successful"
// @Failure      401 {object} util.APIResponse "Invalid username or password"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors/login [post]
func LoginDoctor(c *gin.Context) {
	var req loginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ci := getClientInfo(c)

	var doctor model.Doctor
	err := db.Where("username = ?", req.Username).First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.LogLoginFailure(req.Username, ci.IP, ci.Agent, "doctor not found")
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid username or password", Err: errInvalidCredentials})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	if !util.VerifyPassword(doctor.Password, req.Password) {
		util.LogLoginFailure(req.Username, ci.IP, ci.Agent, "password mismatch")
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid username or password", Err: errInvalidCredentials})
		return
	}

	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventLoginSuccess,
		AccountID: fmt.Sprintf("%d", doctor.ID),
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "doctor login",
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Login successful",
		Data: gin.H{"doctor_id": doctor.ID, "username": doctor.Username},
	})
}
