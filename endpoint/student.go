package endpoint

import (
	"errors"
	"fmt"

	"github.com/campuscare/health-api/model"
	"github.com/campuscare/health-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errInvalidCredentials = errors.New("invalid username or password")

type registerStudentRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"pw123"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"pw123"`
}

// ensureStudentAvailable checks that neither the username nor the email is
// already registered. It writes the HTTP response on failure.
func ensureStudentAvailable(c *gin.Context, db *gorm.DB, username, email string) bool {
	var existing model.Student
	err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		if existing.Username == username {
			util.CallUserError(c, util.APIErrorParams{Msg: "Username already exists", Err: fmt.Errorf("username already exists")})
		} else {
			util.CallUserError(c, util.APIErrorParams{Msg: "Email already exists", Err: fmt.Errorf("email already exists")})
		}
		return false
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return false
	}
	return true
}

// RegisterStudent godoc
// @Summary      Register a student account
// @Description  Create a new student account with a unique username and email
// @Tags         Students
// @Accept       json
// @Produce      json
// @Param        request body registerStudentRequest true "Registration details"
// @Success      201 {object} util.APIResponse "Student created"
// @Failure      400 {object} util.APIResponse "Username or email already exists"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /students/register [post]
func RegisterStudent(c *gin.Context) {
	var req registerStudentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if !ensureStudentAvailable(c, db, req.Username, req.Email) {
		return
	}

	hashed, err := util.HashNewPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}

	student := model.Student{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := db.Create(&student).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create student", Err: err})
		return
	}

	ci := getClientInfo(c)
	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventRegisterSuccess,
		AccountID: fmt.Sprintf("%d", student.ID),
		Email:     student.Email,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "student account created",
	})

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  fmt.Sprintf("Student %s created", student.Username),
		Data: gin.H{"id": student.ID, "username": student.Username},
	})
}

// LoginStudent godoc
// @Summary      Student login
// @Description  Verify student credentials; no token or session is issued
// @Tags         Students
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse "Login successful"
// @Failure      401 {object} util.APIResponse "Invalid username or password"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /students/login [post]
func LoginStudent(c *gin.Context) {
	var req loginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ci := getClientInfo(c)

	var student model.Student
	err := db.Where("username = ?", req.Username).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Same response as a wrong password so usernames cannot be probed.
		util.LogLoginFailure(req.Username, ci.IP, ci.Agent, "student not found")
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid username or password", Err: errInvalidCredentials})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	if !util.VerifyPassword(student.Password, req.Password) {
		util.LogLoginFailure(req.Username, ci.IP, ci.Agent, "password mismatch")
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid username or password", Err: errInvalidCredentials})
		return
	}

	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventLoginSuccess,
		AccountID: fmt.Sprintf("%d", student.ID),
		Email:     student.Email,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "student login",
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Login successful",
		Data: gin.H{"id": student.ID, "username": student.Username},
	})
}
