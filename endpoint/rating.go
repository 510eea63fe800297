package endpoint

import (
	"fmt"

	"github.com/campuscare/health-api/model"
	"github.com/campuscare/health-api/util"
	"github.com/gin-gonic/gin"
)

type createRatingRequest struct {
	StudentID uint `json:"student_id" binding:"required"`
	DoctorID  uint `json:"doctor_id" binding:"required"`
	Rating    int  `json:"rating"`
}

// CreateRating godoc
// @Summary      Record a rating
// @Description  Store a student's rating of a doctor; repeated ratings add rows
// @Tags         Ratings
// @Accept       json
// @Produce      json
// @Param        request body createRatingRequest true "Rating"
// @Success      200 {object} util.APIResponse "Rating stored"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /ratings/ [post]
func CreateRating(c *gin.Context) {
	var req createRatingRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	rating := model.Rating{
		StudentID: req.StudentID,
		DoctorID:  req.DoctorID,
		Rating:    req.Rating,
	}
	if err := db.Create(&rating).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to store rating", Err: err})
		return
	}

	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventRatingCreated,
		AccountID: fmt.Sprintf("%d", req.StudentID),
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("student %d rated doctor %d", req.StudentID, req.DoctorID),
	})

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "success", Data: rating})
}
