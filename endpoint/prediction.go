package endpoint

import (
	"errors"
	"fmt"

	"github.com/campuscare/health-api/ml"
	"github.com/campuscare/health-api/model"
	"github.com/campuscare/health-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var predictionClient *ml.Client

// SetPredictionClient wires the prediction service client used by
// PredictGPA. Call during startup; tests point it at a fake server.
func SetPredictionClient(c *ml.Client) {
	predictionClient = c
}

// PredictGPA godoc
// @Summary      Predict and store a student's GPA
// @Description  Send the student's profile features to the prediction service and upsert the result
// @Tags         ML Predictions
// @Produce      json
// @Param        student_id path int true "Student account ID"
// @Success      200 {object} util.APIResponse "Prediction stored"
// @Failure      404 {object} util.APIResponse "Student profile not found"
// @Failure      503 {object} util.APIResponse "Prediction service unavailable"
// @Router       /ml/predict-gpa/{student_id} [post]
func PredictGPA(c *gin.Context) {
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
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Student not found", Err: fmt.Errorf("no profile for student %d", studentID)})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	if predictionClient == nil {
		util.CallServiceUnavailable(c, util.APIErrorParams{Msg: "ML service unavailable", Err: fmt.Errorf("prediction client not configured")})
		return
	}

	prediction, err := predictionClient.Predict(c.Request.Context(), ml.BuildFeatures(info))
	if err != nil {
		util.LogRequestEvent(util.RequestEvent{
			EventType: util.EventPredictionFailed,
			AccountID: fmt.Sprintf("%d", studentID),
			IP:        c.ClientIP(),
			Message:   err.Error(),
		})
		util.CallServiceUnavailable(c, util.APIErrorParams{Msg: "ML service unavailable", Err: err})
		return
	}

	predicted, ok := prediction["predicted_gpa"].(float64)
	if !ok {
		util.CallServiceUnavailable(c, util.APIErrorParams{Msg: "ML service unavailable", Err: fmt.Errorf("prediction response missing predicted_gpa")})
		return
	}

	if err := upsertPrediction(db, studentID, predicted); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to store prediction", Err: err})
		return
	}

	util.LogRequestEvent(util.RequestEvent{
		EventType: util.EventPredictionStored,
		AccountID: fmt.Sprintf("%d", studentID),
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("predicted GPA %.2f stored", predicted),
	})

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "GPA prediction stored", Data: prediction})
}

// upsertPrediction stores the latest prediction for a student, updating
// the existing row in place when one exists.
func upsertPrediction(db *gorm.DB, studentID uint, predicted float64) error {
	var existing model.GPAPrediction
	err := db.Where("student_id = ?", studentID).First(&existing).Error
	switch {
	case err == nil:
		existing.PredictedGPA = predicted
		return db.Save(&existing).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&model.GPAPrediction{StudentID: studentID, PredictedGPA: predicted}).Error
	default:
		return err
	}
}
