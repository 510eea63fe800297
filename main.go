// main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/campuscare/health-api/config"
	"github.com/campuscare/health-api/endpoint"
	"github.com/campuscare/health-api/middleware"
	"github.com/campuscare/health-api/ml"
	"github.com/campuscare/health-api/model"
	"github.com/campuscare/health-api/util"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("Error connecting to MySQL: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Student{},
		&model.Doctor{},
		&model.StudentInfo{},
		&model.DoctorInfo{},
		&model.Rating{},
		&model.GPAPrediction{},
		&model.RequestLog{},
	); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}

	// Audit logging: persist request events, enrich with GeoIP when a
	// local database is configured.
	if err := util.InitGeoIP(""); err != nil {
		log.Printf("GeoIP disabled: %v", err)
	}
	defer util.CloseGeoIP()
	util.SetRequestLoggerDB(db)

	// Redis backs the rate limiter; without it the limiter falls back to
	// an in-process window.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis disabled: %v", err)
	}

	endpoint.SetPredictionClient(ml.NewClient(cfg.MLBaseURL))

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
			"status":  "System Online",
		})
	})

	// Credential endpoints share a tighter rate limit.
	limited := router.Group("/", middleware.RateLimiter(middleware.RateLimitConfig{}))
	limited.POST("/students/register", endpoint.RegisterStudent)
	limited.POST("/students/login", endpoint.LoginStudent)
	limited.POST("/doctors/register", endpoint.RegisterDoctor)
	limited.POST("/doctors/login", endpoint.LoginDoctor)

	router.POST("/student-info/", endpoint.CreateStudentInfo)
	router.GET("/student-info/check/:student_id", endpoint.CheckStudentInfo)
	router.GET("/student-info/:student_id", endpoint.GetStudentInfo)
	router.PUT("/student-info/:student_id", endpoint.UpdateStudentInfo)

	router.POST("/doctor-info/", endpoint.CreateDoctorInfo)
	router.GET("/doctor-info/check/:doctor_id", endpoint.CheckDoctorInfo)
	router.GET("/doctor-info/filter/", endpoint.FilterDoctorInfo)
	router.GET("/doctor-info/:doctor_id", endpoint.GetDoctorInfo)
	router.PUT("/doctor-info/:doctor_id", endpoint.UpdateDoctorInfo)

	router.POST("/ratings/", endpoint.CreateRating)

	router.POST("/ml/predict-gpa/:student_id", endpoint.PredictGPA)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
