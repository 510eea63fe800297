package endpoint

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuscare/health-api/middleware"
	"github.com/campuscare/health-api/model"
	"github.com/campuscare/health-api/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// endpointTestModels defines the standard set of models migrated for endpoint tests
var endpointTestModels = []interface{}{
	&model.Student{},
	&model.Doctor{},
	&model.StudentInfo{},
	&model.DoctorInfo{},
	&model.Rating{},
	&model.GPAPrediction{},
	&model.RequestLog{},
}

// setupEndpointTestDB initializes an in-memory test database with all
// standard models migrated. The database name is uniquified per test so
// parallel packages never share state.
func setupEndpointTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}

	if err := db.AutoMigrate(endpointTestModels...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	return db
}

// setupEndpointTest returns a Gin engine and database connection configured for endpoint tests.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := setupEndpointTestDB(t)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	return r, db
}

// createTestStudent stores a student account with a real argon2id hash so
// login flows can be exercised end to end.
func createTestStudent(t *testing.T, db *gorm.DB, username, email, password string) model.Student {
	t.Helper()

	hashed, err := util.HashNewPassword(password)
	assert.NoError(t, err)

	student := model.Student{Username: username, Email: email, Password: hashed}
	assert.NoError(t, db.Create(&student).Error)
	return student
}

func createTestDoctor(t *testing.T, db *gorm.DB, username, password, contact string, price float64) model.Doctor {
	t.Helper()

	hashed, err := util.HashNewPassword(password)
	assert.NoError(t, err)

	doctor := model.Doctor{Username: username, Password: hashed, Contact: contact, PricePerHour: price}
	assert.NoError(t, db.Create(&doctor).Error)
	return doctor
}

// assertStatus asserts that the response HTTP status code matches the expected value
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Code)
}

// assertSuccessResponse asserts that the response indicates success with HTTP 200
func assertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, response map[string]interface{}) {
	t.Helper()
	assert.Equal(t, http.StatusOK, w.Code)
	if response == nil {
		return
	}
	if success, ok := response["success"].(bool); ok {
		assert.True(t, success)
	}
}

// responseData extracts the envelope's data object.
func responseData(t *testing.T, response map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data is not an object: %v", response["data"])
	}
	return data
}
