package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/campuscare/health-api/model"
	"github.com/stretchr/testify/assert"
)

func fullProfilePayload(studentID uint) map[string]interface{} {
	return map[string]interface{}{
		"student_id":    studentID,
		"first_name":    "John",
		"last_name":     "Doe",
		"uni_name":      "Global Tech Uni",
		"faculty":       "Engineering",
		"department":    "CS",
		"major":         "AI",
		"disability":    false,
		"gpa":           3.8,
		"dob":           "2002-05-15",
		"academic_year": 3,
	}
}

func TestCreateStudentInfo_Success(t *testing.T) {
	r, db := setupEndpointTest(t)
	student := createTestStudent(t, db, "student_flow", "flow@test.com", "password123")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/student-info/", requestPath: "/student-info/",
		handler: CreateStudentInfo, body: fullProfilePayload(student.ID),
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusCreated)
	assert.Equal(t, "John", responseData(t, response)["first_name"])
}

func TestCreateStudentInfo_AccountNotFound(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/student-info/", requestPath: "/student-info/",
		handler: CreateStudentInfo, body: fullProfilePayload(99999),
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "Student account not found", response["msg"])
}

func TestCreateStudentInfo_DuplicateProfile(t *testing.T) {
	r, db := setupEndpointTest(t)
	student := createTestStudent(t, db, "dupeprofile", "dupe@test.com", "pw")

	r.POST("/student-info/", CreateStudentInfo)

	w, _, err := performRequest(r, requestSpec{method: http.MethodPost, requestPath: "/student-info/", body: fullProfilePayload(student.ID)})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusCreated)

	w, response, err := performRequest(r, requestSpec{method: http.MethodPost, requestPath: "/student-info/", body: fullProfilePayload(student.ID)})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Profile already exists for this student", response["msg"])
}

func TestCreateStudentInfo_AcademicYearRange(t *testing.T) {
	r, db := setupEndpointTest(t)
	r.POST("/student-info/", CreateStudentInfo)

	for i, year := range []int{-1, 6} {
		student := createTestStudent(t, db, fmt.Sprintf("badyear%d", i), fmt.Sprintf("badyear%d@test.com", i), "pw")
		payload := fullProfilePayload(student.ID)
		payload["academic_year"] = year

		w, _, err := performRequest(r, requestSpec{method: http.MethodPost, requestPath: "/student-info/", body: payload})
		assert.NoError(t, err)
		assertStatus(t, w, http.StatusUnprocessableEntity)
	}

	for i, year := range []int{0, 5} {
		student := createTestStudent(t, db, fmt.Sprintf("goodyear%d", i), fmt.Sprintf("goodyear%d@test.com", i), "pw")
		payload := fullProfilePayload(student.ID)
		payload["academic_year"] = year

		w, _, err := performRequest(r, requestSpec{method: http.MethodPost, requestPath: "/student-info/", body: payload})
		assert.NoError(t, err)
		assertStatus(t, w, http.StatusCreated)
	}
}

func TestGetStudentInfo_Success(t *testing.T) {
	r, db := setupEndpointTest(t)
	student := createTestStudent(t, db, "getme", "getme@test.com", "pw")
	year := 2
	assert.NoError(t, db.Create(&model.StudentInfo{StudentID: student.ID, FirstName: "Original", AcademicYear: &year}).Error)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodGet, registerPath: "/student-info/:student_id",
		requestPath: fmt.Sprintf("/student-info/%d", student.ID), handler: GetStudentInfo,
	})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)
	assert.Equal(t, "Original", responseData(t, response)["first_name"])
}

func TestGetStudentInfo_NotFound(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, _, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodGet, registerPath: "/student-info/:student_id",
		requestPath: "/student-info/99999", handler: GetStudentInfo,
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusNotFound)
}

func TestUpdateStudentInfo_PartialPatch(t *testing.T) {
	r, db := setupEndpointTest(t)
	student := createTestStudent(t, db, "patchme", "patchme@test.com", "pw")
	year := 1
	gpa := 3.0
	assert.NoError(t, db.Create(&model.StudentInfo{
		StudentID: student.ID, FirstName: "Original", LastName: "Name",
		UniName: "Test Uni", Faculty: "Science", AcademicYear: &year, GPA: &gpa,
	}).Error)

	r.PUT("/student-info/:student_id", UpdateStudentInfo)

	w, response, err := performRequest(r, requestSpec{
		method: http.MethodPut, requestPath: fmt.Sprintf("/student-info/%d", student.ID),
		body: map[string]interface{}{"gpa": 3.9, "academic_year": 2},
	})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data := responseData(t, response)
	assert.Equal(t, 3.9, data["gpa"])
	assert.Equal(t, float64(2), data["academic_year"])
	// Untouched fields keep their prior values.
	assert.Equal(t, "Original", data["first_name"])
	assert.Equal(t, "Test Uni", data["uni_name"])

	// Applying the same patch again leaves the state unchanged.
	w, response, err = performRequest(r, requestSpec{
		method: http.MethodPut, requestPath: fmt.Sprintf("/student-info/%d", student.ID),
		body: map[string]interface{}{"gpa": 3.9, "academic_year": 2},
	})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)
	assert.Equal(t, 3.9, responseData(t, response)["gpa"])
}

func TestUpdateStudentInfo_ZeroValueIsApplied(t *testing.T) {
	r, db := setupEndpointTest(t)
	student := createTestStudent(t, db, "zeroyear", "zeroyear@test.com", "pw")
	year := 4
	assert.NoError(t, db.Create(&model.StudentInfo{StudentID: student.ID, AcademicYear: &year}).Error)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPut, registerPath: "/student-info/:student_id",
		requestPath: fmt.Sprintf("/student-info/%d", student.ID), handler: UpdateStudentInfo,
		body: map[string]interface{}{"academic_year": 0},
	})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)
	assert.Equal(t, float64(0), responseData(t, response)["academic_year"])
}

func TestUpdateStudentInfo_NotFound(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, _, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPut, registerPath: "/student-info/:student_id",
		requestPath: "/student-info/99999", handler: UpdateStudentInfo,
		body: map[string]interface{}{"gpa": 3.5},
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusNotFound)
}

func TestUpdateStudentInfo_AcademicYearRange(t *testing.T) {
	r, db := setupEndpointTest(t)
	student := createTestStudent(t, db, "rangecheck", "rangecheck@test.com", "pw")
	assert.NoError(t, db.Create(&model.StudentInfo{StudentID: student.ID}).Error)

	w, _, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPut, registerPath: "/student-info/:student_id",
		requestPath: fmt.Sprintf("/student-info/%d", student.ID), handler: UpdateStudentInfo,
		body: map[string]interface{}{"academic_year": 7},
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusUnprocessableEntity)
}

func TestCheckStudentInfo(t *testing.T) {
	r, db := setupEndpointTest(t)
	student := createTestStudent(t, db, "checker", "checker@test.com", "pw")
	info := model.StudentInfo{StudentID: student.ID}
	assert.NoError(t, db.Create(&info).Error)

	r.GET("/student-info/check/:student_id", CheckStudentInfo)

	w, response, err := performRequest(r, requestSpec{
		method: http.MethodGet, requestPath: fmt.Sprintf("/student-info/check/%d", student.ID),
	})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)
	data := responseData(t, response)
	assert.Equal(t, true, data["exists"])
	assert.Equal(t, float64(info.ID), data["profile_id"])

	// The probe never fails, even for an unknown account.
	w, response, err = performRequest(r, requestSpec{
		method: http.MethodGet, requestPath: "/student-info/check/99999",
	})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)
	data = responseData(t, response)
	assert.Equal(t, false, data["exists"])
	assert.Nil(t, data["profile_id"])
}
