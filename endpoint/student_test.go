package endpoint

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterStudent_Success(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/students/register", requestPath: "/students/register",
		handler: RegisterStudent,
		body:    map[string]interface{}{"username": "teststudent", "email": "student@example.com", "password": "securepassword123"},
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusCreated)
	assert.Equal(t, "Student teststudent created", response["msg"])

	data := responseData(t, response)
	assert.NotZero(t, data["id"])
	assert.Equal(t, "teststudent", data["username"])
}

func TestRegisterStudent_DuplicateUsername(t *testing.T) {
	r, db := setupEndpointTest(t)
	createTestStudent(t, db, "alice", "alice@example.com", "pw123")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/students/register", requestPath: "/students/register",
		handler: RegisterStudent,
		body:    map[string]interface{}{"username": "alice", "email": "different@example.com", "password": "otherpw"},
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Username already exists", response["msg"])
}

func TestRegisterStudent_DuplicateEmail(t *testing.T) {
	r, db := setupEndpointTest(t)
	createTestStudent(t, db, "alice", "alice@example.com", "pw123")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/students/register", requestPath: "/students/register",
		handler: RegisterStudent,
		body:    map[string]interface{}{"username": "bob", "email": "alice@example.com", "password": "otherpw"},
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Email already exists", response["msg"])
}

func TestRegisterStudent_MissingFields(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, _, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/students/register", requestPath: "/students/register",
		handler: RegisterStudent,
		body:    map[string]interface{}{"username": "nopassword"},
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestRegisterStudent_StoresHashedPassword(t *testing.T) {
	r, db := setupEndpointTest(t)

	_, _, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/students/register", requestPath: "/students/register",
		handler: RegisterStudent,
		body:    map[string]interface{}{"username": "hashcheck", "email": "hash@example.com", "password": "plaintext"},
	})
	assert.NoError(t, err)

	var stored struct{ Password string }
	assert.NoError(t, db.Table("students").Select("password").Where("username = ?", "hashcheck").Scan(&stored).Error)
	assert.NotEqual(t, "plaintext", stored.Password)
	assert.Contains(t, stored.Password, "argon2id$")
}

func TestLoginStudent_Success(t *testing.T) {
	r, db := setupEndpointTest(t)
	student := createTestStudent(t, db, "loginuser", "login@example.com", "mypassword")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/students/login", requestPath: "/students/login",
		handler: LoginStudent,
		body:    map[string]interface{}{"username": "loginuser", "password": "mypassword"},
	})
	assert.NoError(t, err)
	assertSuccessResponse(t, w, response)

	data := responseData(t, response)
	assert.Equal(t, float64(student.ID), data["id"])
	assert.Equal(t, "loginuser", data["username"])
}

func TestLoginStudent_WrongPassword(t *testing.T) {
	r, db := setupEndpointTest(t)
	createTestStudent(t, db, "loginuser", "login@example.com", "mypassword")

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/students/login", requestPath: "/students/login",
		handler: LoginStudent,
		body:    map[string]interface{}{"username": "loginuser", "password": "wrong"},
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusUnauthorized)
	assert.Equal(t, "Invalid username or password", response["msg"])
}

func TestLoginStudent_UnknownUsername(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w, response, err := doRequestWithHandler(r, requestSpec{
		method: http.MethodPost, registerPath: "/students/login", requestPath: "/students/login",
		handler: LoginStudent,
		body:    map[string]interface{}{"username": "ghost", "password": "whatever"},
	})
	assert.NoError(t, err)
	assertStatus(t, w, http.StatusUnauthorized)
	// Indistinguishable from a wrong password.
	assert.Equal(t, "Invalid username or password", response["msg"])
}
