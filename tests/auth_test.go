package tests

import (
	"net/http"
	"testing"

	"examprep-backend/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	payload := map[string]interface{}{
		"name":              "Asha Verma",
		"email":             "asha.verma@example.com",
		"password":          "Sup3rSecret!pw",
		"targetExam":        "NEET",
		"preferredLanguage": "Hindi",
		"preparationLevel":  "Intermediate",
	}

	status, result := doRequest(t, http.MethodPost, "/api/auth/register", payload, "")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, result["success"])

	data := dataField(result)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "Asha Verma", data["name"])

	// Stored password must be a hash, never the plaintext
	var user models.User
	assert.NoError(t, db.Where("email = ?", "asha.verma@example.com").First(&user).Error)
	assert.NotEqual(t, "Sup3rSecret!pw", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	payload := map[string]interface{}{
		"name":              "First User",
		"email":             "duplicate@example.com",
		"password":          "Sup3rSecret!pw",
		"targetExam":        "GATE",
		"preferredLanguage": "English",
		"preparationLevel":  "Advanced",
	}

	status, _ := doRequest(t, http.MethodPost, "/api/auth/register", payload, "")
	assert.Equal(t, fiber.StatusCreated, status)

	payload["name"] = "Second User"
	status, result := doRequest(t, http.MethodPost, "/api/auth/register", payload, "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Email already registered", result["error"])
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(map[string]interface{})
	}{
		{"weak password", func(p map[string]interface{}) { p["password"] = "alllowercase" }},
		{"short name", func(p map[string]interface{}) { p["name"] = "A" }},
		{"bad email", func(p map[string]interface{}) { p["email"] = "not-an-email" }},
		{"unknown exam", func(p map[string]interface{}) { p["targetExam"] = "SAT" }},
		{"unknown language", func(p map[string]interface{}) { p["preferredLanguage"] = "French" }},
		{"unknown level", func(p map[string]interface{}) { p["preparationLevel"] = "Expert" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := map[string]interface{}{
				"name":              "Valid Name",
				"email":             "valid@example.com",
				"password":          "Sup3rSecret!pw",
				"targetExam":        "JEE",
				"preferredLanguage": "English",
				"preparationLevel":  "Beginner",
			}
			tc.mutate(payload)

			status, result := doRequest(t, http.MethodPost, "/api/auth/register", payload, "")
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "Validation failed", result["error"])
			assert.NotEmpty(t, result["details"])
		})
	}
}

func TestLogin(t *testing.T) {
	payload := map[string]interface{}{
		"name":              "Login User",
		"email":             "login.user@example.com",
		"password":          "L0ginSecret!pw",
		"targetExam":        "CAT",
		"preferredLanguage": "English",
		"preparationLevel":  "Beginner",
	}
	status, _ := doRequest(t, http.MethodPost, "/api/auth/register", payload, "")
	assert.Equal(t, fiber.StatusCreated, status)

	status, result := doRequest(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "login.user@example.com",
		"password": "L0ginSecret!pw",
	}, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, dataField(result)["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	payload := map[string]interface{}{
		"name":              "Wrong Pass",
		"email":             "wrong.pass@example.com",
		"password":          "C0rrectPass!pw",
		"targetExam":        "GRE",
		"preferredLanguage": "English",
		"preparationLevel":  "Advanced",
	}
	status, _ := doRequest(t, http.MethodPost, "/api/auth/register", payload, "")
	assert.Equal(t, fiber.StatusCreated, status)

	// One character altered
	status, result := doRequest(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "wrong.pass@example.com",
		"password": "C0rrectPass!pX",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", result["error"])
}

func TestProfile(t *testing.T) {
	_, token := registerTestUser(t)

	status, result := doRequest(t, http.MethodGet, "/api/auth/profile", nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Test User", dataField(result)["name"])

	// Allow-listed update; email changes are dropped silently
	status, result = doRequest(t, http.MethodPut, "/api/auth/profile", map[string]interface{}{
		"name":        "Renamed User",
		"target_exam": "UPSC",
		"email":       "hijack@example.com",
	}, token)
	assert.Equal(t, fiber.StatusOK, status)

	status, result = doRequest(t, http.MethodGet, "/api/auth/profile", nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	data := dataField(result)
	assert.Equal(t, "Renamed User", data["name"])
	assert.Equal(t, "UPSC", data["targetExam"])
	assert.NotEqual(t, "hijack@example.com", data["email"])
}

func TestAuthTokenErrors(t *testing.T) {
	status, result := doRequest(t, http.MethodGet, "/api/auth/profile", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Access denied. No valid token provided.", result["error"])

	status, result = doRequest(t, http.MethodGet, "/api/auth/profile", nil, "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", result["error"])
}

func TestVerifyAndRefresh(t *testing.T) {
	_, token := registerTestUser(t)

	status, result := doRequest(t, http.MethodGet, "/api/auth/verify", nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Token is valid", result["message"])

	status, result = doRequest(t, http.MethodPost, "/api/auth/refresh", nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, dataField(result)["token"])

	status, _ = doRequest(t, http.MethodPost, "/api/auth/logout", nil, token)
	assert.Equal(t, fiber.StatusOK, status)
}
