package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLiveClass(t *testing.T, token string, courseID uint, maxParticipants int) uint {
	t.Helper()

	status, result := doRequest(t, http.MethodPost, "/api/live-classes", map[string]interface{}{
		"courseId":        courseID,
		"title":           "Doubt Clearing Session",
		"description":     "Weekly mechanics problem solving",
		"scheduledTime":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"duration":        90,
		"meetingUrl":      "https://meet.example.com/mechanics",
		"maxParticipants": maxParticipants,
	}, token)
	require.Equal(t, fiber.StatusCreated, status)

	id, ok := dataField(result)["classId"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestCreateLiveClassValidation(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	courseID := createTestCourse(t, token, educatorID)

	status, result := doRequest(t, http.MethodPost, "/api/live-classes", map[string]interface{}{
		"courseId": courseID,
		"title":    "Incomplete",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", result["error"])

	// Past time is rejected
	status, result = doRequest(t, http.MethodPost, "/api/live-classes", map[string]interface{}{
		"courseId":      courseID,
		"title":         "Yesterday's Class",
		"description":   "Should not exist",
		"scheduledTime": time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
		"duration":      60,
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Scheduled time must be in the future", result["error"])

	status, _ = doRequest(t, http.MethodPost, "/api/live-classes", map[string]interface{}{
		"courseId":      uint(99999),
		"title":         "Orphan Class",
		"description":   "No such course",
		"scheduledTime": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"duration":      60,
	}, token)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRegisterForClassCapacity(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	courseID := createTestCourse(t, token, educatorID)
	classID := createTestLiveClass(t, token, courseID, 2)

	registerPath := fmt.Sprintf("/api/live-classes/%d/register", classID)

	_, tokenA := registerTestUser(t)
	_, tokenB := registerTestUser(t)
	_, tokenC := registerTestUser(t)

	status, _ := doRequest(t, http.MethodPost, registerPath, nil, tokenA)
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = doRequest(t, http.MethodPost, registerPath, nil, tokenB)
	assert.Equal(t, fiber.StatusCreated, status)

	// Third seat does not exist
	status, result := doRequest(t, http.MethodPost, registerPath, nil, tokenC)
	assert.Equal(t, fiber.StatusGone, status)
	assert.Equal(t, "Class is full", result["error"])
}

func TestRegisterForClassDuplicate(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	courseID := createTestCourse(t, token, educatorID)
	classID := createTestLiveClass(t, token, courseID, 10)

	registerPath := fmt.Sprintf("/api/live-classes/%d/register", classID)

	status, _ := doRequest(t, http.MethodPost, registerPath, nil, token)
	assert.Equal(t, fiber.StatusCreated, status)

	status, result := doRequest(t, http.MethodPost, registerPath, nil, token)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Already registered for this class", result["error"])
}

func TestLiveClassDetailAndUpdate(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	courseID := createTestCourse(t, token, educatorID)
	classID := createTestLiveClass(t, token, courseID, 5)

	classPath := fmt.Sprintf("/api/live-classes/%d", classID)

	status, result := doRequest(t, http.MethodGet, classPath, nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	data := dataField(result)
	assert.Equal(t, "JEE Physics Crash Course", data["courseTitle"])
	assert.Equal(t, float64(0), data["registrations"])

	status, _ = doRequest(t, http.MethodPut, classPath, map[string]interface{}{
		"status": "live",
	}, token)
	assert.Equal(t, fiber.StatusOK, status)

	status, result = doRequest(t, http.MethodGet, "/api/live-classes?status=live", nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	list, ok := result["data"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, list)

	// Empty update bodies are rejected
	status, result = doRequest(t, http.MethodPut, classPath, map[string]interface{}{
		"unknownField": "ignored",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "No valid fields to update", result["error"])
}
