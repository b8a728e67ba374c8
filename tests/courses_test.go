package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCourseAuthoringFlow walks the educator -> course -> lessons path and
// checks the lessons come back in index order.
func TestCourseAuthoringFlow(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	courseID := createTestCourse(t, token, educatorID)

	// Create out of order; retrieval sorts by order_index
	createTestLesson(t, token, courseID, 1)
	createTestLesson(t, token, courseID, 0)

	lessonsPath := fmt.Sprintf("/api/lessons/course/%d", courseID)
	status, result := doRequest(t, http.MethodGet, lessonsPath, nil, token)
	assert.Equal(t, fiber.StatusOK, status)

	lessons, ok := result["data"].([]interface{})
	require.True(t, ok)
	require.Equal(t, 2, len(lessons))

	first := lessons[0].(map[string]interface{})
	second := lessons[1].(map[string]interface{})
	assert.Equal(t, float64(0), first["order_index"])
	assert.Equal(t, float64(1), second["order_index"])

	// Course detail joins the educator
	coursePath := fmt.Sprintf("/api/courses/%d", courseID)
	status, result = doRequest(t, http.MethodGet, coursePath, nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Test Educator", dataField(result)["educatorName"])
}

func TestCreateCourseRequiresEducator(t *testing.T) {
	_, token := registerTestUser(t)

	status, result := doRequest(t, http.MethodPost, "/api/courses", map[string]interface{}{
		"title":          "Orphan Course",
		"description":    "No educator backs this course",
		"educatorId":     99999,
		"targetExam":     "JEE",
		"duration":       "3 months",
		"validityPeriod": 90,
		"price":          199.0,
		"courseType":     "Video",
	}, token)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Educator not found", result["error"])
}

func TestCourseFilters(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	createTestCourse(t, token, educatorID)

	status, result := doRequest(t, http.MethodGet, "/api/courses?targetExam=JEE&courseType=Video&minPrice=100&maxPrice=1000", nil, "")
	assert.Equal(t, fiber.StatusOK, status)

	courses, ok := result["data"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, courses)
	for _, raw := range courses {
		course := raw.(map[string]interface{})
		assert.Equal(t, "JEE", course["target_exam"])
		assert.Equal(t, "Video", course["course_type"])
		price := course["price"].(float64)
		assert.GreaterOrEqual(t, price, 100.0)
		assert.LessOrEqual(t, price, 1000.0)
	}

	meta, ok := result["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(len(courses)), meta["count"])

	// No matches is an empty list, not an error
	status, result = doRequest(t, http.MethodGet, "/api/courses?targetExam=TOEFL&minPrice=100000", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	courses, _ = result["data"].([]interface{})
	assert.Empty(t, courses)
}

func TestCoursesByExam(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	createTestCourse(t, token, educatorID)

	status, result := doRequest(t, http.MethodGet, "/api/courses/exam/JEE", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	courses, _ := result["data"].([]interface{})
	assert.NotEmpty(t, courses)

	status, result = doRequest(t, http.MethodGet, "/api/courses/exam/SAT", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid target exam", result["error"])
}

func TestSearchCourses(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	createTestCourse(t, token, educatorID)

	status, result := doRequest(t, http.MethodGet, "/api/courses/search/Physics", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	courses, _ := result["data"].([]interface{})
	assert.NotEmpty(t, courses)

	status, result = doRequest(t, http.MethodGet, "/api/courses/search/P", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Search query must be at least 2 characters", result["error"])
}

func TestUpdateCourseAllowList(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	courseID := createTestCourse(t, token, educatorID)

	coursePath := fmt.Sprintf("/api/courses/%d", courseID)

	// educator_id and target_exam are not updatable and get dropped
	status, result := doRequest(t, http.MethodPut, coursePath, map[string]interface{}{
		"title":       "JEE Physics Complete Course",
		"price":       599.0,
		"educator_id": 99999,
		"target_exam": "NEET",
	}, token)
	assert.Equal(t, fiber.StatusOK, status)

	status, result = doRequest(t, http.MethodGet, coursePath, nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	course, ok := dataField(result)["course"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "JEE Physics Complete Course", course["title"])
	assert.Equal(t, 599.0, course["price"])
	assert.Equal(t, "JEE", course["target_exam"])
	assert.Equal(t, float64(educatorID), course["educator_id"])

	// A body with only unknown fields is rejected
	status, result = doRequest(t, http.MethodPut, coursePath, map[string]interface{}{
		"educator_id": 1,
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "No valid fields to update", result["error"])
}

func TestDeleteCourseRequiresAuth(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	courseID := createTestCourse(t, token, educatorID)

	coursePath := fmt.Sprintf("/api/courses/%d", courseID)

	status, _ := doRequest(t, http.MethodDelete, coursePath, nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doRequest(t, http.MethodDelete, coursePath, nil, token)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doRequest(t, http.MethodGet, coursePath, nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestEducatorDuplicateEmail(t *testing.T) {
	_, token := registerTestUser(t)

	payload := map[string]interface{}{
		"name":          "Repeat Educator",
		"email":         "repeat.educator@example.com",
		"bio":           "Chemistry specialist",
		"expertise":     "Chemistry",
		"experience":    8,
		"qualification": "MSc",
	}
	status, _ := doRequest(t, http.MethodPost, "/api/educators", payload, token)
	assert.Equal(t, fiber.StatusCreated, status)

	status, result := doRequest(t, http.MethodPost, "/api/educators", payload, token)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Educator with this email already exists", result["error"])
}

func TestEducatorCourseCount(t *testing.T) {
	_, token := registerTestUser(t)
	educatorID := createTestEducator(t, token)
	createTestCourse(t, token, educatorID)
	createTestCourse(t, token, educatorID)

	educatorPath := fmt.Sprintf("/api/educators/%d", educatorID)
	status, result := doRequest(t, http.MethodGet, educatorPath, nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), dataField(result)["course_count"])
}
