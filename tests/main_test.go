package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"examprep-backend/backend/config"
	"examprep-backend/backend/models"
	"examprep-backend/backend/routes"
	"examprep-backend/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "5000",
		Env:        "development",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	if err := utils.MigrateDB(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)
}

func teardown() {
	db.Migrator().DropTable(
		&models.User{},
		&models.Educator{},
		&models.Course{},
		&models.Lesson{},
		&models.LiveClass{},
		&models.LiveClassRegistration{},
		&models.Test{},
		&models.TestQuestion{},
		&models.Progress{},
		&models.Subscription{},
	)
}

// doRequest performs a JSON request against the test app and decodes the
// envelope into a generic map.
func doRequest(t *testing.T, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
		t.Fatalf("decode response body: %v", err)
	}

	return resp.StatusCode, result
}

func dataField(result map[string]interface{}) map[string]interface{} {
	data, _ := result["data"].(map[string]interface{})
	return data
}

var userCounter int

// registerTestUser creates a user through the API and returns its id and token.
func registerTestUser(t *testing.T) (uint, string) {
	t.Helper()
	userCounter++

	status, result := doRequest(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":              "Test User",
		"email":             fmt.Sprintf("user%d-%d@example.com", userCounter, time.Now().UnixNano()),
		"password":          "Str0ngPass!word",
		"targetExam":        "JEE",
		"preferredLanguage": "English",
		"preparationLevel":  "Beginner",
	}, "")
	if status != fiber.StatusCreated {
		t.Fatalf("register test user: got status %d (%v)", status, result)
	}

	data := dataField(result)
	token, _ := data["token"].(string)
	userID, _ := data["userId"].(float64)
	return uint(userID), token
}

var educatorCounter int

// createTestEducator inserts an educator through the API.
func createTestEducator(t *testing.T, token string) uint {
	t.Helper()
	educatorCounter++

	status, result := doRequest(t, http.MethodPost, "/api/educators", map[string]interface{}{
		"name":          "Test Educator",
		"email":         fmt.Sprintf("educator%d-%d@example.com", educatorCounter, time.Now().UnixNano()),
		"bio":           "Teaches physics",
		"expertise":     "Physics",
		"experience":    10,
		"qualification": "PhD",
	}, token)
	if status != fiber.StatusCreated {
		t.Fatalf("create test educator: got status %d (%v)", status, result)
	}

	id, _ := dataField(result)["educatorId"].(float64)
	return uint(id)
}

// createTestCourse inserts a course owned by the given educator.
func createTestCourse(t *testing.T, token string, educatorID uint) uint {
	t.Helper()

	status, result := doRequest(t, http.MethodPost, "/api/courses", map[string]interface{}{
		"title":          "JEE Physics Crash Course",
		"description":    "Complete physics preparation for JEE Main and Advanced",
		"educatorId":     educatorID,
		"targetExam":     "JEE",
		"duration":       "6 months",
		"validityPeriod": 180,
		"price":          499.0,
		"courseType":     "Video",
	}, token)
	if status != fiber.StatusCreated {
		t.Fatalf("create test course: got status %d (%v)", status, result)
	}

	id, _ := dataField(result)["courseId"].(float64)
	return uint(id)
}
