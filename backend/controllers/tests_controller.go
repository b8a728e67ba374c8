package controllers

import (
	"errors"
	"strconv"

	"examprep-backend/backend/config"
	"examprep-backend/backend/models"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TestsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTestsController(db *gorm.DB, cfg *config.Config) *TestsController {
	return &TestsController{DB: db, Cfg: cfg}
}

// questionView is a question with its options decoded from storage.
type questionView struct {
	ID            uint     `json:"id"`
	TestID        uint     `json:"test_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Marks         int      `json:"marks"`
	Explanation   string   `json:"explanation"`
}

func newQuestionView(q models.TestQuestion) questionView {
	return questionView{
		ID:            q.ID,
		TestID:        q.TestID,
		Question:      q.Question,
		Options:       q.DecodedOptions(),
		CorrectAnswer: q.CorrectAnswer,
		Marks:         q.Marks,
		Explanation:   q.Explanation,
	}
}

func (tc *TestsController) GetAllTests(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	var tests []models.Test
	if err := tc.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tests).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, tests, utils.ListMeta{
		Limit:  limit,
		Offset: offset,
		Count:  len(tests),
	})
}

func (tc *TestsController) GetTestByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid test ID")
	}

	var test models.Test
	if err := tc.DB.First(&test, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c)
	}

	var questions []models.TestQuestion
	tc.DB.Where("test_id = ?", test.ID).Order("id ASC").Find(&questions)

	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, newQuestionView(q))
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"test":      test,
		"questions": views,
	})
}

func (tc *TestsController) GetTestsByCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := tc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	var tests []models.Test
	if err := tc.DB.Where("course_id = ?", courseID).Order("created_at DESC").Find(&tests).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, tests)
}

func (tc *TestsController) CreateTest(c *fiber.Ctx) error {
	var input struct {
		CourseID     uint   `json:"courseId"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		Duration     int    `json:"duration"`
		TotalMarks   int    `json:"totalMarks"`
		PassingMarks int    `json:"passingMarks"`
		TestType     string `json:"testType"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.CourseID == 0 || input.Title == "" || input.Description == "" ||
		input.Duration == 0 || input.TotalMarks == 0 || input.PassingMarks == 0 || input.TestType == "" {
		return utils.BadRequest(c, "Missing required fields")
	}

	var course models.Course
	if err := tc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	test := models.Test{
		CourseID:     input.CourseID,
		Title:        input.Title,
		Description:  input.Description,
		Duration:     input.Duration,
		TotalMarks:   input.TotalMarks,
		PassingMarks: input.PassingMarks,
		TestType:     input.TestType,
	}
	if err := tc.DB.Create(&test).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Test created successfully", fiber.Map{
		"testId": test.ID,
	})
}

func (tc *TestsController) AddTestQuestion(c *fiber.Ctx) error {
	testID, err := strconv.Atoi(c.Params("testId"))
	if err != nil || testID <= 0 {
		return utils.BadRequest(c, "Invalid test ID")
	}

	var input struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correctAnswer"`
		Marks         int      `json:"marks"`
		Explanation   string   `json:"explanation"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Question == "" || len(input.Options) == 0 || input.Marks == 0 {
		return utils.BadRequest(c, "Missing required fields")
	}

	var test models.Test
	if err := tc.DB.First(&test, testID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c)
	}

	question := models.TestQuestion{
		TestID:        test.ID,
		Question:      input.Question,
		CorrectAnswer: input.CorrectAnswer,
		Marks:         input.Marks,
		Explanation:   input.Explanation,
	}
	if err := question.SetOptions(input.Options); err != nil {
		return utils.BadRequest(c, "Invalid options")
	}
	if err := tc.DB.Create(&question).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Question added successfully", fiber.Map{
		"questionId": question.ID,
	})
}

func (tc *TestsController) UpdateTest(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid test ID")
	}

	var test models.Test
	if err := tc.DB.First(&test, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c)
	}

	var update models.TestUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	changes := update.Changes()
	if len(changes) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	if err := tc.DB.Model(&test).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Test updated successfully", test)
}

func (tc *TestsController) DeleteTest(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid test ID")
	}

	var test models.Test
	if err := tc.DB.First(&test, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.InternalServerError(c)
	}

	if err := tc.DB.Delete(&test).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Test deleted successfully", nil)
}
