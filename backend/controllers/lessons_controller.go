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

type LessonsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLessonsController(db *gorm.DB, cfg *config.Config) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg}
}

func (lc *LessonsController) GetAllLessons(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	var lessons []models.Lesson
	if err := lc.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, lessons, utils.ListMeta{
		Limit:  limit,
		Offset: offset,
		Count:  len(lessons),
	})
}

func (lc *LessonsController) GetLessonByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c)
	}

	var course models.Course
	lc.DB.First(&course, lesson.CourseID)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"lesson":      lesson,
		"courseTitle": course.Title,
	})
}

// GetLessonsByCourse returns a course's lessons in display sequence.
func (lc *LessonsController) GetLessonsByCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := lc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	var lessons []models.Lesson
	if err := lc.DB.Where("course_id = ?", courseID).Order("order_index ASC").Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, lessons)
}

func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	var input struct {
		CourseID    uint   `json:"courseId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		Duration    int    `json:"duration"`
		OrderIndex  int    `json:"orderIndex"`
		LessonType  string `json:"lessonType"`
		VideoURL    string `json:"videoUrl"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.CourseID == 0 || input.Title == "" || input.Description == "" || input.Duration == 0 || input.LessonType == "" {
		return utils.BadRequest(c, "Missing required fields")
	}

	var course models.Course
	if err := lc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	lesson := models.Lesson{
		CourseID:    input.CourseID,
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		Duration:    input.Duration,
		OrderIndex:  input.OrderIndex,
		LessonType:  input.LessonType,
		VideoURL:    input.VideoURL,
	}
	if err := lc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Lesson created successfully", fiber.Map{
		"lessonId": lesson.ID,
	})
}

func (lc *LessonsController) UpdateLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c)
	}

	var update models.LessonUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	changes := update.Changes()
	if len(changes) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	if err := lc.DB.Model(&lesson).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Lesson updated successfully", lesson)
}

func (lc *LessonsController) DeleteLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c)
	}

	if err := lc.DB.Delete(&lesson).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Lesson deleted successfully", nil)
}
