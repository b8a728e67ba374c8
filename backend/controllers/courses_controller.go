package controllers

import (
	"errors"
	"strconv"

	"examprep-backend/backend/config"
	"examprep-backend/backend/middleware"
	"examprep-backend/backend/models"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// GetAllCourses lists courses with optional AND-combined filters.
func (cc *CoursesController) GetAllCourses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	query := cc.DB.Model(&models.Course{})

	if targetExam := c.Query("targetExam"); targetExam != "" {
		query = query.Where("target_exam = ?", targetExam)
	}
	if courseType := c.Query("courseType"); courseType != "" {
		query = query.Where("course_type = ?", courseType)
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		query = query.Where("price <= ?", maxPrice)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&courses).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, courses, utils.ListMeta{
		Limit:  limit,
		Offset: offset,
		Count:  len(courses),
	})
}

func (cc *CoursesController) GetCourseByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	var educator models.Educator
	cc.DB.First(&educator, course.EducatorID)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course":       course,
		"educatorName": educator.Name,
		"educatorBio":  educator.Bio,
	})
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input middleware.CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if errs := middleware.Validate(input); errs != nil {
		return utils.ValidationFailed(c, errs)
	}

	var educator models.Educator
	if err := cc.DB.First(&educator, input.EducatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Educator not found")
		}
		return utils.InternalServerError(c)
	}

	course := models.Course{
		Title:          input.Title,
		Description:    input.Description,
		EducatorID:     uint(input.EducatorID),
		TargetExam:     input.TargetExam,
		Duration:       input.Duration,
		ValidityPeriod: input.ValidityPeriod,
		Price:          input.Price,
		Discount:       input.Discount,
		CourseType:     input.CourseType,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Course created successfully", fiber.Map{
		"courseId": course.ID,
	})
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	var update models.CourseUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	changes := update.Changes()
	if len(changes) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	if err := cc.DB.Model(&course).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Course updated successfully", course)
}

// DeleteCourse removes the row only; lessons, tests and live classes under it
// are left in place.
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	if err := cc.DB.Delete(&course).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Course deleted successfully", nil)
}

func (cc *CoursesController) GetCoursesByEducator(c *fiber.Ctx) error {
	educatorID, err := strconv.Atoi(c.Params("educatorId"))
	if err != nil || educatorID <= 0 {
		return utils.BadRequest(c, "Invalid educator ID")
	}

	var courses []models.Course
	if err := cc.DB.Where("educator_id = ?", educatorID).Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CoursesController) GetCoursesByExam(c *fiber.Ctx) error {
	targetExam := c.Params("targetExam")
	if !middleware.ValidExam(targetExam) {
		return utils.BadRequest(c, "Invalid target exam")
	}

	var courses []models.Course
	if err := cc.DB.Where("target_exam = ?", targetExam).Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CoursesController) SearchCourses(c *fiber.Ctx) error {
	query := c.Params("query")
	if len(query) < 2 {
		return utils.BadRequest(c, "Search query must be at least 2 characters")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	pattern := "%" + query + "%"

	var courses []models.Course
	err := cc.DB.Where("title LIKE ? OR description LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error
	if err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, courses, utils.ListMeta{
		Limit:  limit,
		Offset: offset,
		Count:  len(courses),
	})
}
