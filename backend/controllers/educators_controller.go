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

type EducatorsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewEducatorsController(db *gorm.DB, cfg *config.Config) *EducatorsController {
	return &EducatorsController{DB: db, Cfg: cfg}
}

type educatorWithCount struct {
	models.Educator
	CourseCount int64 `json:"course_count"`
}

func (ec *EducatorsController) GetAllEducators(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	var educators []models.Educator
	if err := ec.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&educators).Error; err != nil {
		return utils.InternalServerError(c)
	}

	result := make([]educatorWithCount, 0, len(educators))
	for _, educator := range educators {
		var count int64
		ec.DB.Model(&models.Course{}).Where("educator_id = ?", educator.ID).Count(&count)
		result = append(result, educatorWithCount{Educator: educator, CourseCount: count})
	}

	return utils.Success(c, fiber.StatusOK, result, utils.ListMeta{
		Limit:  limit,
		Offset: offset,
		Count:  len(result),
	})
}

func (ec *EducatorsController) GetEducatorByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid educator ID")
	}

	var educator models.Educator
	if err := ec.DB.First(&educator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Educator not found")
		}
		return utils.InternalServerError(c)
	}

	var count int64
	ec.DB.Model(&models.Course{}).Where("educator_id = ?", educator.ID).Count(&count)

	return utils.Success(c, fiber.StatusOK, educatorWithCount{Educator: educator, CourseCount: count})
}

func (ec *EducatorsController) GetEducatorCourses(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid educator ID")
	}

	var educator models.Educator
	if err := ec.DB.First(&educator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Educator not found")
		}
		return utils.InternalServerError(c)
	}

	var courses []models.Course
	if err := ec.DB.Where("educator_id = ?", educator.ID).Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, courses)
}

func (ec *EducatorsController) CreateEducator(c *fiber.Ctx) error {
	var input struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		Bio           string `json:"bio"`
		Expertise     string `json:"expertise"`
		Experience    int    `json:"experience"`
		Qualification string `json:"qualification"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == "" || input.Email == "" {
		return utils.BadRequest(c, "Missing required fields")
	}

	var existing models.Educator
	err := ec.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Educator with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c)
	}

	educator := models.Educator{
		Name:          input.Name,
		Email:         input.Email,
		Bio:           input.Bio,
		Expertise:     input.Expertise,
		Experience:    input.Experience,
		Qualification: input.Qualification,
	}
	if err := ec.DB.Create(&educator).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Educator created successfully", fiber.Map{
		"educatorId": educator.ID,
	})
}

func (ec *EducatorsController) UpdateEducator(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid educator ID")
	}

	var educator models.Educator
	if err := ec.DB.First(&educator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Educator not found")
		}
		return utils.InternalServerError(c)
	}

	var update models.EducatorUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	changes := update.Changes()
	if len(changes) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	if err := ec.DB.Model(&educator).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Educator updated successfully", educator)
}

func (ec *EducatorsController) DeleteEducator(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid educator ID")
	}

	var educator models.Educator
	if err := ec.DB.First(&educator, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Educator not found")
		}
		return utils.InternalServerError(c)
	}

	if err := ec.DB.Delete(&educator).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Educator deleted successfully", nil)
}
