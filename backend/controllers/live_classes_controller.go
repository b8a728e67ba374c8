package controllers

import (
	"errors"
	"strconv"
	"time"

	"examprep-backend/backend/config"
	"examprep-backend/backend/middleware"
	"examprep-backend/backend/models"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LiveClassesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLiveClassesController(db *gorm.DB, cfg *config.Config) *LiveClassesController {
	return &LiveClassesController{DB: db, Cfg: cfg}
}

func (lcc *LiveClassesController) GetAllLiveClasses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	query := lcc.DB.Model(&models.LiveClass{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var classes []models.LiveClass
	if err := query.Order("scheduled_time ASC").Limit(limit).Offset(offset).Find(&classes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, classes, utils.ListMeta{
		Limit:  limit,
		Offset: offset,
		Count:  len(classes),
	})
}

func (lcc *LiveClassesController) GetLiveClassByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid live class ID")
	}

	var class models.LiveClass
	if err := lcc.DB.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Live class not found")
		}
		return utils.InternalServerError(c)
	}

	var course models.Course
	lcc.DB.First(&course, class.CourseID)

	var registrations []models.LiveClassRegistration
	lcc.DB.Where("class_id = ?", class.ID).Order("registered_at ASC").Find(&registrations)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"class":           class,
		"courseTitle":     course.Title,
		"registrations":   len(registrations),
		"registeredUsers": registrations,
	})
}

func (lcc *LiveClassesController) GetLiveClassesByCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := lcc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	var classes []models.LiveClass
	if err := lcc.DB.Where("course_id = ?", courseID).Order("scheduled_time ASC").Find(&classes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, classes)
}

func (lcc *LiveClassesController) CreateLiveClass(c *fiber.Ctx) error {
	var input struct {
		CourseID        uint      `json:"courseId"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		ScheduledTime   time.Time `json:"scheduledTime"`
		Duration        int       `json:"duration"`
		MeetingURL      string    `json:"meetingUrl"`
		MaxParticipants int       `json:"maxParticipants"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.CourseID == 0 || input.Title == "" || input.Description == "" || input.ScheduledTime.IsZero() || input.Duration == 0 {
		return utils.BadRequest(c, "Missing required fields")
	}

	var course models.Course
	if err := lcc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	if !input.ScheduledTime.After(time.Now()) {
		return utils.BadRequest(c, "Scheduled time must be in the future")
	}

	if input.MaxParticipants == 0 {
		input.MaxParticipants = 100
	}

	class := models.LiveClass{
		CourseID:        input.CourseID,
		Title:           input.Title,
		Description:     input.Description,
		ScheduledTime:   input.ScheduledTime,
		Duration:        input.Duration,
		MeetingURL:      input.MeetingURL,
		MaxParticipants: input.MaxParticipants,
		Status:          models.ClassStatusScheduled,
	}
	if err := lcc.DB.Create(&class).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Live class created successfully", fiber.Map{
		"classId": class.ID,
	})
}

// RegisterForClass enrolls the caller into a live class. The duplicate and
// capacity checks are separate reads before the insert; two concurrent
// registrations near the boundary can both pass.
func (lcc *LiveClassesController) RegisterForClass(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid live class ID")
	}

	claims, _ := middleware.CurrentUser(c)

	var class models.LiveClass
	if err := lcc.DB.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Live class not found")
		}
		return utils.InternalServerError(c)
	}

	var existing models.LiveClassRegistration
	err = lcc.DB.Where("user_id = ? AND class_id = ?", claims.UserID, class.ID).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Already registered for this class")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c)
	}

	var count int64
	if err := lcc.DB.Model(&models.LiveClassRegistration{}).Where("class_id = ?", class.ID).Count(&count).Error; err != nil {
		return utils.InternalServerError(c)
	}
	if count >= int64(class.MaxParticipants) {
		return utils.Gone(c, "Class is full")
	}

	registration := models.LiveClassRegistration{
		UserID:       claims.UserID,
		ClassID:      class.ID,
		RegisteredAt: time.Now(),
	}
	if err := lcc.DB.Create(&registration).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Successfully registered for live class", fiber.Map{
		"registrationId": registration.ID,
	})
}

func (lcc *LiveClassesController) UpdateLiveClass(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid live class ID")
	}

	var class models.LiveClass
	if err := lcc.DB.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Live class not found")
		}
		return utils.InternalServerError(c)
	}

	var update models.LiveClassUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	changes := update.Changes()
	if len(changes) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	if err := lcc.DB.Model(&class).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Live class updated successfully", class)
}

func (lcc *LiveClassesController) DeleteLiveClass(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid live class ID")
	}

	var class models.LiveClass
	if err := lcc.DB.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Live class not found")
		}
		return utils.InternalServerError(c)
	}

	if err := lcc.DB.Delete(&class).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Live class deleted successfully", nil)
}
