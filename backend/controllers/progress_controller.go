package controllers

import (
	"errors"
	"math"
	"strconv"

	"examprep-backend/backend/config"
	"examprep-backend/backend/middleware"
	"examprep-backend/backend/models"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

func (pc *ProgressController) RecordProgress(c *fiber.Ctx) error {
	var input struct {
		CourseID     uint     `json:"courseId"`
		LessonID     *uint    `json:"lessonId"`
		TestID       *uint    `json:"testId"`
		ProgressType string   `json:"progressType"`
		Status       string   `json:"status"`
		Score        *float64 `json:"score"`
		TimeSpent    int      `json:"timeSpent"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.CourseID == 0 || input.ProgressType == "" || input.Status == "" {
		return utils.BadRequest(c, "Missing required fields")
	}

	var course models.Course
	if err := pc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	claims, _ := middleware.CurrentUser(c)

	progress := models.Progress{
		UserID:       claims.UserID,
		CourseID:     input.CourseID,
		LessonID:     input.LessonID,
		TestID:       input.TestID,
		ProgressType: input.ProgressType,
		Status:       input.Status,
		Score:        input.Score,
		TimeSpent:    input.TimeSpent,
	}
	if err := pc.DB.Create(&progress).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Progress recorded successfully", fiber.Map{
		"progressId": progress.ID,
	})
}

func (pc *ProgressController) GetUserProgress(c *fiber.Ctx) error {
	claims, _ := middleware.CurrentUser(c)

	var records []models.Progress
	if err := pc.DB.Where("user_id = ?", claims.UserID).Order("created_at DESC").Find(&records).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, records)
}

func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := pc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	claims, _ := middleware.CurrentUser(c)

	var records []models.Progress
	if err := pc.DB.Where("user_id = ? AND course_id = ?", claims.UserID, courseID).
		Order("created_at DESC").Find(&records).Error; err != nil {
		return utils.InternalServerError(c)
	}

	completion, err := pc.completionStats(claims.UserID, uint(courseID))
	if err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course": fiber.Map{
			"id":    course.ID,
			"title": course.Title,
		},
		"progress":   records,
		"completion": completion,
	})
}

func (pc *ProgressController) GetCourseStats(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := pc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	claims, _ := middleware.CurrentUser(c)

	stats, err := pc.completionStats(claims.UserID, uint(courseID))
	if err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"courseId":    course.ID,
		"courseTitle": course.Title,
		"statistics":  stats,
	})
}

func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid progress ID")
	}

	var progress models.Progress
	if err := pc.DB.First(&progress, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Progress record not found")
		}
		return utils.InternalServerError(c)
	}

	claims, _ := middleware.CurrentUser(c)
	if progress.UserID != claims.UserID {
		return utils.Forbidden(c, "Access denied")
	}

	var update models.ProgressUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	changes := update.Changes()
	if len(changes) == 0 {
		return utils.BadRequest(c, "No valid fields to update")
	}

	if err := pc.DB.Model(&progress).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Progress updated successfully", progress)
}

// completionStats derives the completion block for one user and course:
// 100 * (completed lessons + completed tests) / (total lessons + total tests),
// rounded to two decimals, zero when the course has no items.
func (pc *ProgressController) completionStats(userID, courseID uint) (models.CompletionStats, error) {
	var stats models.CompletionStats

	if err := pc.DB.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&stats.TotalLessons).Error; err != nil {
		return stats, err
	}
	if err := pc.DB.Model(&models.Test{}).Where("course_id = ?", courseID).Count(&stats.TotalTests).Error; err != nil {
		return stats, err
	}

	if err := pc.DB.Model(&models.Progress{}).
		Where("user_id = ? AND course_id = ? AND progress_type = ? AND status = ?",
			userID, courseID, models.ProgressTypeLesson, models.ProgressStatusCompleted).
		Count(&stats.CompletedLessons).Error; err != nil {
		return stats, err
	}
	if err := pc.DB.Model(&models.Progress{}).
		Where("user_id = ? AND course_id = ? AND progress_type = ? AND status = ?",
			userID, courseID, models.ProgressTypeTest, models.ProgressStatusCompleted).
		Count(&stats.CompletedTests).Error; err != nil {
		return stats, err
	}

	total := stats.TotalLessons + stats.TotalTests
	if total > 0 {
		completed := stats.CompletedLessons + stats.CompletedTests
		rate := float64(completed) / float64(total) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}

	return stats, nil
}
