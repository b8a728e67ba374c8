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

type SubscriptionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubscriptionsController(db *gorm.DB, cfg *config.Config) *SubscriptionsController {
	return &SubscriptionsController{DB: db, Cfg: cfg}
}

// hasActiveSubscription is the entitlement predicate. The date-window check
// runs in Go so it behaves identically on every SQL dialect.
func (sc *SubscriptionsController) hasActiveSubscription(userID, courseID uint) (bool, error) {
	var subscriptions []models.Subscription
	err := sc.DB.Where("user_id = ? AND course_id = ? AND payment_status = ?",
		userID, courseID, models.PaymentCompleted).Find(&subscriptions).Error
	if err != nil {
		return false, err
	}

	now := time.Now()
	for i := range subscriptions {
		if subscriptions[i].IsActive(now) {
			return true, nil
		}
	}
	return false, nil
}

// CreateSubscription godoc
// @Summary Subscribe to a course
// @Description Creates a pending subscription; payment confirmation follows separately
// @Tags subscriptions
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subscriptions [post]
func (sc *SubscriptionsController) CreateSubscription(c *fiber.Ctx) error {
	var input struct {
		CourseID         uint    `json:"courseId"`
		SubscriptionType string  `json:"subscriptionType"`
		Duration         int     `json:"duration"` // months
		Amount           float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.CourseID == 0 || input.SubscriptionType == "" || input.Duration == 0 || input.Amount == 0 {
		return utils.BadRequest(c, "Missing required fields")
	}

	var course models.Course
	if err := sc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c)
	}

	claims, _ := middleware.CurrentUser(c)

	// Pre-check only; a concurrent create can still slip through between
	// this read and the insert below.
	active, err := sc.hasActiveSubscription(claims.UserID, input.CourseID)
	if err != nil {
		return utils.InternalServerError(c)
	}
	if active {
		return utils.Conflict(c, "User already has an active subscription for this course")
	}

	// Calendar-month arithmetic, not fixed-day
	startDate := time.Now()
	endDate := startDate.AddDate(0, input.Duration, 0)

	subscription := models.Subscription{
		UserID:           claims.UserID,
		CourseID:         input.CourseID,
		SubscriptionType: input.SubscriptionType,
		StartDate:        startDate,
		EndDate:          endDate,
		Amount:           input.Amount,
		PaymentStatus:    models.PaymentPending,
	}
	if err := sc.DB.Create(&subscription).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusCreated, "Subscription created successfully", fiber.Map{
		"subscriptionId":  subscription.ID,
		"paymentRequired": true,
		"amount":          subscription.Amount,
	})
}

func (sc *SubscriptionsController) GetMySubscriptions(c *fiber.Ctx) error {
	claims, _ := middleware.CurrentUser(c)

	var subscriptions []models.Subscription
	if err := sc.DB.Where("user_id = ?", claims.UserID).Order("created_at DESC").Find(&subscriptions).Error; err != nil {
		return utils.InternalServerError(c)
	}

	result := make([]fiber.Map, 0, len(subscriptions))
	for _, sub := range subscriptions {
		var course models.Course
		sc.DB.First(&course, sub.CourseID)
		result = append(result, fiber.Map{
			"subscription": sub,
			"courseTitle":  course.Title,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// CheckCourseAccess answers whether the caller is currently entitled to the
// course's paid content.
func (sc *SubscriptionsController) CheckCourseAccess(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return utils.BadRequest(c, "Invalid course ID")
	}

	claims, _ := middleware.CurrentUser(c)

	hasAccess, err := sc.hasActiveSubscription(claims.UserID, uint(courseID))
	if err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"courseId":  courseID,
		"hasAccess": hasAccess,
		"userId":    claims.UserID,
	})
}

// GetSubscriptionByID runs after the ownership middleware, so the record is
// already loaded and verified.
func (sc *SubscriptionsController) GetSubscriptionByID(c *fiber.Ctx) error {
	subscription := middleware.SubscriptionFromContext(c)

	var course models.Course
	sc.DB.First(&course, subscription.CourseID)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"subscription": subscription,
		"courseTitle":  course.Title,
	})
}

// UpdatePayment applies a payment status change that already passed the
// ownership, modifiable and transition checks.
func (sc *SubscriptionsController) UpdatePayment(c *fiber.Ctx) error {
	var input struct {
		PaymentStatus string `json:"paymentStatus"`
		TransactionID string `json:"transactionId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	subscription := middleware.SubscriptionFromContext(c)

	changes := map[string]interface{}{
		"payment_status": input.PaymentStatus,
	}
	if input.TransactionID != "" {
		changes["transaction_id"] = input.TransactionID
	}

	if err := sc.DB.Model(subscription).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Subscription updated successfully", subscription)
}

// CancelSubscription sets the terminal status and closes the validity window
// today. Cancelling twice succeeds both times.
func (sc *SubscriptionsController) CancelSubscription(c *fiber.Ctx) error {
	subscription := middleware.SubscriptionFromContext(c)

	changes := map[string]interface{}{
		"payment_status": models.PaymentCancelled,
		"end_date":       time.Now(),
	}
	if err := sc.DB.Model(subscription).Updates(changes).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.SuccessMessage(c, fiber.StatusOK, "Subscription cancelled successfully", subscription)
}

func (sc *SubscriptionsController) GetAllSubscriptions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	query := sc.DB.Model(&models.Subscription{})
	if status := c.Query("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}

	var subscriptions []models.Subscription
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&subscriptions).Error; err != nil {
		return utils.InternalServerError(c)
	}

	return utils.Success(c, fiber.StatusOK, subscriptions, utils.ListMeta{
		Limit:  limit,
		Offset: offset,
		Count:  len(subscriptions),
	})
}

func (sc *SubscriptionsController) GetSubscriptionStats(c *fiber.Ctx) error {
	var stats models.SubscriptionStats

	model := sc.DB.Model(&models.Subscription{})
	if err := model.Count(&stats.TotalSubscriptions).Error; err != nil {
		return utils.InternalServerError(c)
	}
	sc.DB.Model(&models.Subscription{}).Where("payment_status = ?", models.PaymentCompleted).Count(&stats.ActiveSubscriptions)
	sc.DB.Model(&models.Subscription{}).Where("payment_status = ?", models.PaymentPending).Count(&stats.PendingSubscriptions)

	var revenue *float64
	sc.DB.Model(&models.Subscription{}).
		Where("payment_status = ?", models.PaymentCompleted).
		Select("SUM(amount)").
		Scan(&revenue)
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	return utils.Success(c, fiber.StatusOK, stats)
}
