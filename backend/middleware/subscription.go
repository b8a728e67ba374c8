package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"examprep-backend/backend/models"
	"examprep-backend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const subscriptionKey = "subscription"

// ValidateSubscriptionOwnership loads the subscription named by the :id param,
// rejects access by anyone but its owner and stores it on the request context.
func ValidateSubscriptionOwnership(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id <= 0 {
			return utils.BadRequest(c, "Invalid subscription ID")
		}

		var subscription models.Subscription
		if err := db.First(&subscription, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Subscription not found")
			}
			return utils.InternalServerError(c)
		}

		claims, _ := CurrentUser(c)
		if subscription.UserID != claims.UserID {
			return utils.Forbidden(c, "Access denied - not your subscription")
		}

		c.Locals(subscriptionKey, &subscription)
		return c.Next()
	}
}

// SubscriptionFromContext returns the subscription stored by
// ValidateSubscriptionOwnership.
func SubscriptionFromContext(c *fiber.Ctx) *models.Subscription {
	subscription, _ := c.Locals(subscriptionKey).(*models.Subscription)
	return subscription
}

// CheckSubscriptionModifiable rejects changes to cancelled or expired
// subscriptions.
func CheckSubscriptionModifiable(c *fiber.Ctx) error {
	subscription := SubscriptionFromContext(c)
	if subscription == nil {
		return utils.BadRequest(c, "Subscription not found in request")
	}

	if subscription.PaymentStatus == models.PaymentCancelled {
		return utils.BadRequest(c, "Cannot modify cancelled subscription")
	}

	if subscription.IsExpired(time.Now()) {
		return utils.BadRequest(c, "Cannot modify expired subscription")
	}

	return c.Next()
}

// ValidatePaymentStatusTransition checks the requested payment status change
// against the transition table before the handler applies it.
func ValidatePaymentStatusTransition(c *fiber.Ctx) error {
	var body struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if body.PaymentStatus == "" {
		return utils.BadRequest(c, "Payment status is required")
	}

	current := SubscriptionFromContext(c).PaymentStatus
	if !models.CanTransitionPayment(current, body.PaymentStatus) {
		return utils.BadRequest(c, fmt.Sprintf("Invalid payment status transition from %s to %s", current, body.PaymentStatus))
	}

	return c.Next()
}
