package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

// paymentTransitions enumerates every allowed payment status change.
// Cancelled is terminal.
var paymentTransitions = map[string][]string{
	PaymentPending:   {PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentCompleted: {PaymentCancelled},
	PaymentFailed:    {PaymentPending, PaymentCancelled},
	PaymentCancelled: {},
}

// CanTransitionPayment reports whether a payment status change from -> to is allowed.
func CanTransitionPayment(from, to string) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Subscription struct {
	gorm.Model
	UserID           uint      `gorm:"index" json:"user_id"`
	CourseID         uint      `gorm:"index" json:"course_id"`
	SubscriptionType string    `json:"subscription_type"` // monthly, quarterly, yearly
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Amount           float64   `json:"amount"`
	PaymentStatus    string    `gorm:"default:pending" json:"payment_status"`
	TransactionID    string    `json:"transaction_id,omitempty"`
}

// IsActive is the entitlement predicate: payment completed and today inside
// [start_date, end_date] inclusive, at date precision. Evaluated fresh on
// every access check.
func (s *Subscription) IsActive(now time.Time) bool {
	if s.PaymentStatus != PaymentCompleted {
		return false
	}
	today := truncateToDate(now)
	return !today.Before(truncateToDate(s.StartDate)) && !today.After(truncateToDate(s.EndDate))
}

// IsExpired reports whether the subscription window has passed.
func (s *Subscription) IsExpired(now time.Time) bool {
	return truncateToDate(s.EndDate).Before(truncateToDate(now))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type SubscriptionUpdate struct {
	SubscriptionType *string    `json:"subscription_type"`
	EndDate          *time.Time `json:"end_date"`
	PaymentStatus    *string    `json:"payment_status"`
	Amount           *float64   `json:"amount"`
}

func (u SubscriptionUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.SubscriptionType != nil {
		changes["subscription_type"] = *u.SubscriptionType
	}
	if u.EndDate != nil {
		changes["end_date"] = *u.EndDate
	}
	if u.PaymentStatus != nil {
		changes["payment_status"] = *u.PaymentStatus
	}
	if u.Amount != nil {
		changes["amount"] = *u.Amount
	}
	return changes
}

// SubscriptionStats aggregates counts and revenue across all subscriptions.
type SubscriptionStats struct {
	TotalSubscriptions   int64   `json:"total_subscriptions"`
	ActiveSubscriptions  int64   `json:"active_subscriptions"`
	PendingSubscriptions int64   `json:"pending_subscriptions"`
	TotalRevenue         float64 `json:"total_revenue"`
}
