package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus is the lifecycle of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
)

// PlanType restricts which account types a plan may attach to.
type PlanType string

const (
	PlanIndividual PlanType = "INDIVIDUAL" // Personal accounts only
	PlanEnterprise PlanType = "ENTERPRISE" // Enterprise accounts only
)

// Plan is a purchasable subscription plan.
type Plan struct {
	PlanID       string          `json:"planID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	Type         PlanType        `json:"type"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"durationDays"`
	AuditFields
}

// Subscription attaches a plan to exactly one account. At most one ACTIVE
// subscription exists per account at any time.
type Subscription struct {
	SubscriptionID string             `json:"subscriptionID"` // Primary Key (UUID)
	AccountID      string             `json:"accountID"`
	PlanID         string             `json:"planID"`
	Status         SubscriptionStatus `json:"status"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	AuditFields
}

// CoversInstant reports whether the subscription grants access at the given
// instant. The coverage window is half-open: [StartDate, EndDate).
func (s Subscription) CoversInstant(now time.Time) bool {
	return s.Status == SubscriptionActive &&
		!now.Before(s.StartDate) &&
		now.Before(s.EndDate)
}
