package repositories

import (
	"context"
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// SubscriptionLedger is the engine's read view over subscription coverage:
// for a given account, the currently active subscription (if any) whose
// [startDate, endDate) window covers the instant.
type SubscriptionLedger interface {
	// FindActiveByAccountID retrieves the ACTIVE subscription covering now for
	// the account, or apperrors.ErrNotFound when none exists.
	FindActiveByAccountID(ctx context.Context, accountID string, now time.Time) (*domain.Subscription, error)
}

// SubscriptionReader defines general read operations for subscription data.
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a specific subscription by ID.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
}

// SubscriptionWriter defines write operations for subscription data.
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription. A second ACTIVE
	// subscription for the same account surfaces as a conflict.
	SaveSubscription(ctx context.Context, subscription domain.Subscription) error

	// UpdateSubscriptionStatus transitions a subscription's status.
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus, updatedBy string) error

	// ExpireOverdue flips ACTIVE subscriptions whose end date is at or before
	// now to EXPIRED, returning the number of rows affected. Idempotent and
	// safe to run concurrently with reads.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// PlanReader defines read operations for plan data.
type PlanReader interface {
	// FindPlanByID retrieves a specific plan by ID.
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// ListPlans retrieves all plans.
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}

// PlanWriter defines write operations for plan data.
type PlanWriter interface {
	// SavePlan persists a new plan.
	SavePlan(ctx context.Context, plan domain.Plan) error
}

// SubscriptionRepositoryFacade combines all subscription-related repository
// interfaces.
type SubscriptionRepositoryFacade interface {
	SubscriptionLedger
	SubscriptionReader
	SubscriptionWriter
	PlanReader
	PlanWriter
}
