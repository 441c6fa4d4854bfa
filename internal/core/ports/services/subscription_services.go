package services

import (
	"context"
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// SubscriptionSvcFacade handles subscription purchase, cancelation and the
// expiry sweep.
type SubscriptionSvcFacade interface {
	// PurchaseSubscription creates a subscription for the user's relevant
	// account. Individual plans attach to the user's personal account
	// (created lazily); enterprise plans attach to the given organization's
	// account. A second ACTIVE subscription per account is rejected.
	PurchaseSubscription(ctx context.Context, userID, planID string, organizationID *string) (*domain.Subscription, error)

	// CancelSubscription transitions a subscription to CANCELED.
	CancelSubscription(ctx context.Context, subscriptionID, actorID string) error

	// FindActiveForAccount retrieves the subscription covering now for the
	// account, if any.
	FindActiveForAccount(ctx context.Context, accountID string, now time.Time) (*domain.Subscription, error)

	// ExpireOverdue flips overdue ACTIVE subscriptions to EXPIRED and returns
	// the affected count. Called by the periodic sweeper; idempotent.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)

	// CreatePlan creates a purchasable plan. Restricted to system admins.
	CreatePlan(ctx context.Context, name string, planType domain.PlanType, price string, durationDays int, actorID string) (*domain.Plan, error)

	// ListPlans retrieves all plans.
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}
