package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
)

// subscriptionService handles plan and subscription lifecycle. Subscriptions
// always attach to an account: individual plans to the purchaser's personal
// account (created lazily on first purchase), enterprise plans to the target
// organization's account.
type subscriptionService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	organizationRepo portsrepo.OrganizationReader
	membershipRepo   portsrepo.MembershipReader
	userRepo         portsrepo.UserRepositoryFacade
}

// NewSubscriptionService creates a new instance of subscriptionService.
func NewSubscriptionService(
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	organizationRepo portsrepo.OrganizationReader,
	membershipRepo portsrepo.MembershipReader,
	userRepo portsrepo.UserRepositoryFacade,
) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		accountRepo:      accountRepo,
		organizationRepo: organizationRepo,
		membershipRepo:   membershipRepo,
		userRepo:         userRepo,
	}
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

func (s *subscriptionService) PurchaseSubscription(ctx context.Context, userID, planID string, organizationID *string) (*domain.Subscription, error) {
	plan, err := s.subscriptionRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	var accountID string
	switch plan.Type {
	case domain.PlanIndividual:
		if organizationID != nil {
			return nil, apperrors.NewValidationFailedError("individual plans cannot be purchased for an organization")
		}
		accountID, err = s.resolvePersonalAccount(ctx, userID)
		if err != nil {
			return nil, err
		}
	case domain.PlanEnterprise:
		if organizationID == nil {
			return nil, apperrors.NewValidationFailedError("enterprise plans require an organization")
		}
		org, err := s.organizationRepo.FindOrganizationByID(ctx, *organizationID)
		if err != nil {
			return nil, err
		}
		membership, err := s.membershipRepo.FindMembershipByUserAndOrg(ctx, userID, *organizationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewForbiddenError("user does not have admin rights in this organization")
			}
			return nil, err
		}
		if !membership.IsAdmin() {
			return nil, apperrors.NewForbiddenError("user does not have admin rights in this organization")
		}
		accountID = org.AccountID
	default:
		return nil, apperrors.NewValidationFailedError("unknown plan type")
	}

	now := time.Now().UTC()
	if _, err := s.subscriptionRepo.FindActiveByAccountID(ctx, accountID, now); err == nil {
		return nil, apperrors.NewConflictError("account already has an active subscription")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing subscription", slog.String("accountID", accountID))
		return nil, err
	}

	subscription := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		AccountID:      accountID,
		PlanID:         plan.PlanID,
		Status:         domain.SubscriptionActive,
		StartDate:      now,
		EndDate:        now.AddDate(0, 0, plan.DurationDays),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.subscriptionRepo.SaveSubscription(ctx, subscription); err != nil {
		s.LogError(ctx, err, "Failed to save subscription", slog.String("accountID", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Subscription purchased",
		slog.String("subscriptionID", subscription.SubscriptionID),
		slog.String("accountID", accountID),
		slog.String("planID", plan.PlanID))
	return &subscription, nil
}

// resolvePersonalAccount returns the user's personal account id, creating the
// account on the first purchase.
func (s *subscriptionService) resolvePersonalAccount(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.PersonalAccountID != nil {
		return *user.PersonalAccountID, nil
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Type:      domain.AccountPersonal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create personal account", slog.String("userID", userID))
		return "", err
	}
	if err := s.userRepo.SetPersonalAccountID(ctx, userID, account.AccountID); err != nil {
		s.LogError(ctx, err, "Failed to link personal account", slog.String("userID", userID))
		return "", err
	}
	return account.AccountID, nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, subscriptionID, actorID string) error {
	subscription, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if subscription.Status != domain.SubscriptionActive {
		return apperrors.NewConflictError("only active subscriptions can be canceled")
	}

	allowed, err := s.canManageAccount(ctx, actorID, subscription.AccountID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.NewForbiddenError("user cannot manage this account's subscriptions")
	}

	if err := s.subscriptionRepo.UpdateSubscriptionStatus(ctx, subscriptionID, domain.SubscriptionCanceled, actorID); err != nil {
		s.LogError(ctx, err, "Failed to cancel subscription", slog.String("subscriptionID", subscriptionID))
		return err
	}
	s.LogInfo(ctx, "Subscription canceled", slog.String("subscriptionID", subscriptionID))
	return nil
}

// canManageAccount reports whether the actor owns the personal account or
// holds ORG_ADMIN in an organization billed to it. System admins always may.
func (s *subscriptionService) canManageAccount(ctx context.Context, actorID, accountID string) (bool, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return false, err
	}
	if actor.GlobalRole == domain.RoleSystemAdmin {
		return true, nil
	}
	if actor.PersonalAccountID != nil && *actor.PersonalAccountID == accountID {
		return true, nil
	}

	memberships, err := s.membershipRepo.ListMembershipsByUserID(ctx, actorID)
	if err != nil {
		return false, err
	}
	for _, m := range memberships {
		if !m.IsAdmin() {
			continue
		}
		org, err := s.organizationRepo.FindOrganizationByID(ctx, m.OrganizationID)
		if err != nil {
			return false, err
		}
		if org.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (s *subscriptionService) FindActiveForAccount(ctx context.Context, accountID string, now time.Time) (*domain.Subscription, error) {
	return s.subscriptionRepo.FindActiveByAccountID(ctx, accountID, now)
}

func (s *subscriptionService) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	affected, err := s.subscriptionRepo.ExpireOverdue(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to expire overdue subscriptions")
		return 0, err
	}
	if affected > 0 {
		s.LogInfo(ctx, "Expired overdue subscriptions", slog.Int64("count", affected))
	}
	return affected, nil
}

func (s *subscriptionService) CreatePlan(ctx context.Context, name string, planType domain.PlanType, price string, durationDays int, actorID string) (*domain.Plan, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.GlobalRole != domain.RoleSystemAdmin {
		return nil, apperrors.NewForbiddenError("plan management is restricted to system admins")
	}

	parsedPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("invalid price format")
	}
	if parsedPrice.IsNegative() {
		return nil, apperrors.NewValidationFailedError("price cannot be negative")
	}
	if durationDays <= 0 {
		return nil, apperrors.NewValidationFailedError("duration must be positive")
	}

	now := time.Now().UTC()
	plan := domain.Plan{
		PlanID:       uuid.NewString(),
		Name:         name,
		Type:         planType,
		Price:        parsedPrice,
		DurationDays: durationDays,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.subscriptionRepo.SavePlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to save plan", slog.String("name", name))
		return nil, err
	}
	return &plan, nil
}

func (s *subscriptionService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.subscriptionRepo.ListPlans(ctx)
}
