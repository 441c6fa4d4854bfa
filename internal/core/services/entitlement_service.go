package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
)

// entitlementService answers the two central questions of the platform: "can
// this user open this training?" and "which trainings should this user see?".
type entitlementService struct {
	BaseService
	userRepo         portsrepo.UserReader
	membershipRepo   portsrepo.MembershipReader
	organizationRepo portsrepo.OrganizationReader
	subscriptionRepo portsrepo.SubscriptionLedger
	enrollmentRepo   portsrepo.EnrollmentReader
	trainingRepo     portsrepo.TrainingReader
	catalogRepo      portsrepo.CatalogGraphFacade
}

// NewEntitlementService creates a new instance of entitlementService.
func NewEntitlementService(
	userRepo portsrepo.UserReader,
	membershipRepo portsrepo.MembershipReader,
	organizationRepo portsrepo.OrganizationReader,
	subscriptionRepo portsrepo.SubscriptionLedger,
	enrollmentRepo portsrepo.EnrollmentReader,
	trainingRepo portsrepo.TrainingReader,
	catalogRepo portsrepo.CatalogGraphFacade,
) portssvc.EntitlementSvcFacade {
	return &entitlementService{
		userRepo:         userRepo,
		membershipRepo:   membershipRepo,
		organizationRepo: organizationRepo,
		subscriptionRepo: subscriptionRepo,
		enrollmentRepo:   enrollmentRepo,
		trainingRepo:     trainingRepo,
		catalogRepo:      catalogRepo,
	}
}

var _ portssvc.EntitlementSvcFacade = (*entitlementService)(nil)

// ResolveAccess decides access for (user, training). Checks run cheapest
// first and short-circuit on the first grant: global role, then enrollment,
// then subscription coverage over every account reachable from the user.
func (s *entitlementService) ResolveAccess(ctx context.Context, userID, trainingID string) (domain.AccessDecision, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load user for access resolution", slog.String("userID", userID))
		return domain.AccessDecision{}, err
	}

	if user.GlobalRole == domain.RoleSystemAdmin {
		return domain.GrantedDecision(), nil
	}

	_, err = s.enrollmentRepo.FindEnrollmentByUserAndTraining(ctx, userID, trainingID)
	if err == nil {
		// Any enrollment, ACTIVE or COMPLETED, is an authoritative grant.
		return domain.GrantedDecision(), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check enrollment", slog.String("userID", userID), slog.String("trainingID", trainingID))
		return domain.AccessDecision{}, err
	}

	accountIDs, err := s.reachableAccountIDs(ctx, user)
	if err != nil {
		return domain.AccessDecision{}, err
	}

	now := time.Now().UTC()
	for _, accountID := range accountIDs {
		sub, err := s.subscriptionRepo.FindActiveByAccountID(ctx, accountID, now)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			s.LogError(ctx, err, "Failed to check subscription coverage", slog.String("accountID", accountID))
			return domain.AccessDecision{}, err
		}
		if sub.CoversInstant(now) {
			return domain.GrantedDecision(), nil
		}
	}

	return domain.DeniedDecision("no enrollment or active subscription covers this training"), nil
}

// reachableAccountIDs collects the deduplicated set of billing accounts the
// user can draw coverage from: their personal account plus the account of
// every organization they belong to.
func (s *entitlementService) reachableAccountIDs(ctx context.Context, user *domain.User) ([]string, error) {
	seen := make(map[string]struct{})
	var accountIDs []string

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		accountIDs = append(accountIDs, id)
	}

	if user.PersonalAccountID != nil {
		add(*user.PersonalAccountID)
	}

	memberships, err := s.membershipRepo.ListMembershipsByUserID(ctx, user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships", slog.String("userID", user.UserID))
		return nil, err
	}
	for _, m := range memberships {
		org, err := s.organizationRepo.FindOrganizationByID(ctx, m.OrganizationID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load organization for coverage fan-out", slog.String("organizationID", m.OrganizationID))
			return nil, err
		}
		add(org.AccountID)
	}

	return accountIDs, nil
}

// BuildCatalog computes the user's personalized catalog from their sector
// assignments. A training assigned through several of the user's sectors
// appears once; COMPULSORY in any of them wins over ELECTIVE. Assignments
// pointing at trainings that no longer exist are dropped silently.
func (s *entitlementService) BuildCatalog(ctx context.Context, userID string) ([]domain.CatalogItem, error) {
	sectorIDs, err := s.catalogRepo.ListSectorIDsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list user sectors", slog.String("userID", userID))
		return nil, err
	}
	if len(sectorIDs) == 0 {
		return []domain.CatalogItem{}, nil
	}

	assignments, err := s.catalogRepo.ListAssignmentsBySectorIDs(ctx, sectorIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sector assignments", slog.String("userID", userID))
		return nil, err
	}

	consolidated := make(map[string]domain.TrainingType)
	order := make([]string, 0, len(assignments))
	for _, a := range assignments {
		existing, ok := consolidated[a.TrainingID]
		if !ok {
			consolidated[a.TrainingID] = a.TrainingType
			order = append(order, a.TrainingID)
			continue
		}
		if existing == domain.TypeElective && a.TrainingType == domain.TypeCompulsory {
			consolidated[a.TrainingID] = domain.TypeCompulsory
		}
	}

	trainings, err := s.trainingRepo.FindTrainingsByIDs(ctx, order)
	if err != nil {
		s.LogError(ctx, err, "Failed to load catalog trainings", slog.String("userID", userID))
		return nil, err
	}

	items := make([]domain.CatalogItem, 0, len(order))
	for _, trainingID := range order {
		training, ok := trainings[trainingID]
		if !ok {
			// Dangling assignment; the training was deleted out from under it.
			continue
		}

		status := domain.NotEnrolled
		enrollment, err := s.enrollmentRepo.FindEnrollmentByUserAndTraining(ctx, userID, trainingID)
		if err == nil {
			status = enrollment.Status
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load enrollment status for catalog item", slog.String("trainingID", trainingID))
			return nil, err
		}

		items = append(items, domain.CatalogItem{
			Training:         training,
			ConsolidatedType: consolidated[trainingID],
			EnrollmentStatus: status,
		})
	}

	return items, nil
}

// GetAssignableTrainingsForOrg returns the trainings an organization admin
// can draw on: everything assigned to any sector the organization adopted,
// plus published trainings with no sector assignment at all, which are
// universal by definition.
func (s *entitlementService) GetAssignableTrainingsForOrg(ctx context.Context, organizationID string) ([]domain.Training, error) {
	if _, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var result []domain.Training

	adopted, err := s.catalogRepo.ListAdoptedSectorIDs(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list adopted sectors", slog.String("organizationID", organizationID))
		return nil, err
	}
	if len(adopted) > 0 {
		assignments, err := s.catalogRepo.ListAssignmentsBySectorIDs(ctx, adopted)
		if err != nil {
			s.LogError(ctx, err, "Failed to list assignments for adopted sectors", slog.String("organizationID", organizationID))
			return nil, err
		}
		ids := make([]string, 0, len(assignments))
		for _, a := range assignments {
			if _, ok := seen[a.TrainingID]; ok {
				continue
			}
			seen[a.TrainingID] = struct{}{}
			ids = append(ids, a.TrainingID)
		}
		trainings, err := s.trainingRepo.FindTrainingsByIDs(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to load sector trainings", slog.String("organizationID", organizationID))
			return nil, err
		}
		for _, id := range ids {
			if t, ok := trainings[id]; ok {
				result = append(result, t)
			}
		}
	}

	universal, err := s.trainingRepo.ListUniversalPublishedTrainings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list universal trainings", slog.String("organizationID", organizationID))
		return nil, err
	}
	for _, t := range universal {
		if _, ok := seen[t.TrainingID]; ok {
			continue
		}
		seen[t.TrainingID] = struct{}{}
		result = append(result, t)
	}

	return result, nil
}
