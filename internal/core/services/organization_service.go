package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
)

// organizationService handles organization lifecycle. Creating an
// organization also creates its billing account (unless an existing
// enterprise account is supplied) and seeds the creator as the first
// ORG_ADMIN, satisfying the at-least-one-admin invariant from birth.
type organizationService struct {
	BaseService
	organizationRepo portsrepo.OrganizationRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	membershipRepo   portsrepo.MembershipRepositoryFacade
}

// NewOrganizationService creates a new instance of organizationService.
func NewOrganizationService(
	organizationRepo portsrepo.OrganizationRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	membershipRepo portsrepo.MembershipRepositoryFacade,
) portssvc.OrganizationSvcFacade {
	return &organizationService{
		organizationRepo: organizationRepo,
		accountRepo:      accountRepo,
		membershipRepo:   membershipRepo,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

func (s *organizationService) CreateOrganization(ctx context.Context, name, cnpj string, accountID *string, creatorUserID string) (*domain.Organization, error) {
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	var orgAccountID string
	if accountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *accountID)
		if err != nil {
			return nil, err
		}
		if account.Type != domain.AccountEnterprise {
			return nil, apperrors.NewValidationFailedError("organizations require an enterprise account")
		}
		orgAccountID = account.AccountID
	} else {
		account := domain.Account{
			AccountID:   uuid.NewString(),
			Type:        domain.AccountEnterprise,
			AuditFields: audit,
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			s.LogError(ctx, err, "Failed to create enterprise account")
			return nil, err
		}
		orgAccountID = account.AccountID
	}

	organization := domain.Organization{
		OrganizationID: uuid.NewString(),
		AccountID:      orgAccountID,
		Name:           name,
		CNPJ:           cnpj,
		AuditFields:    audit,
	}
	if err := s.organizationRepo.SaveOrganization(ctx, organization); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("cnpj", cnpj))
		return nil, err
	}

	membership := domain.Membership{
		MembershipID:   uuid.NewString(),
		UserID:         creatorUserID,
		OrganizationID: organization.OrganizationID,
		Role:           domain.RoleOrgAdmin,
		AddedBy:        creatorUserID,
		JoinedAt:       now,
	}
	if err := s.membershipRepo.SaveMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to seed creator admin membership",
			slog.String("organizationID", organization.OrganizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Organization created",
		slog.String("organizationID", organization.OrganizationID),
		slog.String("creatorUserID", creatorUserID))
	return &organization, nil
}

func (s *organizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	return s.organizationRepo.FindOrganizationByID(ctx, organizationID)
}

func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	return s.organizationRepo.ListOrganizationsByUserID(ctx, userID)
}
