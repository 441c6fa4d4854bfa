package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
)

// membershipService guards every mutation of the membership relation. The
// last-admin invariant is enforced inside a transaction: the admin rows are
// counted under a row lock so two concurrent removals cannot both observe
// count == 2 and leave the organization adminless.
type membershipService struct {
	BaseService
	membershipRepo   portsrepo.MembershipRepositoryWithTx
	organizationRepo portsrepo.OrganizationReader
	userRepo         portsrepo.UserReader
}

// NewMembershipService creates a new instance of membershipService.
func NewMembershipService(
	membershipRepo portsrepo.MembershipRepositoryWithTx,
	organizationRepo portsrepo.OrganizationReader,
	userRepo portsrepo.UserReader,
) portssvc.MembershipSvcFacade {
	return &membershipService{
		membershipRepo:   membershipRepo,
		organizationRepo: organizationRepo,
		userRepo:         userRepo,
	}
}

var _ portssvc.MembershipSvcFacade = (*membershipService)(nil)

// requireOrgAdmin verifies the actor holds ORG_ADMIN in the organization.
// Non-members and plain members both get ErrForbidden; the distinction is not
// leaked to the caller.
func (s *membershipService) requireOrgAdmin(ctx context.Context, actorID, organizationID string) error {
	actorMembership, err := s.membershipRepo.FindMembershipByUserAndOrg(ctx, actorID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewForbiddenError("user does not have admin rights in this organization")
		}
		s.LogError(ctx, err, "Failed to check actor membership", slog.String("actorID", actorID), slog.String("organizationID", organizationID))
		return err
	}
	if !actorMembership.IsAdmin() {
		return apperrors.NewForbiddenError("user does not have admin rights in this organization")
	}
	return nil
}

func (s *membershipService) AddMember(ctx context.Context, actorID, organizationID, targetUserID string, role domain.MembershipRole) (*domain.Membership, error) {
	if err := s.requireOrgAdmin(ctx, actorID, organizationID); err != nil {
		return nil, err
	}

	if _, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	membership := domain.Membership{
		MembershipID:   uuid.NewString(),
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		AddedBy:        actorID,
		JoinedAt:       time.Now().UTC(),
	}

	if err := s.membershipRepo.SaveMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to save membership", slog.String("organizationID", organizationID), slog.String("targetUserID", targetUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Member added to organization",
		slog.String("organizationID", organizationID),
		slog.String("targetUserID", targetUserID),
		slog.String("role", string(role)))
	return &membership, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, actorID, organizationID, membershipID string) error {
	if err := s.requireOrgAdmin(ctx, actorID, organizationID); err != nil {
		return err
	}

	membership, err := s.membershipRepo.FindMembershipByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if membership.OrganizationID != organizationID {
		return apperrors.ErrOrganizationMismatch
	}

	tx, err := s.membershipRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for member removal")
		return err
	}
	defer s.membershipRepo.Rollback(ctx, tx)

	if membership.IsAdmin() {
		adminCount, err := s.membershipRepo.CountAdminsForUpdate(ctx, tx, organizationID)
		if err != nil {
			s.LogError(ctx, err, "Failed to count admins", slog.String("organizationID", organizationID))
			return err
		}
		// The rule holds even when the actor removes themselves.
		if adminCount <= 1 {
			return apperrors.ErrLastAdmin
		}
	}

	if err := s.membershipRepo.DeleteMembershipInTx(ctx, tx, membershipID); err != nil {
		s.LogError(ctx, err, "Failed to delete membership", slog.String("membershipID", membershipID))
		return err
	}
	if err := s.membershipRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit member removal")
		return err
	}

	s.LogInfo(ctx, "Member removed from organization",
		slog.String("organizationID", organizationID),
		slog.String("membershipID", membershipID))
	return nil
}

func (s *membershipService) UpdateMemberRole(ctx context.Context, actorID, organizationID, membershipID string, newRole domain.MembershipRole) (*domain.Membership, error) {
	if err := s.requireOrgAdmin(ctx, actorID, organizationID); err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.FindMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.OrganizationID != organizationID {
		return nil, apperrors.ErrOrganizationMismatch
	}

	if membership.Role == newRole {
		return membership, nil
	}

	tx, err := s.membershipRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for role update")
		return nil, err
	}
	defer s.membershipRepo.Rollback(ctx, tx)

	if membership.IsAdmin() && newRole != domain.RoleOrgAdmin {
		adminCount, err := s.membershipRepo.CountAdminsForUpdate(ctx, tx, organizationID)
		if err != nil {
			s.LogError(ctx, err, "Failed to count admins", slog.String("organizationID", organizationID))
			return nil, err
		}
		if adminCount <= 1 {
			return nil, apperrors.ErrLastAdmin
		}
	}

	if err := s.membershipRepo.UpdateMembershipRoleInTx(ctx, tx, membershipID, newRole); err != nil {
		s.LogError(ctx, err, "Failed to update membership role", slog.String("membershipID", membershipID))
		return nil, err
	}
	if err := s.membershipRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit role update")
		return nil, err
	}

	membership.Role = newRole
	s.LogInfo(ctx, "Member role updated",
		slog.String("organizationID", organizationID),
		slog.String("membershipID", membershipID),
		slog.String("newRole", string(newRole)))
	return membership, nil
}

func (s *membershipService) ListMembers(ctx context.Context, actorID, organizationID string) ([]domain.Membership, error) {
	if _, err := s.membershipRepo.FindMembershipByUserAndOrg(ctx, actorID, organizationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewForbiddenError("user is not a member of this organization")
		}
		return nil, err
	}
	return s.membershipRepo.ListMembershipsByOrganizationID(ctx, organizationID)
}
