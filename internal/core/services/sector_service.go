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

// sectorService manages the global sector catalog and its edges. Sectors have
// no owner: creation and deletion are system-admin operations, adoption is an
// org-admin operation, and personal users may self-select sectors.
type sectorService struct {
	BaseService
	catalogRepo    portsrepo.CatalogGraphFacade
	userRepo       portsrepo.UserReader
	membershipRepo portsrepo.MembershipReader
}

// NewSectorService creates a new instance of sectorService.
func NewSectorService(
	catalogRepo portsrepo.CatalogGraphFacade,
	userRepo portsrepo.UserReader,
	membershipRepo portsrepo.MembershipReader,
) portssvc.SectorSvcFacade {
	return &sectorService{
		catalogRepo:    catalogRepo,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
	}
}

var _ portssvc.SectorSvcFacade = (*sectorService)(nil)

func (s *sectorService) requireSystemAdmin(ctx context.Context, actorID string) error {
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.GlobalRole != domain.RoleSystemAdmin {
		return apperrors.NewForbiddenError("operation restricted to system admins")
	}
	return nil
}

func (s *sectorService) requireOrgAdmin(ctx context.Context, actorID, organizationID string) error {
	membership, err := s.membershipRepo.FindMembershipByUserAndOrg(ctx, actorID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewForbiddenError("user does not have admin rights in this organization")
		}
		return err
	}
	if !membership.IsAdmin() {
		return apperrors.NewForbiddenError("user does not have admin rights in this organization")
	}
	return nil
}

func (s *sectorService) CreateSector(ctx context.Context, name, description, creatorUserID string) (*domain.Sector, error) {
	if err := s.requireSystemAdmin(ctx, creatorUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sector := domain.Sector{
		SectorID:    uuid.NewString(),
		Name:        name,
		Description: description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.catalogRepo.SaveSector(ctx, sector); err != nil {
		s.LogError(ctx, err, "Failed to save sector", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Sector created", slog.String("sectorID", sector.SectorID), slog.String("name", name))
	return &sector, nil
}

func (s *sectorService) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	return s.catalogRepo.ListSectors(ctx)
}

func (s *sectorService) DeleteSector(ctx context.Context, sectorID, actorID string) error {
	if err := s.requireSystemAdmin(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.FindSectorByID(ctx, sectorID); err != nil {
		return err
	}

	refs, err := s.catalogRepo.CountSectorReferences(ctx, sectorID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count sector references", slog.String("sectorID", sectorID))
		return err
	}
	if refs > 0 {
		return apperrors.NewConflictError("sector is still referenced by trainings or organizations")
	}

	if err := s.catalogRepo.DeleteSector(ctx, sectorID); err != nil {
		s.LogError(ctx, err, "Failed to delete sector", slog.String("sectorID", sectorID))
		return err
	}
	s.LogInfo(ctx, "Sector deleted", slog.String("sectorID", sectorID))
	return nil
}

func (s *sectorService) AdoptSector(ctx context.Context, actorID, organizationID, sectorID string) error {
	if err := s.requireOrgAdmin(ctx, actorID, organizationID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.FindSectorByID(ctx, sectorID); err != nil {
		return err
	}

	adoption := domain.OrganizationSector{
		OrganizationID: organizationID,
		SectorID:       sectorID,
	}
	if err := s.catalogRepo.AdoptSector(ctx, adoption); err != nil {
		s.LogError(ctx, err, "Failed to adopt sector",
			slog.String("organizationID", organizationID), slog.String("sectorID", sectorID))
		return err
	}
	return nil
}

func (s *sectorService) ReleaseSector(ctx context.Context, actorID, organizationID, sectorID string) error {
	if err := s.requireOrgAdmin(ctx, actorID, organizationID); err != nil {
		return err
	}
	return s.catalogRepo.ReleaseSector(ctx, organizationID, sectorID)
}

func (s *sectorService) AssignUserSector(ctx context.Context, actorID, userID, sectorID string, organizationID *string) error {
	if organizationID != nil {
		// Org-granted assignment: only that organization's admins may grant it.
		if err := s.requireOrgAdmin(ctx, actorID, *organizationID); err != nil {
			return err
		}
	} else if actorID != userID {
		// Self-selection otherwise, unless a system admin steps in.
		if err := s.requireSystemAdmin(ctx, actorID); err != nil {
			return err
		}
	}

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.FindSectorByID(ctx, sectorID); err != nil {
		return err
	}

	assignment := domain.UserSector{
		UserID:         userID,
		SectorID:       sectorID,
		OrganizationID: organizationID,
	}
	if err := s.catalogRepo.AssignUserSector(ctx, assignment); err != nil {
		s.LogError(ctx, err, "Failed to assign user sector",
			slog.String("userID", userID), slog.String("sectorID", sectorID))
		return err
	}
	return nil
}

func (s *sectorService) UnassignUserSector(ctx context.Context, actorID, userID, sectorID string) error {
	if actorID != userID {
		if err := s.requireSystemAdmin(ctx, actorID); err != nil {
			return err
		}
	}
	return s.catalogRepo.UnassignUserSector(ctx, userID, sectorID)
}
