package services

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// SectorSvcFacade manages the global sector catalog and its adoption and
// assignment edges.
type SectorSvcFacade interface {
	// CreateSector creates a sector. Restricted to system admins.
	CreateSector(ctx context.Context, name, description, creatorUserID string) (*domain.Sector, error)

	// ListSectors retrieves all sectors.
	ListSectors(ctx context.Context) ([]domain.Sector, error)

	// DeleteSector removes a sector. Blocked with a conflict error while any
	// training assignment or organization adoption references it.
	DeleteSector(ctx context.Context, sectorID, actorID string) error

	// AdoptSector opts an organization into a sector's catalog. The actor must
	// be an ORG_ADMIN of the organization.
	AdoptSector(ctx context.Context, actorID, organizationID, sectorID string) error

	// ReleaseSector removes an organization's adoption of a sector.
	ReleaseSector(ctx context.Context, actorID, organizationID, sectorID string) error

	// AssignUserSector assigns a sector to a user. organizationID records the
	// granting organization and is nil for self-selected assignments.
	AssignUserSector(ctx context.Context, actorID, userID, sectorID string, organizationID *string) error

	// UnassignUserSector removes a user's sector assignment.
	UnassignUserSector(ctx context.Context, actorID, userID, sectorID string) error
}
