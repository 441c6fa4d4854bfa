package repositories

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// SectorReader defines read operations for the global sector catalog.
type SectorReader interface {
	// FindSectorByID retrieves a specific sector by ID.
	FindSectorByID(ctx context.Context, sectorID string) (*domain.Sector, error)

	// ListSectors retrieves all sectors.
	ListSectors(ctx context.Context) ([]domain.Sector, error)

	// CountSectorReferences counts training assignments plus organization
	// adoptions referencing the sector. Deletion is blocked while > 0.
	CountSectorReferences(ctx context.Context, sectorID string) (int, error)
}

// SectorWriter defines write operations for the global sector catalog.
type SectorWriter interface {
	// SaveSector persists a new sector.
	SaveSector(ctx context.Context, sector domain.Sector) error

	// DeleteSector removes a sector. Callers must check references first.
	DeleteSector(ctx context.Context, sectorID string) error
}

// AdoptionManager defines operations on the Organization -> Sector adoption edge.
type AdoptionManager interface {
	// AdoptSector records that an organization opted into a sector's catalog.
	AdoptSector(ctx context.Context, adoption domain.OrganizationSector) error

	// ReleaseSector removes an organization's adoption of a sector.
	ReleaseSector(ctx context.Context, organizationID, sectorID string) error

	// ListAdoptedSectorIDs retrieves the sector ids an organization has adopted.
	ListAdoptedSectorIDs(ctx context.Context, organizationID string) ([]string, error)
}

// UserSectorManager defines operations on the User -> Sector assignment edge.
type UserSectorManager interface {
	// AssignUserSector records a sector assignment for a user.
	AssignUserSector(ctx context.Context, assignment domain.UserSector) error

	// UnassignUserSector removes a user's sector assignment.
	UnassignUserSector(ctx context.Context, userID, sectorID string) error

	// ListSectorIDsByUserID retrieves all sector ids assigned to a user,
	// regardless of whether the assignment came through an organization or was
	// self-selected.
	ListSectorIDsByUserID(ctx context.Context, userID string) ([]string, error)
}

// AssignmentManager defines operations on the Training <-> Sector edge.
type AssignmentManager interface {
	// SaveTrainingSectorAssignment persists a training/sector classification.
	SaveTrainingSectorAssignment(ctx context.Context, assignment domain.TrainingSectorAssignment) error

	// DeleteTrainingSectorAssignment removes a training/sector classification.
	DeleteTrainingSectorAssignment(ctx context.Context, trainingID, sectorID string) error

	// ListAssignmentsBySectorIDs retrieves all assignments whose sector id is
	// in the given set.
	ListAssignmentsBySectorIDs(ctx context.Context, sectorIDs []string) ([]domain.TrainingSectorAssignment, error)

	// ListAssignmentsByTrainingID retrieves all assignments of a training.
	ListAssignmentsByTrainingID(ctx context.Context, trainingID string) ([]domain.TrainingSectorAssignment, error)
}

// CatalogGraphFacade is the pure query facade over the four catalog relations
// (Sector, OrganizationSector, UserSector, TrainingSectorAssignment) that the
// entitlement resolver depends on.
type CatalogGraphFacade interface {
	SectorReader
	SectorWriter
	AdoptionManager
	UserSectorManager
	AssignmentManager
}
