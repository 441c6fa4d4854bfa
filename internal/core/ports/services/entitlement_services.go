package services

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// AccessResolverSvc decides, for a (user, training) pair, whether access is
// granted. Enrollment is authoritative and checked before subscription
// coverage; coverage fans out over every account reachable from the user.
type AccessResolverSvc interface {
	// ResolveAccess returns the access decision for the user and training.
	ResolveAccess(ctx context.Context, userID, trainingID string) (domain.AccessDecision, error)
}

// CatalogBuilderSvc computes per-user catalog views.
type CatalogBuilderSvc interface {
	// BuildCatalog returns the trainings visible to the user through their
	// sector assignments, with consolidated compulsory/elective classification
	// and enrollment status. Output ordering is unspecified.
	BuildCatalog(ctx context.Context, userID string) ([]domain.CatalogItem, error)

	// GetAssignableTrainingsForOrg returns the union of trainings assigned to
	// any sector the organization adopted and universal published trainings.
	GetAssignableTrainingsForOrg(ctx context.Context, organizationID string) ([]domain.Training, error)
}

// EntitlementSvcFacade combines all entitlement resolution interfaces.
type EntitlementSvcFacade interface {
	AccessResolverSvc
	CatalogBuilderSvc
}
