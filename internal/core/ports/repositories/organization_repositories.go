package repositories

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// OrganizationReader defines read operations for organization data.
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// FindOrganizationByCNPJ retrieves an organization by its unique CNPJ.
	FindOrganizationByCNPJ(ctx context.Context, cnpj string) (*domain.Organization, error)

	// ListOrganizationsByUserID retrieves all organizations a user holds a
	// membership in.
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data.
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, organization domain.Organization) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
