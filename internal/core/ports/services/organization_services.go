package services

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// OrganizationSvcFacade handles organization lifecycle.
type OrganizationSvcFacade interface {
	// CreateOrganization creates an organization and makes the creator its
	// first ORG_ADMIN. When no account id is given, a fresh enterprise
	// account is created for it.
	CreateOrganization(ctx context.Context, name, cnpj string, accountID *string, creatorUserID string) (*domain.Organization, error)

	// FindOrganizationByID retrieves a specific organization by ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves the organizations the user belongs to.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)
}
