package dto

import (
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// CreateOrganizationRequest defines data for creating a new organization.
// AccountID attaches the organization to an existing enterprise account; when
// omitted, a fresh account is created.
type CreateOrganizationRequest struct {
	Name      string  `json:"name" binding:"required"`
	CNPJ      string  `json:"cnpj" binding:"required,cnpj"`
	AccountID *string `json:"accountID,omitempty"`
}

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	AccountID      string    `json:"accountID"`
	Name           string    `json:"name"`
	CNPJ           string    `json:"cnpj"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToOrganizationResponse converts domain.Organization to DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		AccountID:      o.AccountID,
		Name:           o.Name,
		CNPJ:           o.CNPJ,
		CreatedAt:      o.CreatedAt,
		CreatedBy:      o.CreatedBy,
	}
}

// ListOrganizationsResponse wraps a list of organizations.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// ToListOrganizationsResponse converts a slice of domain.Organization to DTO.
func ToListOrganizationsResponse(os []domain.Organization) ListOrganizationsResponse {
	list := make([]OrganizationResponse, len(os))
	for i, o := range os {
		list[i] = ToOrganizationResponse(&o)
	}
	return ListOrganizationsResponse{Organizations: list}
}
