package dto

import (
	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// CreateSectorRequest defines data for creating a sector.
type CreateSectorRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SectorResponse defines data returned for a sector.
type SectorResponse struct {
	SectorID    string `json:"sectorID"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToSectorResponse converts domain.Sector to DTO.
func ToSectorResponse(s *domain.Sector) SectorResponse {
	return SectorResponse{
		SectorID:    s.SectorID,
		Name:        s.Name,
		Description: s.Description,
	}
}

// ListSectorsResponse wraps a list of sectors.
type ListSectorsResponse struct {
	Sectors []SectorResponse `json:"sectors"`
}

// ToListSectorsResponse converts a slice of domain.Sector to DTO.
func ToListSectorsResponse(ss []domain.Sector) ListSectorsResponse {
	list := make([]SectorResponse, len(ss))
	for i, s := range ss {
		list[i] = ToSectorResponse(&s)
	}
	return ListSectorsResponse{Sectors: list}
}

// AssignUserSectorRequest defines data for assigning a sector to a user. The
// target user is named in the URL; OrganizationID records the granting
// organization and is omitted for self-selection.
type AssignUserSectorRequest struct {
	SectorID       string  `json:"sectorID" binding:"required"`
	OrganizationID *string `json:"organizationID,omitempty"`
}
