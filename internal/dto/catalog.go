package dto

import (
	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// CatalogItemResponse is a training as seen by the requesting user.
type CatalogItemResponse struct {
	Training         TrainingResponse        `json:"training"`
	ConsolidatedType domain.TrainingType     `json:"consolidatedType"`
	EnrollmentStatus domain.EnrollmentStatus `json:"enrollmentStatus"`
}

// ToCatalogItemResponse converts domain.CatalogItem to DTO.
func ToCatalogItemResponse(ci *domain.CatalogItem) CatalogItemResponse {
	return CatalogItemResponse{
		Training:         ToTrainingResponse(&ci.Training),
		ConsolidatedType: ci.ConsolidatedType,
		EnrollmentStatus: ci.EnrollmentStatus,
	}
}

// CatalogResponse wraps the user's catalog.
type CatalogResponse struct {
	Items []CatalogItemResponse `json:"items"`
}

// ToCatalogResponse converts a slice of domain.CatalogItem to DTO.
func ToCatalogResponse(items []domain.CatalogItem) CatalogResponse {
	list := make([]CatalogItemResponse, len(items))
	for i := range items {
		list[i] = ToCatalogItemResponse(&items[i])
	}
	return CatalogResponse{Items: list}
}

// AccessDecisionResponse is the outcome of an access resolution.
type AccessDecisionResponse struct {
	Granted bool   `json:"granted"`
	Reason  string `json:"reason,omitempty"`
}

// ToAccessDecisionResponse converts domain.AccessDecision to DTO.
func ToAccessDecisionResponse(d domain.AccessDecision) AccessDecisionResponse {
	return AccessDecisionResponse{Granted: d.Granted, Reason: d.Reason}
}
