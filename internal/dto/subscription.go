package dto

import (
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// PurchaseSubscriptionRequest defines data for purchasing a subscription.
// OrganizationID is required for enterprise plans and must be absent for
// individual ones.
type PurchaseSubscriptionRequest struct {
	PlanID         string  `json:"planID" binding:"required"`
	OrganizationID *string `json:"organizationID,omitempty"`
}

// SubscriptionResponse defines data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID string                    `json:"subscriptionID"`
	AccountID      string                    `json:"accountID"`
	PlanID         string                    `json:"planID"`
	Status         domain.SubscriptionStatus `json:"status"`
	StartDate      time.Time                 `json:"startDate"`
	EndDate        time.Time                 `json:"endDate"`
}

// ToSubscriptionResponse converts domain.Subscription to DTO.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID: s.SubscriptionID,
		AccountID:      s.AccountID,
		PlanID:         s.PlanID,
		Status:         s.Status,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
	}
}

// CreatePlanRequest defines data for creating a plan.
type CreatePlanRequest struct {
	Name         string          `json:"name" binding:"required"`
	Type         domain.PlanType `json:"type" binding:"required,oneof=INDIVIDUAL ENTERPRISE"`
	Price        string          `json:"price" binding:"required"`
	DurationDays int             `json:"durationDays" binding:"required,gt=0"`
}

// PlanResponse defines data returned for a plan.
type PlanResponse struct {
	PlanID       string          `json:"planID"`
	Name         string          `json:"name"`
	Type         domain.PlanType `json:"type"`
	Price        string          `json:"price"`
	DurationDays int             `json:"durationDays"`
}

// ToPlanResponse converts domain.Plan to DTO.
func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		PlanID:       p.PlanID,
		Name:         p.Name,
		Type:         p.Type,
		Price:        p.Price.String(),
		DurationDays: p.DurationDays,
	}
}

// ListPlansResponse wraps a list of plans.
type ListPlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// ToListPlansResponse converts a slice of domain.Plan to DTO.
func ToListPlansResponse(ps []domain.Plan) ListPlansResponse {
	list := make([]PlanResponse, len(ps))
	for i, p := range ps {
		list[i] = ToPlanResponse(&p)
	}
	return ListPlansResponse{Plans: list}
}
