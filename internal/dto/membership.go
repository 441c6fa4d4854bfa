package dto

import (
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// AddMemberRequest defines data for adding a user to an organization.
type AddMemberRequest struct {
	UserID string                `json:"userID" binding:"required"`
	Role   domain.MembershipRole `json:"role" binding:"required,oneof=ORG_ADMIN ORG_MEMBER"`
}

// UpdateMemberRoleRequest defines data for changing a member's role.
type UpdateMemberRoleRequest struct {
	Role domain.MembershipRole `json:"role" binding:"required,oneof=ORG_ADMIN ORG_MEMBER"`
}

// MembershipResponse defines data returned about a membership.
type MembershipResponse struct {
	MembershipID   string                `json:"membershipID"`
	UserID         string                `json:"userID"`
	UserName       string                `json:"userName,omitempty"`
	OrganizationID string                `json:"organizationID"`
	Role           domain.MembershipRole `json:"role"`
	AddedBy        string                `json:"addedBy"`
	JoinedAt       time.Time             `json:"joinedAt"`
}

// ToMembershipResponse converts domain.Membership to DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		MembershipID:   m.MembershipID,
		UserID:         m.UserID,
		UserName:       m.UserName,
		OrganizationID: m.OrganizationID,
		Role:           m.Role,
		AddedBy:        m.AddedBy,
		JoinedAt:       m.JoinedAt,
	}
}

// ListMembershipsResponse wraps a list of memberships.
type ListMembershipsResponse struct {
	Members []MembershipResponse `json:"members"`
}

// ToListMembershipsResponse converts a slice of domain.Membership to DTO.
func ToListMembershipsResponse(ms []domain.Membership) ListMembershipsResponse {
	list := make([]MembershipResponse, len(ms))
	for i, m := range ms {
		list[i] = ToMembershipResponse(&m)
	}
	return ListMembershipsResponse{Members: list}
}
