package services

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// MembershipSvcFacade guards every mutation of the membership relation. All
// three mutations verify the actor holds ORG_ADMIN in the target organization
// and enforce the last-admin invariant before committing.
type MembershipSvcFacade interface {
	// AddMember adds a user to an organization with the given role.
	AddMember(ctx context.Context, actorID, organizationID, targetUserID string, role domain.MembershipRole) (*domain.Membership, error)

	// RemoveMember deletes a membership. Fails with apperrors.ErrLastAdmin
	// when the target is the organization's only remaining admin, including
	// when the actor is removing themselves.
	RemoveMember(ctx context.Context, actorID, organizationID, membershipID string) error

	// UpdateMemberRole changes a membership's role. Demoting the last admin
	// fails with apperrors.ErrLastAdmin.
	UpdateMemberRole(ctx context.Context, actorID, organizationID, membershipID string, newRole domain.MembershipRole) (*domain.Membership, error)

	// ListMembers retrieves the memberships of an organization. The actor must
	// be a member of the organization.
	ListMembers(ctx context.Context, actorID, organizationID string) ([]domain.Membership, error)
}
