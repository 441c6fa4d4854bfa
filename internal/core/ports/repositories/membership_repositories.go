package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// MembershipReader defines read operations for membership data.
type MembershipReader interface {
	// FindMembershipByID retrieves a specific membership by ID.
	FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error)

	// FindMembershipByUserAndOrg retrieves the membership a user holds in an
	// organization, if any.
	FindMembershipByUserAndOrg(ctx context.Context, userID, organizationID string) (*domain.Membership, error)

	// ListMembershipsByOrganizationID retrieves all memberships of an organization.
	ListMembershipsByOrganizationID(ctx context.Context, organizationID string) ([]domain.Membership, error)

	// ListMembershipsByUserID retrieves all memberships a user currently holds.
	ListMembershipsByUserID(ctx context.Context, userID string) ([]domain.Membership, error)
}

// MembershipWriter defines write operations for membership data. The InTx
// variants participate in a caller-managed transaction so the admin-count
// precondition and the write commit atomically.
type MembershipWriter interface {
	// SaveMembership persists a new membership.
	SaveMembership(ctx context.Context, membership domain.Membership) error

	// CountAdminsForUpdate counts ORG_ADMIN memberships of an organization
	// while locking the counted rows until the transaction ends.
	CountAdminsForUpdate(ctx context.Context, tx pgx.Tx, organizationID string) (int, error)

	// UpdateMembershipRoleInTx updates a membership's role within tx.
	UpdateMembershipRoleInTx(ctx context.Context, tx pgx.Tx, membershipID string, role domain.MembershipRole) error

	// DeleteMembershipInTx deletes a membership within tx.
	DeleteMembershipInTx(ctx context.Context, tx pgx.Tx, membershipID string) error
}

// MembershipRepositoryFacade combines all membership-related repository interfaces.
type MembershipRepositoryFacade interface {
	MembershipReader
	MembershipWriter
}

// MembershipRepositoryWithTx extends MembershipRepositoryFacade with
// transaction capabilities.
type MembershipRepositoryWithTx interface {
	MembershipRepositoryFacade
	TransactionManager
}
