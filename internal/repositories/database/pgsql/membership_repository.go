package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
)

type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(db *pgxpool.Pool) portsrepo.MembershipRepositoryWithTx {
	return &PgxMembershipRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.MembershipRepositoryWithTx = (*PgxMembershipRepository)(nil)

const membershipColumns = `membership_id, user_id, organization_id, role, added_by, joined_at`

func scanMembership(row pgx.Row) (domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(
		&m.MembershipID,
		&m.UserID,
		&m.OrganizationID,
		&m.Role,
		&m.AddedBy,
		&m.JoinedAt,
	)
	return m, err
}

func (r *PgxMembershipRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	query := `
		INSERT INTO memberships (membership_id, user_id, organization_id, role, added_by, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.MembershipID,
		membership.UserID,
		membership.OrganizationID,
		membership.Role,
		membership.AddedBy,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on (user_id, organization_id)
				return apperrors.NewConflictError("user is already a member of this organization")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("referenced user or organization does not exist")
			}
		}
		return fmt.Errorf("failed to save membership: %w", err)
	}
	return nil
}

func (r *PgxMembershipRepository) FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE membership_id = $1;`
	m, err := scanMembership(r.Pool.QueryRow(ctx, query, membershipID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership by ID %s: %w", membershipID, err)
	}
	return &m, nil
}

func (r *PgxMembershipRepository) FindMembershipByUserAndOrg(ctx context.Context, userID, organizationID string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1 AND organization_id = $2;`
	m, err := scanMembership(r.Pool.QueryRow(ctx, query, userID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership for user %s in organization %s: %w", userID, organizationID, err)
	}
	return &m, nil
}

func (r *PgxMembershipRepository) ListMembershipsByOrganizationID(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	query := `
		SELECT m.membership_id, m.user_id, m.organization_id, m.role, m.added_by, m.joined_at, u.name
		FROM memberships m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.organization_id = $1
		ORDER BY m.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for organization %s: %w", organizationID, err)
	}
	memberships, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Membership, error) {
		var m domain.Membership
		err := row.Scan(&m.MembershipID, &m.UserID, &m.OrganizationID, &m.Role, &m.AddedBy, &m.JoinedAt, &m.UserName)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan memberships: %w", err)
	}
	return memberships, nil
}

func (r *PgxMembershipRepository) ListMembershipsByUserID(ctx context.Context, userID string) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for user %s: %w", userID, err)
	}
	memberships, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Membership, error) {
		return scanMembership(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan memberships: %w", err)
	}
	return memberships, nil
}

// CountAdminsForUpdate locks the organization's admin rows so concurrent
// removals and demotions serialize on the last-admin check.
func (r *PgxMembershipRepository) CountAdminsForUpdate(ctx context.Context, tx pgx.Tx, organizationID string) (int, error) {
	query := `
		SELECT membership_id FROM memberships
		WHERE organization_id = $1 AND role = $2
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, organizationID, domain.RoleOrgAdmin)
	if err != nil {
		return 0, fmt.Errorf("failed to lock admin memberships for organization %s: %w", organizationID, err)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan admin memberships: %w", err)
	}
	return len(ids), nil
}

func (r *PgxMembershipRepository) UpdateMembershipRoleInTx(ctx context.Context, tx pgx.Tx, membershipID string, role domain.MembershipRole) error {
	query := `UPDATE memberships SET role = $2 WHERE membership_id = $1;`
	tag, err := tx.Exec(ctx, query, membershipID, role)
	if err != nil {
		return fmt.Errorf("failed to update membership role %s: %w", membershipID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMembershipRepository) DeleteMembershipInTx(ctx context.Context, tx pgx.Tx, membershipID string) error {
	query := `DELETE FROM memberships WHERE membership_id = $1;`
	tag, err := tx.Exec(ctx, query, membershipID)
	if err != nil {
		return fmt.Errorf("failed to delete membership %s: %w", membershipID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
