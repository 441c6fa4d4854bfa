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

type PgxOrganizationRepository struct {
	db *pgxpool.Pool
}

func newPgxOrganizationRepository(db *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{db: db}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, account_id, name, cnpj, created_at, created_by, last_updated_at, last_updated_by`

func scanOrganization(row pgx.Row) (domain.Organization, error) {
	var o domain.Organization
	err := row.Scan(
		&o.OrganizationID,
		&o.AccountID,
		&o.Name,
		&o.CNPJ,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	return o, err
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	query := `
		INSERT INTO organizations (organization_id, account_id, name, cnpj, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		organization.OrganizationID,
		organization.AccountID,
		organization.Name,
		organization.CNPJ,
		organization.CreatedAt,
		organization.CreatedBy,
		organization.LastUpdatedAt,
		organization.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError(fmt.Sprintf("organization with CNPJ '%s' already exists", organization.CNPJ))
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("referenced account does not exist")
			}
		}
		return fmt.Errorf("failed to save organization: %w", err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE organization_id = $1;`
	org, err := scanOrganization(r.db.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", organizationID, err)
	}
	return &org, nil
}

func (r *PgxOrganizationRepository) FindOrganizationByCNPJ(ctx context.Context, cnpj string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE cnpj = $1;`
	org, err := scanOrganization(r.db.QueryRow(ctx, query, cnpj))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by CNPJ: %w", err)
	}
	return &org, nil
}

func (r *PgxOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.account_id, o.name, o.cnpj, o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN memberships m ON m.organization_id = o.organization_id
		WHERE m.user_id = $1
		ORDER BY o.name;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations for user %s: %w", userID, err)
	}
	orgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Organization, error) {
		return scanOrganization(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan organizations: %w", err)
	}
	return orgs, nil
}
