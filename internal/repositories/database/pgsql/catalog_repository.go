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

// PgxCatalogRepository persists the catalog graph: sectors plus the adoption,
// user assignment and training classification edges hanging off them.
type PgxCatalogRepository struct {
	db *pgxpool.Pool
}

func newPgxCatalogRepository(db *pgxpool.Pool) portsrepo.CatalogGraphFacade {
	return &PgxCatalogRepository{db: db}
}

var _ portsrepo.CatalogGraphFacade = (*PgxCatalogRepository)(nil)

const sectorColumns = `sector_id, name, description, created_at, created_by, last_updated_at, last_updated_by`

func scanSector(row pgx.Row) (domain.Sector, error) {
	var s domain.Sector
	err := row.Scan(
		&s.SectorID,
		&s.Name,
		&s.Description,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

func (r *PgxCatalogRepository) SaveSector(ctx context.Context, sector domain.Sector) error {
	query := `
		INSERT INTO sectors (sector_id, name, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		sector.SectorID,
		sector.Name,
		sector.Description,
		sector.CreatedAt,
		sector.CreatedBy,
		sector.LastUpdatedAt,
		sector.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError(fmt.Sprintf("sector with name '%s' already exists", sector.Name))
		}
		return fmt.Errorf("failed to save sector: %w", err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindSectorByID(ctx context.Context, sectorID string) (*domain.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM sectors WHERE sector_id = $1;`
	sector, err := scanSector(r.db.QueryRow(ctx, query, sectorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sector by ID %s: %w", sectorID, err)
	}
	return &sector, nil
}

func (r *PgxCatalogRepository) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM sectors ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	sectors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Sector, error) {
		return scanSector(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sectors: %w", err)
	}
	return sectors, nil
}

func (r *PgxCatalogRepository) CountSectorReferences(ctx context.Context, sectorID string) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM training_sector_assignments WHERE sector_id = $1) +
			(SELECT COUNT(*) FROM organization_sectors WHERE sector_id = $1) +
			(SELECT COUNT(*) FROM user_sectors WHERE sector_id = $1);
	`
	var count int
	if err := r.db.QueryRow(ctx, query, sectorID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sector references for %s: %w", sectorID, err)
	}
	return count, nil
}

func (r *PgxCatalogRepository) DeleteSector(ctx context.Context, sectorID string) error {
	query := `DELETE FROM sectors WHERE sector_id = $1;`
	tag, err := r.db.Exec(ctx, query, sectorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewConflictError("sector is still referenced")
		}
		return fmt.Errorf("failed to delete sector %s: %w", sectorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) AdoptSector(ctx context.Context, adoption domain.OrganizationSector) error {
	query := `
		INSERT INTO organization_sectors (organization_id, sector_id)
		VALUES ($1, $2)
		ON CONFLICT (organization_id, sector_id) DO NOTHING;
	`
	_, err := r.db.Exec(ctx, query, adoption.OrganizationID, adoption.SectorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("referenced organization or sector does not exist")
		}
		return fmt.Errorf("failed to adopt sector: %w", err)
	}
	return nil
}

func (r *PgxCatalogRepository) ReleaseSector(ctx context.Context, organizationID, sectorID string) error {
	query := `DELETE FROM organization_sectors WHERE organization_id = $1 AND sector_id = $2;`
	tag, err := r.db.Exec(ctx, query, organizationID, sectorID)
	if err != nil {
		return fmt.Errorf("failed to release sector: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) ListAdoptedSectorIDs(ctx context.Context, organizationID string) ([]string, error) {
	query := `SELECT sector_id FROM organization_sectors WHERE organization_id = $1;`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adopted sectors for organization %s: %w", organizationID, err)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan adopted sectors: %w", err)
	}
	return ids, nil
}

func (r *PgxCatalogRepository) AssignUserSector(ctx context.Context, assignment domain.UserSector) error {
	query := `
		INSERT INTO user_sectors (user_id, sector_id, organization_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, sector_id) DO NOTHING;
	`
	_, err := r.db.Exec(ctx, query, assignment.UserID, assignment.SectorID, assignment.OrganizationID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("referenced user, sector or organization does not exist")
		}
		return fmt.Errorf("failed to assign user sector: %w", err)
	}
	return nil
}

func (r *PgxCatalogRepository) UnassignUserSector(ctx context.Context, userID, sectorID string) error {
	query := `DELETE FROM user_sectors WHERE user_id = $1 AND sector_id = $2;`
	tag, err := r.db.Exec(ctx, query, userID, sectorID)
	if err != nil {
		return fmt.Errorf("failed to unassign user sector: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) ListSectorIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT sector_id FROM user_sectors WHERE user_id = $1;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors for user %s: %w", userID, err)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan user sectors: %w", err)
	}
	return ids, nil
}

func scanAssignment(row pgx.Row) (domain.TrainingSectorAssignment, error) {
	var a domain.TrainingSectorAssignment
	err := row.Scan(&a.TrainingID, &a.SectorID, &a.TrainingType, &a.LegalBasis)
	return a, err
}

func (r *PgxCatalogRepository) SaveTrainingSectorAssignment(ctx context.Context, assignment domain.TrainingSectorAssignment) error {
	query := `
		INSERT INTO training_sector_assignments (training_id, sector_id, training_type, legal_basis)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (training_id, sector_id) DO UPDATE SET
			training_type = EXCLUDED.training_type,
			legal_basis = EXCLUDED.legal_basis;
	`
	_, err := r.db.Exec(ctx, query,
		assignment.TrainingID,
		assignment.SectorID,
		assignment.TrainingType,
		assignment.LegalBasis,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("referenced training or sector does not exist")
		}
		return fmt.Errorf("failed to save training sector assignment: %w", err)
	}
	return nil
}

func (r *PgxCatalogRepository) DeleteTrainingSectorAssignment(ctx context.Context, trainingID, sectorID string) error {
	query := `DELETE FROM training_sector_assignments WHERE training_id = $1 AND sector_id = $2;`
	tag, err := r.db.Exec(ctx, query, trainingID, sectorID)
	if err != nil {
		return fmt.Errorf("failed to delete training sector assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) ListAssignmentsBySectorIDs(ctx context.Context, sectorIDs []string) ([]domain.TrainingSectorAssignment, error) {
	if len(sectorIDs) == 0 {
		return []domain.TrainingSectorAssignment{}, nil
	}
	query := `
		SELECT training_id, sector_id, training_type, legal_basis
		FROM training_sector_assignments
		WHERE sector_id = ANY($1);
	`
	rows, err := r.db.Query(ctx, query, sectorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments by sectors: %w", err)
	}
	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TrainingSectorAssignment, error) {
		return scanAssignment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignments: %w", err)
	}
	return assignments, nil
}

func (r *PgxCatalogRepository) ListAssignmentsByTrainingID(ctx context.Context, trainingID string) ([]domain.TrainingSectorAssignment, error) {
	query := `
		SELECT training_id, sector_id, training_type, legal_basis
		FROM training_sector_assignments
		WHERE training_id = $1;
	`
	rows, err := r.db.Query(ctx, query, trainingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for training %s: %w", trainingID, err)
	}
	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TrainingSectorAssignment, error) {
		return scanAssignment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignments: %w", err)
	}
	return assignments, nil
}
