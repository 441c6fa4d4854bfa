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

type PgxEnrollmentRepository struct {
	BaseRepository
}

func newPgxEnrollmentRepository(db *pgxpool.Pool) portsrepo.EnrollmentRepositoryWithTx {
	return &PgxEnrollmentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.EnrollmentRepositoryWithTx = (*PgxEnrollmentRepository)(nil)

const enrollmentColumns = `enrollment_id, user_id, training_id, status, sponsored_by, enrolled_at, completed_at`

func scanEnrollment(row pgx.Row) (domain.Enrollment, error) {
	var e domain.Enrollment
	err := row.Scan(
		&e.EnrollmentID,
		&e.UserID,
		&e.TrainingID,
		&e.Status,
		&e.SponsoredBy,
		&e.EnrolledAt,
		&e.CompletedAt,
	)
	return e, err
}

func (r *PgxEnrollmentRepository) SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	query := `
		INSERT INTO enrollments (enrollment_id, user_id, training_id, status, sponsored_by, enrolled_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		enrollment.EnrollmentID,
		enrollment.UserID,
		enrollment.TrainingID,
		enrollment.Status,
		enrollment.SponsoredBy,
		enrollment.EnrolledAt,
		enrollment.CompletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on (user_id, training_id)
				return apperrors.ErrAlreadyEnrolled
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("referenced user or training does not exist")
			}
		}
		return fmt.Errorf("failed to save enrollment: %w", err)
	}
	return nil
}

func (r *PgxEnrollmentRepository) FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE enrollment_id = $1;`
	enrollment, err := scanEnrollment(r.Pool.QueryRow(ctx, query, enrollmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment by ID %s: %w", enrollmentID, err)
	}
	return &enrollment, nil
}

func (r *PgxEnrollmentRepository) FindEnrollmentByUserAndTraining(ctx context.Context, userID, trainingID string) (*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id = $1 AND training_id = $2;`
	enrollment, err := scanEnrollment(r.Pool.QueryRow(ctx, query, userID, trainingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment for user %s and training %s: %w", userID, trainingID, err)
	}
	return &enrollment, nil
}

func (r *PgxEnrollmentRepository) ListEnrollmentsByUserID(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id = $1 ORDER BY enrolled_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments for user %s: %w", userID, err)
	}
	enrollments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Enrollment, error) {
		return scanEnrollment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *PgxEnrollmentRepository) FindEnrollmentForUpdate(ctx context.Context, tx pgx.Tx, enrollmentID string) (*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE enrollment_id = $1 FOR UPDATE;`
	enrollment, err := scanEnrollment(tx.QueryRow(ctx, query, enrollmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock enrollment %s: %w", enrollmentID, err)
	}
	return &enrollment, nil
}

// MarkEnrollmentCompletedInTx flips the status guard-checked in SQL so a
// completed enrollment is never reverted or double-completed.
func (r *PgxEnrollmentRepository) MarkEnrollmentCompletedInTx(ctx context.Context, tx pgx.Tx, enrollmentID string) error {
	query := `
		UPDATE enrollments
		SET status = $2, completed_at = NOW()
		WHERE enrollment_id = $1 AND status = $3;
	`
	tag, err := tx.Exec(ctx, query, enrollmentID, domain.EnrollmentCompleted, domain.EnrollmentActive)
	if err != nil {
		return fmt.Errorf("failed to complete enrollment %s: %w", enrollmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyCompleted
	}
	return nil
}
