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

type PgxProgressRepository struct {
	BaseRepository
}

func newPgxProgressRepository(db *pgxpool.Pool) portsrepo.ProgressRepositoryWithTx {
	return &PgxProgressRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ProgressRepositoryWithTx = (*PgxProgressRepository)(nil)

func (r *PgxProgressRepository) SaveLessonProgressInTx(ctx context.Context, tx pgx.Tx, progress domain.LessonProgress) error {
	query := `
		INSERT INTO lesson_progress (enrollment_id, lesson_id, completed_at)
		VALUES ($1, $2, $3);
	`
	_, err := tx.Exec(ctx, query, progress.EnrollmentID, progress.LessonID, progress.CompletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // primary key (enrollment_id, lesson_id)
				return apperrors.ErrAlreadyCompleted
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("referenced enrollment or lesson does not exist")
			}
		}
		return fmt.Errorf("failed to save lesson progress: %w", err)
	}
	return nil
}

func (r *PgxProgressRepository) CountLessonProgressByEnrollmentInTx(ctx context.Context, tx pgx.Tx, enrollmentID string) (int, error) {
	query := `SELECT COUNT(*) FROM lesson_progress WHERE enrollment_id = $1;`
	var count int
	if err := tx.QueryRow(ctx, query, enrollmentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lesson progress for enrollment %s: %w", enrollmentID, err)
	}
	return count, nil
}

func (r *PgxProgressRepository) ListLessonProgressByEnrollmentID(ctx context.Context, enrollmentID string) ([]domain.LessonProgress, error) {
	query := `
		SELECT enrollment_id, lesson_id, completed_at
		FROM lesson_progress
		WHERE enrollment_id = $1
		ORDER BY completed_at;
	`
	rows, err := r.Pool.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson progress for enrollment %s: %w", enrollmentID, err)
	}
	progresses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LessonProgress, error) {
		var p domain.LessonProgress
		err := row.Scan(&p.EnrollmentID, &p.LessonID, &p.CompletedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lesson progress: %w", err)
	}
	return progresses, nil
}

// UpsertEbookProgress keeps a single row per (user, training); re-reading an
// earlier page simply overwrites the stored page.
func (r *PgxProgressRepository) UpsertEbookProgress(ctx context.Context, progress domain.EbookProgress) error {
	query := `
		INSERT INTO ebook_progress (user_id, training_id, last_page_read, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, training_id) DO UPDATE SET
			last_page_read = EXCLUDED.last_page_read,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		progress.UserID,
		progress.TrainingID,
		progress.LastPageRead,
		progress.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("referenced user or training does not exist")
		}
		return fmt.Errorf("failed to upsert ebook progress: %w", err)
	}
	return nil
}

func (r *PgxProgressRepository) FindEbookProgress(ctx context.Context, userID, trainingID string) (*domain.EbookProgress, error) {
	query := `
		SELECT user_id, training_id, last_page_read, updated_at
		FROM ebook_progress
		WHERE user_id = $1 AND training_id = $2;
	`
	var p domain.EbookProgress
	err := r.Pool.QueryRow(ctx, query, userID, trainingID).Scan(
		&p.UserID,
		&p.TrainingID,
		&p.LastPageRead,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ebook progress: %w", err)
	}
	return &p, nil
}
