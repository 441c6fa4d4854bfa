package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// ProgressReader defines read operations for lesson and ebook progress rows.
type ProgressReader interface {
	// FindEbookProgress retrieves the ebook progress row for (user, training),
	// or apperrors.ErrNotFound when the user has not started reading.
	FindEbookProgress(ctx context.Context, userID, trainingID string) (*domain.EbookProgress, error)

	// ListLessonProgressByEnrollmentID retrieves all completed lessons of an
	// enrollment.
	ListLessonProgressByEnrollmentID(ctx context.Context, enrollmentID string) ([]domain.LessonProgress, error)
}

// ProgressWriter defines write operations for lesson and ebook progress rows.
// Lesson progress writes are tx-scoped so the insert, the recount and the
// enrollment flip commit atomically.
type ProgressWriter interface {
	// SaveLessonProgressInTx inserts a lesson completion within tx. A
	// duplicate (enrollment, lesson) pair surfaces as
	// apperrors.ErrAlreadyCompleted.
	SaveLessonProgressInTx(ctx context.Context, tx pgx.Tx, progress domain.LessonProgress) error

	// CountLessonProgressByEnrollmentInTx counts completed lessons of an
	// enrollment within tx.
	CountLessonProgressByEnrollmentInTx(ctx context.Context, tx pgx.Tx, enrollmentID string) (int, error)

	// UpsertEbookProgress creates or updates the single ebook progress row for
	// (user, training).
	UpsertEbookProgress(ctx context.Context, progress domain.EbookProgress) error
}

// ProgressRepositoryFacade combines all progress-related repository interfaces.
type ProgressRepositoryFacade interface {
	ProgressReader
	ProgressWriter
}

// ProgressRepositoryWithTx extends ProgressRepositoryFacade with transaction
// capabilities.
type ProgressRepositoryWithTx interface {
	ProgressRepositoryFacade
	TransactionManager
}
