package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// EnrollmentReader defines read operations for enrollment data.
type EnrollmentReader interface {
	// FindEnrollmentByID retrieves a specific enrollment by ID.
	FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error)

	// FindEnrollmentByUserAndTraining retrieves the enrollment linking a user
	// to a training, if any. Absence means NOT_ENROLLED.
	FindEnrollmentByUserAndTraining(ctx context.Context, userID, trainingID string) (*domain.Enrollment, error)

	// ListEnrollmentsByUserID retrieves all enrollments of a user.
	ListEnrollmentsByUserID(ctx context.Context, userID string) ([]domain.Enrollment, error)
}

// EnrollmentWriter defines write operations for enrollment data.
type EnrollmentWriter interface {
	// SaveEnrollment persists a new enrollment. A duplicate (user, training)
	// pair surfaces as apperrors.ErrAlreadyEnrolled.
	SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error

	// FindEnrollmentForUpdate retrieves an enrollment within tx, locking the
	// row until the transaction ends.
	FindEnrollmentForUpdate(ctx context.Context, tx pgx.Tx, enrollmentID string) (*domain.Enrollment, error)

	// MarkEnrollmentCompletedInTx flips an enrollment to COMPLETED within tx.
	// The transition is monotonic; completed enrollments are never reverted.
	MarkEnrollmentCompletedInTx(ctx context.Context, tx pgx.Tx, enrollmentID string) error
}

// EnrollmentRepositoryFacade combines all enrollment-related repository interfaces.
type EnrollmentRepositoryFacade interface {
	EnrollmentReader
	EnrollmentWriter
}

// EnrollmentRepositoryWithTx extends EnrollmentRepositoryFacade with
// transaction capabilities.
type EnrollmentRepositoryWithTx interface {
	EnrollmentRepositoryFacade
	TransactionManager
}
