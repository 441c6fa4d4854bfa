package services

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// EnrollmentSvcFacade handles enrollment creation and listing.
type EnrollmentSvcFacade interface {
	// Enroll creates an enrollment for the user in a published training after
	// resolving access. Duplicate attempts fail with
	// apperrors.ErrAlreadyEnrolled.
	Enroll(ctx context.Context, userID, trainingID string, sponsoredBy *string) (*domain.Enrollment, error)

	// ListUserEnrollments retrieves all enrollments of a user.
	ListUserEnrollments(ctx context.Context, userID string) ([]domain.Enrollment, error)
}
