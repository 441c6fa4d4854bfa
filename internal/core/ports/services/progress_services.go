package services

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// EbookProgressResult is the outcome of an ebook progress update: the stored
// row plus the derived percentage for the training's page count.
type EbookProgressResult struct {
	Progress   domain.EbookProgress
	Percentage string
}

// ProgressSvcFacade drives the enrollment completion state machine.
type ProgressSvcFacade interface {
	// MarkLessonCompleted records a lesson completion for the user's
	// enrollment and flips the enrollment to COMPLETED when the last lesson of
	// the course completes. Duplicates fail with apperrors.ErrAlreadyCompleted.
	MarkLessonCompleted(ctx context.Context, userID, lessonID string) (*domain.Enrollment, error)

	// UpdateEbookProgress upserts the last page read for (user, training).
	// Pages outside [0, totalPages] fail with apperrors.ErrInvalidPage. Ebook
	// progress never changes enrollment status.
	UpdateEbookProgress(ctx context.Context, userID, trainingID string, page int) (*EbookProgressResult, error)
}
