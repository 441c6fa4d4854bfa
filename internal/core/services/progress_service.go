package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
)

// progressService drives the enrollment completion state machine. The lesson
// completion insert, the recount and the enrollment flip run in one
// transaction so a concurrent mark of the final two lessons cannot leave the
// enrollment half-completed.
type progressService struct {
	BaseService
	progressRepo   portsrepo.ProgressRepositoryWithTx
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
	trainingRepo   portsrepo.TrainingReader
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(
	progressRepo portsrepo.ProgressRepositoryWithTx,
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade,
	trainingRepo portsrepo.TrainingReader,
) portssvc.ProgressSvcFacade {
	return &progressService{
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
		trainingRepo:   trainingRepo,
	}
}

var _ portssvc.ProgressSvcFacade = (*progressService)(nil)

func (s *progressService) MarkLessonCompleted(ctx context.Context, userID, lessonID string) (*domain.Enrollment, error) {
	lesson, err := s.trainingRepo.FindLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.FindEnrollmentByUserAndTraining(ctx, userID, lesson.TrainingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user is not enrolled in this training")
		}
		return nil, err
	}
	if enrollment.Status == domain.EnrollmentCompleted {
		return nil, apperrors.ErrAlreadyCompleted
	}

	tx, err := s.progressRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for lesson completion")
		return nil, err
	}
	defer s.progressRepo.Rollback(ctx, tx)

	now := time.Now().UTC()
	progress := domain.LessonProgress{
		EnrollmentID: enrollment.EnrollmentID,
		LessonID:     lessonID,
		CompletedAt:  now,
	}
	if err := s.progressRepo.SaveLessonProgressInTx(ctx, tx, progress); err != nil {
		// A duplicate (enrollment, lesson) insert comes back as AlreadyCompleted.
		return nil, err
	}

	completedCount, err := s.progressRepo.CountLessonProgressByEnrollmentInTx(ctx, tx, enrollment.EnrollmentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count completed lessons", slog.String("enrollmentID", enrollment.EnrollmentID))
		return nil, err
	}
	totalLessons, err := s.trainingRepo.CountLessonsByTrainingID(ctx, lesson.TrainingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count course lessons", slog.String("trainingID", lesson.TrainingID))
		return nil, err
	}

	if totalLessons > 0 && completedCount >= totalLessons {
		if err := s.enrollmentRepo.MarkEnrollmentCompletedInTx(ctx, tx, enrollment.EnrollmentID); err != nil {
			s.LogError(ctx, err, "Failed to complete enrollment", slog.String("enrollmentID", enrollment.EnrollmentID))
			return nil, err
		}
		enrollment.Status = domain.EnrollmentCompleted
		enrollment.CompletedAt = &now
	}

	if err := s.progressRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit lesson completion")
		return nil, err
	}

	s.LogInfo(ctx, "Lesson marked completed",
		slog.String("lessonID", lessonID),
		slog.String("enrollmentID", enrollment.EnrollmentID),
		slog.String("status", string(enrollment.Status)))
	return enrollment, nil
}

func (s *progressService) UpdateEbookProgress(ctx context.Context, userID, trainingID string, page int) (*portssvc.EbookProgressResult, error) {
	training, err := s.trainingRepo.FindTrainingByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if training.EntityType != domain.EntityEbook || training.Ebook == nil {
		return nil, apperrors.NewValidationFailedError("training is not an ebook")
	}

	totalPages := training.Ebook.TotalPages
	if page < 0 || page > totalPages {
		return nil, apperrors.ErrInvalidPage
	}

	progress := domain.EbookProgress{
		UserID:       userID,
		TrainingID:   trainingID,
		LastPageRead: page,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.progressRepo.UpsertEbookProgress(ctx, progress); err != nil {
		s.LogError(ctx, err, "Failed to upsert ebook progress",
			slog.String("userID", userID), slog.String("trainingID", trainingID))
		return nil, err
	}

	// Reading the last page yields 100%, nothing more. Ebook completion is a
	// derived number and never touches the enrollment row.
	return &portssvc.EbookProgressResult{
		Progress:   progress,
		Percentage: progress.Percentage(totalPages).String(),
	}, nil
}
