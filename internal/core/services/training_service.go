package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
)

// trainingService manages the training union and its sector classifications.
// Content authoring is a system-admin operation; org-exclusive trainings may
// also be authored by an admin of the owning organization.
type trainingService struct {
	BaseService
	trainingRepo   portsrepo.TrainingRepositoryFacade
	catalogRepo    portsrepo.CatalogGraphFacade
	userRepo       portsrepo.UserReader
	membershipRepo portsrepo.MembershipReader
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(
	trainingRepo portsrepo.TrainingRepositoryFacade,
	catalogRepo portsrepo.CatalogGraphFacade,
	userRepo portsrepo.UserReader,
	membershipRepo portsrepo.MembershipReader,
) portssvc.TrainingSvcFacade {
	return &trainingService{
		trainingRepo:   trainingRepo,
		catalogRepo:    catalogRepo,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
	}
}

var _ portssvc.TrainingSvcFacade = (*trainingService)(nil)

// requireAuthor checks the actor may author content: system admins always,
// org admins only for their own organization's exclusive content.
func (s *trainingService) requireAuthor(ctx context.Context, actorID string, organizationID *string) error {
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.GlobalRole == domain.RoleSystemAdmin {
		return nil
	}
	if organizationID == nil {
		return apperrors.NewForbiddenError("global content authoring is restricted to system admins")
	}
	membership, err := s.membershipRepo.FindMembershipByUserAndOrg(ctx, actorID, *organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewForbiddenError("user does not have admin rights in this organization")
		}
		return err
	}
	if !membership.IsAdmin() {
		return apperrors.NewForbiddenError("user does not have admin rights in this organization")
	}
	return nil
}

func (s *trainingService) CreateTraining(ctx context.Context, req dto.CreateTrainingRequest, creatorUserID string) (*domain.Training, error) {
	if err := s.requireAuthor(ctx, creatorUserID, req.OrganizationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	training := domain.Training{
		TrainingID:     uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		EntityType:     req.EntityType,
		Status:         domain.TrainingDraft,
		OrganizationID: req.OrganizationID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Exactly the payload matching the declared entity type must be present.
	switch req.EntityType {
	case domain.EntityEbook:
		if req.Ebook == nil || req.LiveTraining != nil {
			return nil, apperrors.NewValidationFailedError("EBOOK trainings require exactly the ebook payload")
		}
		training.Ebook = &domain.EbookDetails{
			TotalPages: req.Ebook.TotalPages,
			FileKey:    req.Ebook.FileKey,
		}
	case domain.EntityRecordedCourse:
		if req.Ebook != nil || req.LiveTraining != nil {
			return nil, apperrors.NewValidationFailedError("RECORDED_COURSE trainings carry no variant payload at creation")
		}
		training.RecordedCourse = &domain.RecordedCourseDetails{Lessons: []domain.Lesson{}}
	case domain.EntityLiveTraining:
		if req.LiveTraining == nil || req.Ebook != nil {
			return nil, apperrors.NewValidationFailedError("LIVE_TRAINING trainings require exactly the live training payload")
		}
		training.LiveTraining = &domain.LiveTrainingDetails{
			ScheduledAt: req.LiveTraining.ScheduledAt,
			MeetingURL:  req.LiveTraining.MeetingURL,
			Capacity:    req.LiveTraining.Capacity,
		}
	default:
		return nil, apperrors.NewValidationFailedError("unknown training entity type")
	}

	if err := s.trainingRepo.SaveTraining(ctx, training); err != nil {
		s.LogError(ctx, err, "Failed to save training", slog.String("title", req.Title))
		return nil, err
	}

	s.LogInfo(ctx, "Training created",
		slog.String("trainingID", training.TrainingID),
		slog.String("entityType", string(training.EntityType)))
	return &training, nil
}

func (s *trainingService) PublishTraining(ctx context.Context, trainingID, actorID string) error {
	training, err := s.trainingRepo.FindTrainingByID(ctx, trainingID)
	if err != nil {
		return err
	}
	if err := s.requireAuthor(ctx, actorID, training.OrganizationID); err != nil {
		return err
	}
	if training.Status == domain.TrainingPublished {
		return apperrors.NewConflictError("training is already published")
	}

	if err := s.trainingRepo.UpdateTrainingStatus(ctx, trainingID, domain.TrainingPublished, actorID); err != nil {
		s.LogError(ctx, err, "Failed to publish training", slog.String("trainingID", trainingID))
		return err
	}
	s.LogInfo(ctx, "Training published", slog.String("trainingID", trainingID))
	return nil
}

func (s *trainingService) AddLesson(ctx context.Context, trainingID string, req dto.CreateLessonRequest, actorID string) (*domain.Lesson, error) {
	training, err := s.trainingRepo.FindTrainingByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAuthor(ctx, actorID, training.OrganizationID); err != nil {
		return nil, err
	}
	if training.EntityType != domain.EntityRecordedCourse {
		return nil, apperrors.NewValidationFailedError("lessons can only be added to recorded courses")
	}

	lesson := domain.Lesson{
		LessonID:        uuid.NewString(),
		TrainingID:      trainingID,
		Title:           req.Title,
		Position:        req.Position,
		DurationSeconds: req.DurationSeconds,
	}
	if err := s.trainingRepo.SaveLesson(ctx, lesson); err != nil {
		s.LogError(ctx, err, "Failed to save lesson", slog.String("trainingID", trainingID))
		return nil, err
	}
	return &lesson, nil
}

func (s *trainingService) AssignSector(ctx context.Context, trainingID, sectorID string, trainingType domain.TrainingType, legalBasis, actorID string) error {
	training, err := s.trainingRepo.FindTrainingByID(ctx, trainingID)
	if err != nil {
		return err
	}
	if err := s.requireAuthor(ctx, actorID, training.OrganizationID); err != nil {
		return err
	}
	if _, err := s.catalogRepo.FindSectorByID(ctx, sectorID); err != nil {
		return err
	}

	assignment := domain.TrainingSectorAssignment{
		TrainingID:   trainingID,
		SectorID:     sectorID,
		TrainingType: trainingType,
		LegalBasis:   legalBasis,
	}
	if err := s.catalogRepo.SaveTrainingSectorAssignment(ctx, assignment); err != nil {
		s.LogError(ctx, err, "Failed to assign training to sector",
			slog.String("trainingID", trainingID), slog.String("sectorID", sectorID))
		return err
	}
	return nil
}

func (s *trainingService) UnassignSector(ctx context.Context, trainingID, sectorID, actorID string) error {
	training, err := s.trainingRepo.FindTrainingByID(ctx, trainingID)
	if err != nil {
		return err
	}
	if err := s.requireAuthor(ctx, actorID, training.OrganizationID); err != nil {
		return err
	}
	return s.catalogRepo.DeleteTrainingSectorAssignment(ctx, trainingID, sectorID)
}

func (s *trainingService) FindTrainingByID(ctx context.Context, trainingID string) (*domain.Training, error) {
	return s.trainingRepo.FindTrainingByID(ctx, trainingID)
}

func (s *trainingService) ListLessons(ctx context.Context, trainingID string) ([]domain.Lesson, error) {
	if _, err := s.trainingRepo.FindTrainingByID(ctx, trainingID); err != nil {
		return nil, err
	}
	return s.trainingRepo.ListLessonsByTrainingID(ctx, trainingID)
}
