package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
)

// enrollmentService creates and lists enrollments. Enrollment is the
// authoritative access grant, so creating one is gated on the user already
// being entitled to the training through subscription coverage or through
// their sector catalog.
type enrollmentService struct {
	BaseService
	enrollmentRepo   portsrepo.EnrollmentRepositoryFacade
	trainingRepo     portsrepo.TrainingReader
	organizationRepo portsrepo.OrganizationReader
	catalogRepo      portsrepo.CatalogGraphFacade
	entitlementSvc   portssvc.AccessResolverSvc
}

// NewEnrollmentService creates a new instance of enrollmentService.
func NewEnrollmentService(
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade,
	trainingRepo portsrepo.TrainingReader,
	organizationRepo portsrepo.OrganizationReader,
	catalogRepo portsrepo.CatalogGraphFacade,
	entitlementSvc portssvc.AccessResolverSvc,
) portssvc.EnrollmentSvcFacade {
	return &enrollmentService{
		enrollmentRepo:   enrollmentRepo,
		trainingRepo:     trainingRepo,
		organizationRepo: organizationRepo,
		catalogRepo:      catalogRepo,
		entitlementSvc:   entitlementSvc,
	}
}

var _ portssvc.EnrollmentSvcFacade = (*enrollmentService)(nil)

func (s *enrollmentService) Enroll(ctx context.Context, userID, trainingID string, sponsoredBy *string) (*domain.Enrollment, error) {
	training, err := s.trainingRepo.FindTrainingByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if training.Status != domain.TrainingPublished {
		return nil, apperrors.NewValidationFailedError("training is not published")
	}

	if sponsoredBy != nil {
		if _, err := s.organizationRepo.FindOrganizationByID(ctx, *sponsoredBy); err != nil {
			return nil, err
		}
	}

	entitled, err := s.isEntitled(ctx, userID, trainingID)
	if err != nil {
		return nil, err
	}
	if !entitled {
		return nil, apperrors.ErrAccessDenied
	}

	enrollment := domain.Enrollment{
		EnrollmentID: uuid.NewString(),
		UserID:       userID,
		TrainingID:   trainingID,
		Status:       domain.EnrollmentActive,
		SponsoredBy:  sponsoredBy,
		EnrolledAt:   time.Now().UTC(),
	}
	if err := s.enrollmentRepo.SaveEnrollment(ctx, enrollment); err != nil {
		s.LogError(ctx, err, "Failed to save enrollment",
			slog.String("userID", userID), slog.String("trainingID", trainingID))
		return nil, err
	}

	s.LogInfo(ctx, "User enrolled in training",
		slog.String("userID", userID), slog.String("trainingID", trainingID))
	return &enrollment, nil
}

// isEntitled checks whether the user may enroll: a positive access decision
// (admin or subscription coverage) or the training being reachable through
// one of the user's sectors.
func (s *enrollmentService) isEntitled(ctx context.Context, userID, trainingID string) (bool, error) {
	decision, err := s.entitlementSvc.ResolveAccess(ctx, userID, trainingID)
	if err != nil {
		return false, err
	}
	if decision.Granted {
		return true, nil
	}

	sectorIDs, err := s.catalogRepo.ListSectorIDsByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(sectorIDs) == 0 {
		return false, nil
	}
	inSectors := make(map[string]struct{}, len(sectorIDs))
	for _, id := range sectorIDs {
		inSectors[id] = struct{}{}
	}

	assignments, err := s.catalogRepo.ListAssignmentsByTrainingID(ctx, trainingID)
	if err != nil {
		return false, err
	}
	for _, a := range assignments {
		if _, ok := inSectors[a.SectorID]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *enrollmentService) ListUserEnrollments(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	return s.enrollmentRepo.ListEnrollmentsByUserID(ctx, userID)
}
