package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/core/services"
)

// --- Mock AccessResolver ---

type MockAccessResolver struct {
	mock.Mock
}

func (m *MockAccessResolver) ResolveAccess(ctx context.Context, userID, trainingID string) (domain.AccessDecision, error) {
	args := m.Called(ctx, userID, trainingID)
	return args.Get(0).(domain.AccessDecision), args.Error(1)
}

// --- Test Suite ---

type EnrollmentServiceTestSuite struct {
	suite.Suite
	mockEnrollmentRepo   *MockEnrollmentRepository
	mockTrainingRepo     *MockTrainingRepository
	mockOrganizationRepo *MockOrganizationRepository
	mockCatalogRepo      *MockCatalogRepository
	mockResolver         *MockAccessResolver
	service              portssvc.EnrollmentSvcFacade
}

func (suite *EnrollmentServiceTestSuite) SetupTest() {
	suite.mockEnrollmentRepo = new(MockEnrollmentRepository)
	suite.mockTrainingRepo = new(MockTrainingRepository)
	suite.mockOrganizationRepo = new(MockOrganizationRepository)
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.mockResolver = new(MockAccessResolver)
	suite.service = services.NewEnrollmentService(
		suite.mockEnrollmentRepo,
		suite.mockTrainingRepo,
		suite.mockOrganizationRepo,
		suite.mockCatalogRepo,
		suite.mockResolver,
	)
}

func publishedTraining(trainingID string) *domain.Training {
	return &domain.Training{TrainingID: trainingID, Status: domain.TrainingPublished, EntityType: domain.EntityRecordedCourse}
}

// --- Enroll Tests ---

func (suite *EnrollmentServiceTestSuite) TestEnroll_GrantedByResolver() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(publishedTraining(trainingID), nil).Once()
	suite.mockResolver.On("ResolveAccess", ctx, userID, trainingID).Return(domain.GrantedDecision(), nil).Once()
	suite.mockEnrollmentRepo.On("SaveEnrollment", ctx, mock.MatchedBy(func(e domain.Enrollment) bool {
		return e.UserID == userID && e.TrainingID == trainingID && e.Status == domain.EnrollmentActive && e.SponsoredBy == nil
	})).Return(nil).Once()

	enrollment, err := suite.service.Enroll(ctx, userID, trainingID, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(enrollment)
	suite.Equal(domain.EnrollmentActive, enrollment.Status)
	// Resolver granted; the sector fallback is never consulted.
	suite.mockCatalogRepo.AssertNotCalled(suite.T(), "ListSectorIDsByUserID", mock.Anything, mock.Anything)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *EnrollmentServiceTestSuite) TestEnroll_GrantedThroughSectorReachability() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	sectorID := uuid.NewString()

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(publishedTraining(trainingID), nil).Once()
	suite.mockResolver.On("ResolveAccess", ctx, userID, trainingID).Return(domain.DeniedDecision("no coverage"), nil).Once()
	suite.mockCatalogRepo.On("ListSectorIDsByUserID", ctx, userID).Return([]string{sectorID}, nil).Once()
	suite.mockCatalogRepo.On("ListAssignmentsByTrainingID", ctx, trainingID).Return([]domain.TrainingSectorAssignment{
		{TrainingID: trainingID, SectorID: sectorID, TrainingType: domain.TypeCompulsory},
	}, nil).Once()
	suite.mockEnrollmentRepo.On("SaveEnrollment", ctx, mock.AnythingOfType("domain.Enrollment")).Return(nil).Once()

	enrollment, err := suite.service.Enroll(ctx, userID, trainingID, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(enrollment)
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *EnrollmentServiceTestSuite) TestEnroll_DeniedWithoutEntitlement() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(publishedTraining(trainingID), nil).Once()
	suite.mockResolver.On("ResolveAccess", ctx, userID, trainingID).Return(domain.DeniedDecision("no coverage"), nil).Once()
	suite.mockCatalogRepo.On("ListSectorIDsByUserID", ctx, userID).Return([]string{}, nil).Once()

	enrollment, err := suite.service.Enroll(ctx, userID, trainingID, nil)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrAccessDenied)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "SaveEnrollment", mock.Anything, mock.Anything)
}

func (suite *EnrollmentServiceTestSuite) TestEnroll_UnpublishedTrainingRejected() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	draft := &domain.Training{TrainingID: trainingID, Status: domain.TrainingDraft}

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(draft, nil).Once()

	enrollment, err := suite.service.Enroll(ctx, userID, trainingID, nil)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockResolver.AssertNotCalled(suite.T(), "ResolveAccess", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EnrollmentServiceTestSuite) TestEnroll_SponsorMustExist() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	sponsorID := uuid.NewString()

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(publishedTraining(trainingID), nil).Once()
	suite.mockOrganizationRepo.On("FindOrganizationByID", ctx, sponsorID).Return(nil, apperrors.ErrNotFound).Once()

	enrollment, err := suite.service.Enroll(ctx, userID, trainingID, &sponsorID)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EnrollmentServiceTestSuite) TestEnroll_DuplicateSurfacesConflict() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(publishedTraining(trainingID), nil).Once()
	suite.mockResolver.On("ResolveAccess", ctx, userID, trainingID).Return(domain.GrantedDecision(), nil).Once()
	suite.mockEnrollmentRepo.On("SaveEnrollment", ctx, mock.AnythingOfType("domain.Enrollment")).Return(apperrors.ErrAlreadyEnrolled).Once()

	enrollment, err := suite.service.Enroll(ctx, userID, trainingID, nil)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrAlreadyEnrolled)
}

// --- ListUserEnrollments Tests ---

func (suite *EnrollmentServiceTestSuite) TestListUserEnrollments() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := []domain.Enrollment{
		{EnrollmentID: uuid.NewString(), UserID: userID, Status: domain.EnrollmentActive},
		{EnrollmentID: uuid.NewString(), UserID: userID, Status: domain.EnrollmentCompleted},
	}

	suite.mockEnrollmentRepo.On("ListEnrollmentsByUserID", ctx, userID).Return(expected, nil).Once()

	enrollments, err := suite.service.ListUserEnrollments(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, enrollments)
}

// --- Run Suite ---

func TestEnrollmentService(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceTestSuite))
}
