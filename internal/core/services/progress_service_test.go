package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/core/services"
)

// --- Mock ProgressRepository ---

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) FindEbookProgress(ctx context.Context, userID, trainingID string) (*domain.EbookProgress, error) {
	args := m.Called(ctx, userID, trainingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EbookProgress), args.Error(1)
}

func (m *MockProgressRepository) ListLessonProgressByEnrollmentID(ctx context.Context, enrollmentID string) ([]domain.LessonProgress, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LessonProgress), args.Error(1)
}

func (m *MockProgressRepository) SaveLessonProgressInTx(ctx context.Context, tx pgx.Tx, progress domain.LessonProgress) error {
	args := m.Called(ctx, tx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) CountLessonProgressByEnrollmentInTx(ctx context.Context, tx pgx.Tx, enrollmentID string) (int, error) {
	args := m.Called(ctx, tx, enrollmentID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) UpsertEbookProgress(ctx context.Context, progress domain.EbookProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockProgressRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockProgressRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---

type ProgressServiceTestSuite struct {
	suite.Suite
	mockProgressRepo   *MockProgressRepository
	mockEnrollmentRepo *MockEnrollmentRepository
	mockTrainingRepo   *MockTrainingRepository
	service            portssvc.ProgressSvcFacade
}

func (suite *ProgressServiceTestSuite) SetupTest() {
	suite.mockProgressRepo = new(MockProgressRepository)
	suite.mockEnrollmentRepo = new(MockEnrollmentRepository)
	suite.mockTrainingRepo = new(MockTrainingRepository)
	suite.service = services.NewProgressService(
		suite.mockProgressRepo,
		suite.mockEnrollmentRepo,
		suite.mockTrainingRepo,
	)
}

// --- MarkLessonCompleted Tests ---

func (suite *ProgressServiceTestSuite) TestMarkLessonCompleted_PartialProgressNoFlip() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	lesson := &domain.Lesson{LessonID: uuid.NewString(), TrainingID: trainingID}
	enrollment := &domain.Enrollment{EnrollmentID: uuid.NewString(), UserID: userID, TrainingID: trainingID, Status: domain.EnrollmentActive}

	suite.mockTrainingRepo.On("FindLessonByID", ctx, lesson.LessonID).Return(lesson, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByUserAndTraining", ctx, userID, trainingID).Return(enrollment, nil).Once()
	suite.mockProgressRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProgressRepo.On("SaveLessonProgressInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.LessonProgress) bool {
		return p.EnrollmentID == enrollment.EnrollmentID && p.LessonID == lesson.LessonID
	})).Return(nil).Once()
	suite.mockProgressRepo.On("CountLessonProgressByEnrollmentInTx", ctx, mock.Anything, enrollment.EnrollmentID).Return(1, nil).Once()
	suite.mockTrainingRepo.On("CountLessonsByTrainingID", ctx, trainingID).Return(3, nil).Once()
	suite.mockProgressRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockProgressRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	result, err := suite.service.MarkLessonCompleted(ctx, userID, lesson.LessonID)

	suite.Require().NoError(err)
	suite.Equal(domain.EnrollmentActive, result.Status)
	suite.Nil(result.CompletedAt)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "MarkEnrollmentCompletedInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockProgressRepo.AssertExpectations(suite.T())
}

func (suite *ProgressServiceTestSuite) TestMarkLessonCompleted_FinalLessonFlipsEnrollment() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	lesson := &domain.Lesson{LessonID: uuid.NewString(), TrainingID: trainingID}
	enrollment := &domain.Enrollment{EnrollmentID: uuid.NewString(), UserID: userID, TrainingID: trainingID, Status: domain.EnrollmentActive}

	suite.mockTrainingRepo.On("FindLessonByID", ctx, lesson.LessonID).Return(lesson, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByUserAndTraining", ctx, userID, trainingID).Return(enrollment, nil).Once()
	suite.mockProgressRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProgressRepo.On("SaveLessonProgressInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LessonProgress")).Return(nil).Once()
	suite.mockProgressRepo.On("CountLessonProgressByEnrollmentInTx", ctx, mock.Anything, enrollment.EnrollmentID).Return(3, nil).Once()
	suite.mockTrainingRepo.On("CountLessonsByTrainingID", ctx, trainingID).Return(3, nil).Once()
	suite.mockEnrollmentRepo.On("MarkEnrollmentCompletedInTx", ctx, mock.Anything, enrollment.EnrollmentID).Return(nil).Once()
	suite.mockProgressRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockProgressRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	result, err := suite.service.MarkLessonCompleted(ctx, userID, lesson.LessonID)

	suite.Require().NoError(err)
	suite.Equal(domain.EnrollmentCompleted, result.Status)
	suite.Require().NotNil(result.CompletedAt)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *ProgressServiceTestSuite) TestMarkLessonCompleted_CompletedEnrollmentRejected() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	lesson := &domain.Lesson{LessonID: uuid.NewString(), TrainingID: trainingID}
	done := time.Now().UTC()
	enrollment := &domain.Enrollment{EnrollmentID: uuid.NewString(), UserID: userID, TrainingID: trainingID, Status: domain.EnrollmentCompleted, CompletedAt: &done}

	suite.mockTrainingRepo.On("FindLessonByID", ctx, lesson.LessonID).Return(lesson, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByUserAndTraining", ctx, userID, trainingID).Return(enrollment, nil).Once()

	result, err := suite.service.MarkLessonCompleted(ctx, userID, lesson.LessonID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrAlreadyCompleted)
	suite.mockProgressRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *ProgressServiceTestSuite) TestMarkLessonCompleted_DuplicateLessonRejected() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	lesson := &domain.Lesson{LessonID: uuid.NewString(), TrainingID: trainingID}
	enrollment := &domain.Enrollment{EnrollmentID: uuid.NewString(), UserID: userID, TrainingID: trainingID, Status: domain.EnrollmentActive}

	suite.mockTrainingRepo.On("FindLessonByID", ctx, lesson.LessonID).Return(lesson, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByUserAndTraining", ctx, userID, trainingID).Return(enrollment, nil).Once()
	suite.mockProgressRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProgressRepo.On("SaveLessonProgressInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LessonProgress")).Return(apperrors.ErrAlreadyCompleted).Once()
	suite.mockProgressRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	result, err := suite.service.MarkLessonCompleted(ctx, userID, lesson.LessonID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrAlreadyCompleted)
	suite.mockProgressRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *ProgressServiceTestSuite) TestMarkLessonCompleted_NotEnrolled() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	lesson := &domain.Lesson{LessonID: uuid.NewString(), TrainingID: trainingID}

	suite.mockTrainingRepo.On("FindLessonByID", ctx, lesson.LessonID).Return(lesson, nil).Once()
	suite.mockEnrollmentRepo.On("FindEnrollmentByUserAndTraining", ctx, userID, trainingID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.MarkLessonCompleted(ctx, userID, lesson.LessonID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateEbookProgress Tests ---

func ebookTraining(trainingID string, totalPages int) *domain.Training {
	return &domain.Training{
		TrainingID: trainingID,
		EntityType: domain.EntityEbook,
		Status:     domain.TrainingPublished,
		Ebook:      &domain.EbookDetails{TotalPages: totalPages, FileKey: "ebooks/" + trainingID},
	}
}

func (suite *ProgressServiceTestSuite) TestUpdateEbookProgress_UpsertsAndComputesPercentage() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(ebookTraining(trainingID, 200), nil).Once()
	suite.mockProgressRepo.On("UpsertEbookProgress", ctx, mock.MatchedBy(func(p domain.EbookProgress) bool {
		return p.UserID == userID && p.TrainingID == trainingID && p.LastPageRead == 50
	})).Return(nil).Once()

	result, err := suite.service.UpdateEbookProgress(ctx, userID, trainingID, 50)

	suite.Require().NoError(err)
	suite.Equal("25", result.Percentage)
	suite.mockProgressRepo.AssertExpectations(suite.T())
}

func (suite *ProgressServiceTestSuite) TestUpdateEbookProgress_LastPageNeverTouchesEnrollment() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(ebookTraining(trainingID, 120), nil).Once()
	suite.mockProgressRepo.On("UpsertEbookProgress", ctx, mock.AnythingOfType("domain.EbookProgress")).Return(nil).Once()

	result, err := suite.service.UpdateEbookProgress(ctx, userID, trainingID, 120)

	suite.Require().NoError(err)
	suite.Equal("100", result.Percentage)
	// Finishing an ebook yields 100%, nothing more.
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "MarkEnrollmentCompletedInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "FindEnrollmentByUserAndTraining", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProgressServiceTestSuite) TestUpdateEbookProgress_PageOutOfRange() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(ebookTraining(trainingID, 100), nil).Twice()

	_, err := suite.service.UpdateEbookProgress(ctx, userID, trainingID, 101)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidPage)

	_, err = suite.service.UpdateEbookProgress(ctx, userID, trainingID, -1)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidPage)

	suite.mockProgressRepo.AssertNotCalled(suite.T(), "UpsertEbookProgress", mock.Anything, mock.Anything)
}

func (suite *ProgressServiceTestSuite) TestUpdateEbookProgress_NotAnEbook() {
	ctx := context.Background()
	userID := uuid.NewString()
	trainingID := uuid.NewString()
	course := &domain.Training{TrainingID: trainingID, EntityType: domain.EntityRecordedCourse, RecordedCourse: &domain.RecordedCourseDetails{}}

	suite.mockTrainingRepo.On("FindTrainingByID", ctx, trainingID).Return(course, nil).Once()

	_, err := suite.service.UpdateEbookProgress(ctx, userID, trainingID, 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Suite ---

func TestProgressService(t *testing.T) {
	suite.Run(t, new(ProgressServiceTestSuite))
}
