package services

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
	"github.com/viaensino/via_ensino_app/internal/dto"
)

// TrainingReaderSvc defines read operations for trainings.
type TrainingReaderSvc interface {
	// FindTrainingByID retrieves a specific training with its variant payload.
	FindTrainingByID(ctx context.Context, trainingID string) (*domain.Training, error)

	// ListLessons retrieves the lessons of a recorded course in order.
	ListLessons(ctx context.Context, trainingID string) ([]domain.Lesson, error)
}

// TrainingWriterSvc defines write operations for trainings.
type TrainingWriterSvc interface {
	// CreateTraining creates a training from the request, validating that the
	// variant payload matches the declared entity type.
	CreateTraining(ctx context.Context, req dto.CreateTrainingRequest, creatorUserID string) (*domain.Training, error)

	// PublishTraining transitions a training from DRAFT to PUBLISHED.
	PublishTraining(ctx context.Context, trainingID, actorID string) error

	// AddLesson appends a lesson to a recorded course.
	AddLesson(ctx context.Context, trainingID string, req dto.CreateLessonRequest, actorID string) (*domain.Lesson, error)

	// AssignSector classifies a training within a sector as compulsory or
	// elective, with its legal basis.
	AssignSector(ctx context.Context, trainingID, sectorID string, trainingType domain.TrainingType, legalBasis, actorID string) error

	// UnassignSector removes a training's sector classification.
	UnassignSector(ctx context.Context, trainingID, sectorID, actorID string) error
}

// TrainingSvcFacade combines all training-related service interfaces.
type TrainingSvcFacade interface {
	TrainingReaderSvc
	TrainingWriterSvc
}
