package repositories

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// TrainingReader defines read operations for training data.
type TrainingReader interface {
	// FindTrainingByID retrieves a specific training with its variant payload.
	FindTrainingByID(ctx context.Context, trainingID string) (*domain.Training, error)

	// FindTrainingsByIDs retrieves trainings for the given ids, keyed by id.
	// Missing ids are simply absent from the result map.
	FindTrainingsByIDs(ctx context.Context, trainingIDs []string) (map[string]domain.Training, error)

	// ListUniversalPublishedTrainings retrieves published trainings with zero
	// sector assignments. These are visible to every organization by default.
	ListUniversalPublishedTrainings(ctx context.Context) ([]domain.Training, error)

	// FindLessonByID retrieves a lesson by ID.
	FindLessonByID(ctx context.Context, lessonID string) (*domain.Lesson, error)

	// ListLessonsByTrainingID retrieves the lessons of a recorded course in
	// position order.
	ListLessonsByTrainingID(ctx context.Context, trainingID string) ([]domain.Lesson, error)

	// CountLessonsByTrainingID counts the lessons of a recorded course.
	CountLessonsByTrainingID(ctx context.Context, trainingID string) (int, error)
}

// TrainingWriter defines write operations for training data.
type TrainingWriter interface {
	// SaveTraining persists a new training with its variant payload.
	SaveTraining(ctx context.Context, training domain.Training) error

	// UpdateTrainingStatus transitions a training's publication status.
	UpdateTrainingStatus(ctx context.Context, trainingID string, status domain.TrainingStatus, updatedBy string) error

	// SaveLesson persists a new lesson of a recorded course.
	SaveLesson(ctx context.Context, lesson domain.Lesson) error
}

// TrainingRepositoryFacade combines all training-related repository interfaces.
type TrainingRepositoryFacade interface {
	TrainingReader
	TrainingWriter
}
