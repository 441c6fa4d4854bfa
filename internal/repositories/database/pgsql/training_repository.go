package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
)

// PgxTrainingRepository persists the training union in a single table with
// nullable variant columns. The entity_type column selects which columns are
// meaningful for a row.
type PgxTrainingRepository struct {
	db *pgxpool.Pool
}

func newPgxTrainingRepository(db *pgxpool.Pool) portsrepo.TrainingRepositoryFacade {
	return &PgxTrainingRepository{db: db}
}

var _ portsrepo.TrainingRepositoryFacade = (*PgxTrainingRepository)(nil)

const trainingColumns = `training_id, title, description, entity_type, status, organization_id,
	ebook_total_pages, ebook_file_key,
	live_scheduled_at, live_meeting_url, live_capacity,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTraining(row pgx.Row) (domain.Training, error) {
	var t domain.Training
	var ebookTotalPages *int
	var ebookFileKey *string
	var liveScheduledAt *time.Time
	var liveMeetingURL *string
	var liveCapacity *int

	err := row.Scan(
		&t.TrainingID,
		&t.Title,
		&t.Description,
		&t.EntityType,
		&t.Status,
		&t.OrganizationID,
		&ebookTotalPages,
		&ebookFileKey,
		&liveScheduledAt,
		&liveMeetingURL,
		&liveCapacity,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return t, err
	}

	switch t.EntityType {
	case domain.EntityEbook:
		if ebookTotalPages != nil && ebookFileKey != nil {
			t.Ebook = &domain.EbookDetails{TotalPages: *ebookTotalPages, FileKey: *ebookFileKey}
		}
	case domain.EntityRecordedCourse:
		t.RecordedCourse = &domain.RecordedCourseDetails{Lessons: []domain.Lesson{}}
	case domain.EntityLiveTraining:
		if liveScheduledAt != nil && liveMeetingURL != nil && liveCapacity != nil {
			t.LiveTraining = &domain.LiveTrainingDetails{
				ScheduledAt: *liveScheduledAt,
				MeetingURL:  *liveMeetingURL,
				Capacity:    *liveCapacity,
			}
		}
	}
	return t, nil
}

func (r *PgxTrainingRepository) SaveTraining(ctx context.Context, training domain.Training) error {
	var ebookTotalPages *int
	var ebookFileKey *string
	var liveScheduledAt *time.Time
	var liveMeetingURL *string
	var liveCapacity *int

	if training.Ebook != nil {
		ebookTotalPages = &training.Ebook.TotalPages
		ebookFileKey = &training.Ebook.FileKey
	}
	if training.LiveTraining != nil {
		liveScheduledAt = &training.LiveTraining.ScheduledAt
		liveMeetingURL = &training.LiveTraining.MeetingURL
		liveCapacity = &training.LiveTraining.Capacity
	}

	query := `
		INSERT INTO trainings (training_id, title, description, entity_type, status, organization_id,
			ebook_total_pages, ebook_file_key,
			live_scheduled_at, live_meeting_url, live_capacity,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db.Exec(ctx, query,
		training.TrainingID,
		training.Title,
		training.Description,
		training.EntityType,
		training.Status,
		training.OrganizationID,
		ebookTotalPages,
		ebookFileKey,
		liveScheduledAt,
		liveMeetingURL,
		liveCapacity,
		training.CreatedAt,
		training.CreatedBy,
		training.LastUpdatedAt,
		training.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("referenced organization does not exist")
		}
		return fmt.Errorf("failed to save training: %w", err)
	}
	return nil
}

func (r *PgxTrainingRepository) FindTrainingByID(ctx context.Context, trainingID string) (*domain.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings WHERE training_id = $1;`
	training, err := scanTraining(r.db.QueryRow(ctx, query, trainingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find training by ID %s: %w", trainingID, err)
	}
	return &training, nil
}

func (r *PgxTrainingRepository) FindTrainingsByIDs(ctx context.Context, trainingIDs []string) (map[string]domain.Training, error) {
	result := make(map[string]domain.Training, len(trainingIDs))
	if len(trainingIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + trainingColumns + ` FROM trainings WHERE training_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, trainingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find trainings by IDs: %w", err)
	}
	trainings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Training, error) {
		return scanTraining(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan trainings: %w", err)
	}
	for _, t := range trainings {
		result[t.TrainingID] = t
	}
	return result, nil
}

func (r *PgxTrainingRepository) ListUniversalPublishedTrainings(ctx context.Context) ([]domain.Training, error) {
	query := `
		SELECT ` + trainingColumns + `
		FROM trainings t
		WHERE t.status = $1
		  AND t.organization_id IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM training_sector_assignments a WHERE a.training_id = t.training_id
		  )
		ORDER BY t.created_at;
	`
	rows, err := r.db.Query(ctx, query, domain.TrainingPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to list universal trainings: %w", err)
	}
	trainings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Training, error) {
		return scanTraining(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan universal trainings: %w", err)
	}
	return trainings, nil
}

func (r *PgxTrainingRepository) UpdateTrainingStatus(ctx context.Context, trainingID string, status domain.TrainingStatus, updatedBy string) error {
	query := `
		UPDATE trainings
		SET status = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE training_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, trainingID, status, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update training status %s: %w", trainingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const lessonColumns = `lesson_id, training_id, title, position, duration_seconds`

func scanLesson(row pgx.Row) (domain.Lesson, error) {
	var l domain.Lesson
	err := row.Scan(&l.LessonID, &l.TrainingID, &l.Title, &l.Position, &l.DurationSeconds)
	return l, err
}

func (r *PgxTrainingRepository) SaveLesson(ctx context.Context, lesson domain.Lesson) error {
	query := `
		INSERT INTO lessons (lesson_id, training_id, title, position, duration_seconds)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.db.Exec(ctx, query,
		lesson.LessonID,
		lesson.TrainingID,
		lesson.Title,
		lesson.Position,
		lesson.DurationSeconds,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("referenced training does not exist")
		}
		return fmt.Errorf("failed to save lesson: %w", err)
	}
	return nil
}

func (r *PgxTrainingRepository) FindLessonByID(ctx context.Context, lessonID string) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE lesson_id = $1;`
	lesson, err := scanLesson(r.db.QueryRow(ctx, query, lessonID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lesson by ID %s: %w", lessonID, err)
	}
	return &lesson, nil
}

func (r *PgxTrainingRepository) ListLessonsByTrainingID(ctx context.Context, trainingID string) ([]domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE training_id = $1 ORDER BY position;`
	rows, err := r.db.Query(ctx, query, trainingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons for training %s: %w", trainingID, err)
	}
	lessons, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Lesson, error) {
		return scanLesson(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lessons: %w", err)
	}
	return lessons, nil
}

func (r *PgxTrainingRepository) CountLessonsByTrainingID(ctx context.Context, trainingID string) (int, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE training_id = $1;`
	var count int
	if err := r.db.QueryRow(ctx, query, trainingID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lessons for training %s: %w", trainingID, err)
	}
	return count, nil
}
