package dto

import (
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// --- Training DTOs ---

// EbookPayload is the request payload for EBOOK trainings.
type EbookPayload struct {
	TotalPages int    `json:"totalPages" binding:"required,gt=0"`
	FileKey    string `json:"fileKey" binding:"required"`
}

// LiveTrainingPayload is the request payload for LIVE_TRAINING trainings.
type LiveTrainingPayload struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	MeetingURL  string    `json:"meetingURL" binding:"required,url"`
	Capacity    int       `json:"capacity" binding:"required,gt=0"`
}

// CreateTrainingRequest defines data for creating a training. Exactly the
// payload matching EntityType must be present.
type CreateTrainingRequest struct {
	Title          string                    `json:"title" binding:"required"`
	Description    string                    `json:"description"`
	EntityType     domain.TrainingEntityType `json:"entityType" binding:"required,oneof=EBOOK RECORDED_COURSE LIVE_TRAINING"`
	OrganizationID *string                   `json:"organizationID,omitempty"`
	Ebook          *EbookPayload             `json:"ebook,omitempty"`
	LiveTraining   *LiveTrainingPayload      `json:"liveTraining,omitempty"`
}

// CreateLessonRequest defines data for appending a lesson to a recorded course.
type CreateLessonRequest struct {
	Title           string `json:"title" binding:"required"`
	Position        int    `json:"position" binding:"gte=0"`
	DurationSeconds int    `json:"durationSeconds" binding:"gte=0"`
}

// AssignSectorRequest defines data for classifying a training within a sector.
type AssignSectorRequest struct {
	SectorID     string              `json:"sectorID" binding:"required"`
	TrainingType domain.TrainingType `json:"trainingType" binding:"required,oneof=COMPULSORY ELECTIVE"`
	LegalBasis   string              `json:"legalBasis"`
}

// TrainingResponse defines data returned for a training.
type TrainingResponse struct {
	TrainingID     string                        `json:"trainingID"`
	Title          string                        `json:"title"`
	Description    string                        `json:"description"`
	EntityType     domain.TrainingEntityType     `json:"entityType"`
	Status         domain.TrainingStatus         `json:"status"`
	OrganizationID *string                       `json:"organizationID,omitempty"`
	Ebook          *domain.EbookDetails          `json:"ebook,omitempty"`
	RecordedCourse *domain.RecordedCourseDetails `json:"recordedCourse,omitempty"`
	LiveTraining   *domain.LiveTrainingDetails   `json:"liveTraining,omitempty"`
	CreatedAt      time.Time                     `json:"createdAt"`
}

// ToTrainingResponse converts domain.Training to DTO.
func ToTrainingResponse(t *domain.Training) TrainingResponse {
	return TrainingResponse{
		TrainingID:     t.TrainingID,
		Title:          t.Title,
		Description:    t.Description,
		EntityType:     t.EntityType,
		Status:         t.Status,
		OrganizationID: t.OrganizationID,
		Ebook:          t.Ebook,
		RecordedCourse: t.RecordedCourse,
		LiveTraining:   t.LiveTraining,
		CreatedAt:      t.CreatedAt,
	}
}

// ListTrainingsResponse wraps a list of trainings.
type ListTrainingsResponse struct {
	Trainings []TrainingResponse `json:"trainings"`
}

// ToListTrainingsResponse converts a slice of domain.Training to DTO.
func ToListTrainingsResponse(ts []domain.Training) ListTrainingsResponse {
	list := make([]TrainingResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTrainingResponse(&t)
	}
	return ListTrainingsResponse{Trainings: list}
}
