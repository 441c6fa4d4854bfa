package dto

import (
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// UpdateEbookProgressRequest defines data for recording the last page read.
// The zero page is valid (nothing read yet), so the field is not required.
type UpdateEbookProgressRequest struct {
	Page int `json:"page" binding:"gte=0"`
}

// EbookProgressResponse defines data returned for ebook progress.
type EbookProgressResponse struct {
	UserID       string    `json:"userID"`
	TrainingID   string    `json:"trainingID"`
	LastPageRead int       `json:"lastPageRead"`
	Percentage   string    `json:"percentage"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToEbookProgressResponse converts an ebook progress row plus its derived
// percentage to DTO.
func ToEbookProgressResponse(p *domain.EbookProgress, percentage string) EbookProgressResponse {
	return EbookProgressResponse{
		UserID:       p.UserID,
		TrainingID:   p.TrainingID,
		LastPageRead: p.LastPageRead,
		Percentage:   percentage,
		UpdatedAt:    p.UpdatedAt,
	}
}

// LessonCompletedResponse defines data returned after marking a lesson
// completed: the enrollment reflecting any completion flip.
type LessonCompletedResponse struct {
	Enrollment EnrollmentResponse `json:"enrollment"`
}
