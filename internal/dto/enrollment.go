package dto

import (
	"time"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// EnrollRequest defines data for enrolling in a training.
type EnrollRequest struct {
	TrainingID  string  `json:"trainingID" binding:"required"`
	SponsoredBy *string `json:"sponsoredBy,omitempty"`
}

// EnrollmentResponse defines data returned for an enrollment.
type EnrollmentResponse struct {
	EnrollmentID string                  `json:"enrollmentID"`
	UserID       string                  `json:"userID"`
	TrainingID   string                  `json:"trainingID"`
	Status       domain.EnrollmentStatus `json:"status"`
	SponsoredBy  *string                 `json:"sponsoredBy,omitempty"`
	EnrolledAt   time.Time               `json:"enrolledAt"`
	CompletedAt  *time.Time              `json:"completedAt,omitempty"`
}

// ToEnrollmentResponse converts domain.Enrollment to DTO.
func ToEnrollmentResponse(e *domain.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID: e.EnrollmentID,
		UserID:       e.UserID,
		TrainingID:   e.TrainingID,
		Status:       e.Status,
		SponsoredBy:  e.SponsoredBy,
		EnrolledAt:   e.EnrolledAt,
		CompletedAt:  e.CompletedAt,
	}
}

// ListEnrollmentsResponse wraps a list of enrollments.
type ListEnrollmentsResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

// ToListEnrollmentsResponse converts a slice of domain.Enrollment to DTO.
func ToListEnrollmentsResponse(es []domain.Enrollment) ListEnrollmentsResponse {
	list := make([]EnrollmentResponse, len(es))
	for i, e := range es {
		list[i] = ToEnrollmentResponse(&e)
	}
	return ListEnrollmentsResponse{Enrollments: list}
}
