package domain

import "time"

// EnrollmentStatus is the lifecycle of an enrollment. Absence of an enrollment
// row means NOT_ENROLLED; the status is only materialized on catalog items.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	NotEnrolled         EnrollmentStatus = "NOT_ENROLLED"
)

// Enrollment links a user to a training. Status transitions are monotonic:
// once COMPLETED, an enrollment never regresses to ACTIVE.
type Enrollment struct {
	EnrollmentID string           `json:"enrollmentID"` // Primary Key (UUID)
	UserID       string           `json:"userID"`
	TrainingID   string           `json:"trainingID"`
	Status       EnrollmentStatus `json:"status"`
	SponsoredBy  *string          `json:"sponsoredBy,omitempty"` // OrganizationID footing the bill, if any
	EnrolledAt   time.Time        `json:"enrolledAt"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty"`
}
