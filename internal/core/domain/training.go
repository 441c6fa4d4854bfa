package domain

import "time"

// TrainingEntityType discriminates the training union.
type TrainingEntityType string

const (
	EntityEbook          TrainingEntityType = "EBOOK"
	EntityRecordedCourse TrainingEntityType = "RECORDED_COURSE"
	EntityLiveTraining   TrainingEntityType = "LIVE_TRAINING"
)

// TrainingStatus is the publication lifecycle of a training.
type TrainingStatus string

const (
	TrainingDraft     TrainingStatus = "DRAFT"
	TrainingPublished TrainingStatus = "PUBLISHED"
)

// TrainingType classifies a training within a sector as compulsory or elective.
// The same training can be compulsory for one sector and elective for another.
type TrainingType string

const (
	TypeCompulsory TrainingType = "COMPULSORY"
	TypeElective   TrainingType = "ELECTIVE"
)

// Training is a tagged union over ebooks, recorded courses and live trainings.
// EntityType selects which of the variant payloads is populated; the others
// stay nil. OrganizationID is nil for global/universal content and set for
// org-exclusive trainings.
type Training struct {
	TrainingID     string             `json:"trainingID"` // Primary Key (UUID)
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	EntityType     TrainingEntityType `json:"entityType"`
	Status         TrainingStatus     `json:"status"`
	OrganizationID *string            `json:"organizationID,omitempty"`

	Ebook          *EbookDetails          `json:"ebook,omitempty"`
	RecordedCourse *RecordedCourseDetails `json:"recordedCourse,omitempty"`
	LiveTraining   *LiveTrainingDetails   `json:"liveTraining,omitempty"`

	AuditFields
}

// EbookDetails is the variant payload for EBOOK trainings.
type EbookDetails struct {
	TotalPages int    `json:"totalPages"`
	FileKey    string `json:"fileKey"` // Reference into external blob storage
}

// RecordedCourseDetails is the variant payload for RECORDED_COURSE trainings.
type RecordedCourseDetails struct {
	Lessons []Lesson `json:"lessons"`
}

// LiveTrainingDetails is the variant payload for LIVE_TRAINING trainings.
type LiveTrainingDetails struct {
	ScheduledAt time.Time `json:"scheduledAt"`
	MeetingURL  string    `json:"meetingURL"`
	Capacity    int       `json:"capacity"`
}

// Lesson is a single unit of a recorded course.
type Lesson struct {
	LessonID        string `json:"lessonID"` // Primary Key (UUID)
	TrainingID      string `json:"trainingID"`
	Title           string `json:"title"`
	Position        int    `json:"position"`
	DurationSeconds int    `json:"durationSeconds"`
}

// TrainingSectorAssignment is the Training <-> Sector edge carrying the
// compulsory/elective classification and its legal basis. Unique per
// (training, sector).
type TrainingSectorAssignment struct {
	TrainingID   string       `json:"trainingID"`
	SectorID     string       `json:"sectorID"`
	TrainingType TrainingType `json:"trainingType"`
	LegalBasis   string       `json:"legalBasis"`
}

// Variant returns the payload matching EntityType, or nil when the payload is
// missing (inconsistent row).
func (t Training) Variant() any {
	switch t.EntityType {
	case EntityEbook:
		if t.Ebook != nil {
			return *t.Ebook
		}
	case EntityRecordedCourse:
		if t.RecordedCourse != nil {
			return *t.RecordedCourse
		}
	case EntityLiveTraining:
		if t.LiveTraining != nil {
			return *t.LiveTraining
		}
	}
	return nil
}
