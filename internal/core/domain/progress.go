package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LessonProgress records a completed lesson within an enrollment. Created at
// most once per (enrollment, lesson).
type LessonProgress struct {
	EnrollmentID string    `json:"enrollmentID"`
	LessonID     string    `json:"lessonID"`
	CompletedAt  time.Time `json:"completedAt"`
}

// EbookProgress is a single upsertable row per (user, training) holding the
// last page read. Ebook progress never drives enrollment status; completion
// for ebooks is a derived percentage only.
type EbookProgress struct {
	UserID       string    `json:"userID"`
	TrainingID   string    `json:"trainingID"`
	LastPageRead int       `json:"lastPageRead"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Percentage derives the read percentage for the given total page count,
// rounded to two decimal places. Returns zero when totalPages is zero.
func (p EbookProgress) Percentage(totalPages int) decimal.Decimal {
	if totalPages <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(p.LastPageRead)).
		Div(decimal.NewFromInt(int64(totalPages))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
