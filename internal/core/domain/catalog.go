package domain

// CatalogItem is a training as seen by a specific user: the training itself,
// the consolidated compulsory/elective classification across the user's
// sectors, and the user's enrollment status (NOT_ENROLLED when no row exists).
type CatalogItem struct {
	Training         Training         `json:"training"`
	ConsolidatedType TrainingType     `json:"consolidatedType"`
	EnrollmentStatus EnrollmentStatus `json:"enrollmentStatus"`
}

// AccessDecision is the outcome of an entitlement resolution.
type AccessDecision struct {
	Granted bool   `json:"granted"`
	Reason  string `json:"reason,omitempty"` // Populated on denial
}

// GrantedDecision is the positive access decision.
func GrantedDecision() AccessDecision {
	return AccessDecision{Granted: true}
}

// DeniedDecision builds a denial with the given reason.
func DeniedDecision(reason string) AccessDecision {
	return AccessDecision{Granted: false, Reason: reason}
}
