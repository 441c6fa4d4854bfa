package domain

import "time"

// GlobalRole defines platform-wide roles, independent of any organization.
type GlobalRole string

const (
	RoleSystemAdmin GlobalRole = "SYSTEM_ADMIN" // Bypasses entitlement checks
	RoleStandard    GlobalRole = "STANDARD"
)

// User represents a user of the platform in the domain.
type User struct {
	UserID            string     `json:"userID"` // Primary Key (UUID)
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	GlobalRole        GlobalRole `json:"globalRole"`
	PersonalAccountID *string    `json:"personalAccountID,omitempty"` // Set lazily on first personal subscription purchase
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}
