package domain

import "time"

// MembershipRole defines the possible roles a user can hold within an organization.
type MembershipRole string

const (
	RoleOrgAdmin  MembershipRole = "ORG_ADMIN"
	RoleOrgMember MembershipRole = "ORG_MEMBER"
)

// Organization belongs to one enterprise Account and owns a set of memberships
// and adopted sectors.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (UUID)
	AccountID      string `json:"accountID"`      // FK -> accounts.account_id
	Name           string `json:"name"`
	CNPJ           string `json:"cnpj"` // Unique company registry number
	AuditFields
}

// Membership represents the ternary relation (User, Organization, Role).
// Unique per (user, organization). Invariant: an organization must retain at
// least one ORG_ADMIN membership at all times.
type Membership struct {
	MembershipID   string         `json:"membershipID"` // Primary Key (UUID)
	UserID         string         `json:"userID"`       // FK -> users.user_id
	UserName       string         `json:"userName,omitempty" db:"-"`
	OrganizationID string         `json:"organizationID"` // FK -> organizations.organization_id
	Role           MembershipRole `json:"role"`
	AddedBy        string         `json:"addedBy"` // UserID of the admin who added this member
	JoinedAt       time.Time      `json:"joinedAt"`
}

// IsAdmin reports whether the membership carries the ORG_ADMIN role.
func (m Membership) IsAdmin() bool {
	return m.Role == RoleOrgAdmin
}
