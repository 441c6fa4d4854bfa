package domain

// AccountType distinguishes personal billing accounts from enterprise ones.
type AccountType string

const (
	AccountPersonal   AccountType = "PERSONAL"   // Owns exactly one user
	AccountEnterprise AccountType = "ENTERPRISE" // Owns one or more organizations
)

// Account is the root billing unit. Subscriptions always attach to an Account,
// never directly to a User or Organization. Accounts are created lazily on the
// first personal subscription purchase or on organization creation, and are
// never deleted.
type Account struct {
	AccountID string      `json:"accountID"` // Primary Key (UUID)
	Type      AccountType `json:"type"`
	AuditFields
}
