package repositories

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// AccountReader defines read operations for billing accounts.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountWriter defines write operations for billing accounts. Accounts are
// never deleted.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
