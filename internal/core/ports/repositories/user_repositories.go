package repositories

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
)

// UserReader defines read operations for user data. This is the engine's view
// of the identity store: who the user is, their global role and their personal
// account reference. Memberships are read through MembershipReader.
type UserReader interface {
	// FindUserByID retrieves a specific user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves users with simple limit/offset paging.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// SetPersonalAccountID links a lazily created personal account to the user.
	SetPersonalAccountID(ctx context.Context, userID, accountID string) error

	// DeleteUser soft deletes a user.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
