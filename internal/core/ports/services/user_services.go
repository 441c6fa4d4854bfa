package services

import (
	"context"

	"github.com/viaensino/via_ensino_app/internal/core/domain"
	"github.com/viaensino/via_ensino_app/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves users with simple limit/offset paging.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates a user's mutable fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updatedBy string) (*domain.User, error)

	// DeleteUser soft deletes a user.
	DeleteUser(ctx context.Context, userID, actorID string) error
}

// UserAuthenticatorSvc verifies credentials and resolves external identities.
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies email/password and returns the user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateByEmail resolves an externally authenticated identity
	// (e.g. Google OAuth) to a local user, creating one when absent.
	FindOrCreateByEmail(ctx context.Context, email, name string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
