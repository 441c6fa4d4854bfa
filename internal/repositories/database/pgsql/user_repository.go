package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, password_hash, global_role, personal_account_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.GlobalRole,
		&u.PersonalAccountID,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
		&u.DeletedAt,
	)
	return u, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, name, email, password_hash, global_role, personal_account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.GlobalRole,
		user.PersonalAccountID,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError(fmt.Sprintf("user with email '%s' already exists", user.Email))
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return &user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL;`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL ORDER BY created_at LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, user.UserID, user.Name, user.LastUpdatedAt, user.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetPersonalAccountID(ctx context.Context, userID, accountID string) error {
	query := `
		UPDATE users
		SET personal_account_id = $2, last_updated_at = NOW(), last_updated_by = $1
		WHERE user_id = $1 AND deleted_at IS NULL AND personal_account_id IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, userID, accountID)
	if err != nil {
		return fmt.Errorf("failed to link personal account for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the user is gone or a concurrent purchase already linked one.
		return apperrors.NewConflictError("personal account already linked")
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), last_updated_at = NOW(), last_updated_by = $1
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
