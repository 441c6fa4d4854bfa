package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
	"github.com/viaensino/via_ensino_app/internal/core/domain"
	portsrepo "github.com/viaensino/via_ensino_app/internal/core/ports/repositories"
)

type PgxSubscriptionRepository struct {
	db *pgxpool.Pool
}

func newPgxSubscriptionRepository(db *pgxpool.Pool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{db: db}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, account_id, plan_id, status, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

func scanSubscription(row pgx.Row) (domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(
		&s.SubscriptionID,
		&s.AccountID,
		&s.PlanID,
		&s.Status,
		&s.StartDate,
		&s.EndDate,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (subscription_id, account_id, plan_id, status, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		subscription.SubscriptionID,
		subscription.AccountID,
		subscription.PlanID,
		subscription.Status,
		subscription.StartDate,
		subscription.EndDate,
		subscription.CreatedAt,
		subscription.CreatedBy,
		subscription.LastUpdatedAt,
		subscription.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // partial unique index on (account_id) WHERE status = 'ACTIVE'
				return apperrors.NewConflictError("account already has an active subscription")
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("referenced account or plan does not exist")
			}
		}
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1;`
	sub, err := scanSubscription(r.db.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription by ID %s: %w", subscriptionID, err)
	}
	return &sub, nil
}

// FindActiveByAccountID applies the half-open coverage window in SQL:
// start_date <= now < end_date.
func (r *PgxSubscriptionRepository) FindActiveByAccountID(ctx context.Context, accountID string, now time.Time) (*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE account_id = $1
		  AND status = $2
		  AND start_date <= $3
		  AND end_date > $3;
	`
	sub, err := scanSubscription(r.db.QueryRow(ctx, query, accountID, domain.SubscriptionActive, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active subscription for account %s: %w", accountID, err)
	}
	return &sub, nil
}

func (r *PgxSubscriptionRepository) UpdateSubscriptionStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus, updatedBy string) error {
	query := `
		UPDATE subscriptions
		SET status = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE subscription_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, subscriptionID, status, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update subscription status %s: %w", subscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ExpireOverdue is a single idempotent UPDATE; running it twice, or from two
// instances at once, flips each overdue row exactly once.
func (r *PgxSubscriptionRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE subscriptions
		SET status = $1, last_updated_at = NOW(), last_updated_by = 'system'
		WHERE status = $2 AND end_date <= $3;
	`
	tag, err := r.db.Exec(ctx, query, domain.SubscriptionExpired, domain.SubscriptionActive, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire overdue subscriptions: %w", err)
	}
	return tag.RowsAffected(), nil
}

const planColumns = `plan_id, name, plan_type, price, duration_days, created_at, created_by, last_updated_at, last_updated_by`

func scanPlan(row pgx.Row) (domain.Plan, error) {
	var p domain.Plan
	err := row.Scan(
		&p.PlanID,
		&p.Name,
		&p.Type,
		&p.Price,
		&p.DurationDays,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

func (r *PgxSubscriptionRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		INSERT INTO plans (plan_id, name, plan_type, price, duration_days, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		plan.PlanID,
		plan.Name,
		plan.Type,
		plan.Price,
		plan.DurationDays,
		plan.CreatedAt,
		plan.CreatedBy,
		plan.LastUpdatedAt,
		plan.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError(fmt.Sprintf("plan with name '%s' already exists", plan.Name))
		}
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

func (r *PgxSubscriptionRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = $1;`
	plan, err := scanPlan(r.db.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan by ID %s: %w", planID, err)
	}
	return &plan, nil
}

func (r *PgxSubscriptionRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	plans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Plan, error) {
		return scanPlan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan plans: %w", err)
	}
	return plans, nil
}
