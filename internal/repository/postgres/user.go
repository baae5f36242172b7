package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Upsert inserts the user or refreshes the identity fields on conflict.
// Role is only written on insert; afterwards the database column is the
// single source of truth and is changed through UpdateRole.
func (r *userRepository) Upsert(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, name, picture, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)
	          ON CONFLICT (id) DO UPDATE
	          SET email = EXCLUDED.email, name = EXCLUDED.name, picture = EXCLUDED.picture, updated_on = EXCLUDED.updated_on
	          RETURNING role, stripe_account_id, stripe_onboarding_complete, created_on, updated_on`
	var stripeAccountID sql.NullString
	err := r.db.QueryRowContext(ctx, query, u.ID, u.Email, u.Name, u.Picture, u.Role, time.Now()).
		Scan(&u.Role, &stripeAccountID, &u.StripeOnboardingComplete, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return err
	}
	u.StripeAccountID = stripeAccountID.String
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	u := &domain.User{}
	var stripeAccountID sql.NullString
	query := `SELECT id, email, name, picture, role, stripe_account_id, stripe_onboarding_complete, created_on, updated_on FROM users ` + where
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.Picture, &u.Role, &stripeAccountID, &u.StripeOnboardingComplete, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.StripeAccountID = stripeAccountID.String
	return u, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole) error {
	query := `UPDATE users SET role = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, role, time.Now(), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateStripeAccount(ctx context.Context, userID, stripeAccountID string, onboardingComplete bool) error {
	query := `UPDATE users SET stripe_account_id = $1, stripe_onboarding_complete = $2, updated_on = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, stripeAccountID, onboardingComplete, time.Now(), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, email, name, picture, role, stripe_account_id, stripe_onboarding_complete, created_on, updated_on FROM users ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var stripeAccountID sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Picture, &u.Role, &stripeAccountID, &u.StripeOnboardingComplete, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		u.StripeAccountID = stripeAccountID.String
		users = append(users, u)
	}
	return users, rows.Err()
}
