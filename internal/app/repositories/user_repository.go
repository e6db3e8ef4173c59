package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eren/coursemap/internal/app/models"
	"github.com/eren/coursemap/internal/pkg/dberrors"
)

// User error types
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// UserRepository handles database operations for planner accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, email, name, password_hash, google_sub)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.GoogleSub,
	).Scan(&user.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

func (r *UserRepository) getBy(ctx context.Context, condition string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, email, name, password_hash, google_sub, created_at
		FROM users
		WHERE ` + condition

	var user models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.GoogleSub,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

// GetByGoogleSub retrieves a user by Google subject id
func (r *UserRepository) GetByGoogleSub(ctx context.Context, sub string) (*models.User, error) {
	return r.getBy(ctx, "google_sub = $1", sub)
}

// LinkGoogleSub attaches a Google subject id to an existing account.
func (r *UserRepository) LinkGoogleSub(ctx context.Context, id uuid.UUID, sub string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET google_sub = $1 WHERE id = $2`, sub, id)
	if err != nil {
		return fmt.Errorf("error linking google account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
