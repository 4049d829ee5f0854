package repository

import (
	"context"
	"errors"
	"fmt"

	"contech_bot/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	DeleteCascade(ctx context.Context, id int) (int64, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	lat, lon := user.Coordinates()
	sql := `INSERT INTO users (phone_number, user_type, full_name, latitude, longitude, conversation_stage)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, user.Phone, string(user.Role), user.DisplayName, lat, lon, user.Stage.String()).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByPhone retrieves a user by their phone number. A stored stage that
// cannot be parsed comes back as model.StageUnknown.
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	var (
		user     model.User
		role     string
		stage    string
		lat, lon *float64
	)
	sql := `SELECT id, phone_number, user_type, full_name, latitude, longitude, conversation_stage, created_at
            FROM users WHERE phone_number = $1`
	err := r.db.QueryRow(ctx, sql, phone).Scan(
		&user.ID, &user.Phone, &role, &user.DisplayName, &lat, &lon, &stage, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	user.Role = model.Role(role)
	user.Stage, _ = model.ParseStage(stage)
	user.SetCoordinates(lat, lon)
	return &user, nil
}

// Save writes every mutable field of an existing user
func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	lat, lon := user.Coordinates()
	sql := `UPDATE users
            SET user_type = $1, full_name = $2, latitude = $3, longitude = $4, conversation_stage = $5
            WHERE id = $6`
	cmdTag, err := r.db.Exec(ctx, sql, string(user.Role), user.DisplayName, lat, lon, user.Stage.String(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to save user %d: %w", user.ID, ErrNotFound)
	}
	return nil
}

// DeleteCascade removes a user and every job posting it owns in a single
// transaction. It returns the number of postings removed.
func (r *userRepository) DeleteCascade(ctx context.Context, id int) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	jobsTag, err := tx.Exec(ctx, `DELETE FROM job_opportunities WHERE contractor_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete owned job postings: %w", err)
	}

	userTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	if userTag.RowsAffected() == 0 {
		return 0, fmt.Errorf("failed to delete user %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return jobsTag.RowsAffected(), nil
}
