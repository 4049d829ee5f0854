package service

import (
	"context"
	"errors"
	"fmt"

	"contech_bot/internal/model"
	"contech_bot/internal/repository"

	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")

// UserService exposes administrative user operations
type UserService interface {
	GetUser(ctx context.Context, phone string) (*model.User, error)
	DeleteUser(ctx context.Context, phone string) (int64, error)
}

type userService struct {
	users  repository.UserRepository
	jobs   repository.JobRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, jobs repository.JobRepository, logger *zap.Logger) UserService {
	return &userService{users: users, jobs: jobs, logger: logger}
}

func (s *userService) GetUser(ctx context.Context, phone string) (*model.User, error) {
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUser removes the user and every posting it owns. It returns the
// number of postings removed.
func (s *userService) DeleteUser(ctx context.Context, phone string) (int64, error) {
	user, err := s.GetUser(ctx, phone)
	if err != nil {
		return 0, err
	}

	removed, err := s.users.DeleteCascade(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	if removed > 0 {
		s.jobs.InvalidateOpen(ctx)
	}

	s.logger.Info("user deleted",
		zap.Int("user_id", user.ID),
		zap.Int64("job_postings_removed", removed),
	)
	return removed, nil
}
