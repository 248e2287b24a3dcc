// internal/repository/user_repo.go
package repository

import (
	"context"

	"github.com/dviniciusbonin/payments-system/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by id, or util.ErrNotFound.
	GetUserByID(ctx context.Context, q DBExecutor, id string) (*domain.User, error)
	// GetUsersByRole retrieves every active user holding the given role.
	GetUsersByRole(ctx context.Context, q DBExecutor, role domain.UserRole) ([]domain.User, error)
	// ListUsers retrieves all users.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
}
