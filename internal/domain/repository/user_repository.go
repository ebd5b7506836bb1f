package repository

import (
	"context"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// UserRepository persists user identities.
// Create fails with a conflict error when the username or email is taken;
// GetByUsername fails with a not-found error when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}
