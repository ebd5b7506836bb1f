package repository

import (
	"context"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// TaskRepository persists tasks. Every method is scoped by owner: a task
// owned by someone else behaves exactly like a task that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, ownerID int64, t *entity.Task) error
	ListByOwner(ctx context.Context, ownerID int64) ([]entity.Task, error)
	GetOne(ctx context.Context, ownerID, taskID int64) (*entity.Task, error)
	Update(ctx context.Context, ownerID, taskID int64, f entity.TaskFields) (*entity.Task, error)
	// Delete returns the number of rows removed, 0 or 1. Removing nothing is not an error.
	Delete(ctx context.Context, ownerID, taskID int64) (int64, error)
}
