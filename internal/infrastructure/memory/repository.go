// Package memory holds map-backed repositories with the same error
// behaviour as the postgres ones. Tests use them in place of a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/apperror"
)

type UserRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]entity.User
	// Err, when set, is returned by every call.
	Err error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: map[int64]entity.User{}}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return apperror.NewConflict("username already exists", nil)
		}
		if u.Email != "" && strings.EqualFold(existing.Email, u.Email) {
			return apperror.NewConflict("email already exists", nil)
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	r.byID[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.byID {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.NewNotFound("user not found")
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type TaskRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]entity.Task
	Err    error
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{byID: map[int64]entity.Task{}}
}

func (r *TaskRepository) Create(_ context.Context, ownerID int64, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	now := time.Now().UTC()
	t.ID = r.nextID
	t.UserID = ownerID
	t.CreatedAt = now
	t.UpdatedAt = now
	r.byID[t.ID] = *t
	return nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID int64) ([]entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []entity.Task{}
	for _, t := range r.byID {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TaskRepository) GetOne(_ context.Context, ownerID, taskID int64) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, ok := r.byID[taskID]
	if !ok || t.UserID != ownerID {
		return nil, apperror.NewNotFound("task not found")
	}
	return &t, nil
}

func (r *TaskRepository) Update(_ context.Context, ownerID, taskID int64, f entity.TaskFields) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, ok := r.byID[taskID]
	if !ok || t.UserID != ownerID {
		return nil, apperror.NewNotFound("task not found")
	}
	t.Apply(f)
	t.UpdatedAt = time.Now().UTC()
	r.byID[taskID] = t
	return &t, nil
}

func (r *TaskRepository) Delete(_ context.Context, ownerID, taskID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	t, ok := r.byID[taskID]
	if !ok || t.UserID != ownerID {
		return 0, nil
	}
	delete(r.byID, taskID)
	return 1, nil
}

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.TaskRepository = (*TaskRepository)(nil)
)
