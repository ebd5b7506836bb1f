package application

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/apperror"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// TaskService runs owner-scoped task operations. ownerID is always the
// identity the caller has been authorized as.
type TaskService struct {
	Repo  repo.TaskRepository
	Index TaskIndex
	// RequireDescription rejects empty descriptions.
	RequireDescription bool
	Logger             *logrus.Logger
}

func NewTaskService(repo repo.TaskRepository, index TaskIndex, requireDescription bool, logger *logrus.Logger) *TaskService {
	if index == nil {
		index = NoopTaskIndex{}
	}
	return &TaskService{Repo: repo, Index: index, RequireDescription: requireDescription, Logger: logger}
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, in entity.TaskFields) (*entity.Task, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	t := &entity.Task{UserID: ownerID}
	t.Apply(in)
	if err := s.Repo.Create(ctx, ownerID, t); err != nil {
		s.logStorage("create task failed", err, ownerID, 0)
		return nil, err
	}
	helpers.TasksCreated.Add(1)
	s.index(ctx, t)
	return t, nil
}

// List returns the owner's tasks; never nil.
func (s *TaskService) List(ctx context.Context, ownerID int64) ([]entity.Task, error) {
	tasks, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logStorage("list tasks failed", err, ownerID, 0)
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID int64) (*entity.Task, error) {
	t, err := s.Repo.GetOne(ctx, ownerID, taskID)
	if err != nil {
		s.logStorage("get task failed", err, ownerID, taskID)
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID int64, in entity.TaskFields) (*entity.Task, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	t, err := s.Repo.Update(ctx, ownerID, taskID, in)
	if err != nil {
		s.logStorage("update task failed", err, ownerID, taskID)
		return nil, err
	}
	helpers.TasksUpdated.Add(1)
	s.index(ctx, t)
	return t, nil
}

// Delete removes the task, or fails with a not-found error when the owner
// has no task with that id.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID int64) error {
	n, err := s.Repo.Delete(ctx, ownerID, taskID)
	if err != nil {
		s.logStorage("delete task failed", err, ownerID, taskID)
		return err
	}
	if n == 0 {
		return apperror.NewNotFound("task not found")
	}
	helpers.TasksDeleted.Add(1)
	if iErr := s.Index.Remove(ctx, taskID); iErr != nil && s.Logger != nil {
		s.Logger.WithError(iErr).WithField("task_id", taskID).Warn("task index remove failed")
	}
	return nil
}

// Search finds the owner's tasks matching q. Hits from the index are
// re-read from the store, so stale or foreign entries never leak out.
// Without an index it falls back to a substring match over the owner's tasks.
func (s *TaskService) Search(ctx context.Context, ownerID int64, q string, size int) ([]entity.Task, error) {
	q = strings.TrimSpace(q)
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	if q == "" {
		return []entity.Task{}, nil
	}

	ids, err := s.Index.Search(ctx, ownerID, q, size)
	if errors.Is(err, ErrIndexDisabled) {
		return s.scan(ctx, ownerID, q, size)
	}
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", ownerID).Warn("task index search failed, scanning store")
		}
		return s.scan(ctx, ownerID, q, size)
	}

	out := make([]entity.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.Repo.GetOne(ctx, ownerID, id)
		if apperror.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *TaskService) scan(ctx context.Context, ownerID int64, q string, size int) ([]entity.Task, error) {
	tasks, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]entity.Task, 0)
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) || strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return titleHit(out[i], needle) && !titleHit(out[j], needle)
	})
	if len(out) > size {
		out = out[:size]
	}
	return out, nil
}

func titleHit(t entity.Task, needle string) bool {
	return strings.Contains(strings.ToLower(t.Title), needle)
}

func (s *TaskService) normalize(in entity.TaskFields) (entity.TaskFields, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Status = strings.TrimSpace(in.Status)
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "is required"
	}
	if in.Status == "" {
		fields["status"] = "is required"
	}
	if s.RequireDescription && strings.TrimSpace(in.Description) == "" {
		fields["description"] = "is required"
	}
	if len(fields) > 0 {
		return in, apperror.NewValidation("invalid payload", fields)
	}
	if in.DueDate != nil {
		d := in.DueDate.UTC()
		in.DueDate = &d
	}
	return in, nil
}

func (s *TaskService) index(ctx context.Context, t *entity.Task) {
	if err := s.Index.Put(ctx, *t); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("task_id", t.ID).Warn("task index put failed")
	}
}

func (s *TaskService) logStorage(msg string, err error, ownerID, taskID int64) {
	if !apperror.IsStorage(err) {
		return
	}
	fields := logrus.Fields{"user_id": ownerID}
	if taskID != 0 {
		fields["task_id"] = taskID
	}
	helpers.LogError(s.Logger, msg, err, fields)
}
