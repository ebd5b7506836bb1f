package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Logger: logger}
}

// List returns every user with password digests removed.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		helpers.LogError(s.Logger, "list users failed", err, nil)
		return nil, err
	}
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		out = append(out, *u.Redacted())
	}
	return out, nil
}
