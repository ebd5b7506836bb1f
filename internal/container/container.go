package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/application"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	pginfra "github.com/oksasatya/go-task-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// Container holds the constructed components the router wires into
// modules. main builds one with New; tests fill the fields directly.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	PGPool *pgxpool.Pool
	JWT    *helpers.JWTManager

	// optional
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client

	Users     repo.UserRepository
	Tasks     repo.TaskRepository
	TaskIndex application.TaskIndex
	Notifier  application.Notifier
}

// New derives repositories, the task index and the notifier from the
// given clients. pub and es may be nil.
func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool, pub *helpers.RabbitPublisher, es *elasticsearch.Client) *Container {
	c := &Container{
		Config:    cfg,
		Logger:    logger,
		PGPool:    pool,
		JWT:       helpers.NewJWTManager(cfg.JWTSecret),
		RabbitPub: pub,
		ES:        es,
		Users:     pginfra.NewUserRepository(pool),
		Tasks:     pginfra.NewTaskRepository(pool),
		TaskIndex: application.NoopTaskIndex{},
	}
	if es != nil {
		c.TaskIndex = application.NewESTaskIndex(es, cfg.ESTasksIndex)
	}
	if pub != nil && cfg.NotificationsEnabled() {
		c.Notifier = application.NewEmailNotifier(pub, cfg.AppName)
	}
	return c
}
