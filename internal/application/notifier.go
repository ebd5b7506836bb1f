package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/pkg/mailer"
	mailtpl "github.com/oksasatya/go-task-tracker/pkg/mailer/templates"
)

// Notifier tells users about account events. Failures never fail the
// operation that triggered them.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.User) error
}

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier queues email jobs for cmd/email_worker.
type EmailNotifier struct {
	Pub     JSONPublisher
	AppName string
	Now     func() time.Time
}

func NewEmailNotifier(pub JSONPublisher, appName string) *EmailNotifier {
	return &EmailNotifier{Pub: pub, AppName: appName, Now: time.Now}
}

func (n *EmailNotifier) Welcome(ctx context.Context, u *entity.User) error {
	data := mailtpl.NewWelcomeData(n.AppName, u.Username, u.Email, mailtpl.WithTime(n.Now()))
	job := mailer.EmailJob{To: u.Email, Template: mailtpl.Welcome, Data: data}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return n.Pub.PublishJSON(c, job)
}
