package application

import (
	"context"
	"testing"
	"time"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/pkg/mailer"
	mailtpl "github.com/oksasatya/go-task-tracker/pkg/mailer/templates"
)

type capturePublisher struct {
	bodies []any
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return nil
}

func TestWelcomePublishesEmailJob(t *testing.T) {
	pub := &capturePublisher{}
	n := NewEmailNotifier(pub, "Tasks")
	n.Now = func() time.Time { return time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC) }

	if err := n.Welcome(context.Background(), &entity.User{ID: 3, Username: "alice", Email: "a@x.com"}); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if len(pub.bodies) != 1 {
		t.Fatalf("published %d messages", len(pub.bodies))
	}
	job, ok := pub.bodies[0].(mailer.EmailJob)
	if !ok {
		t.Fatalf("body type %T", pub.bodies[0])
	}
	if job.To != "a@x.com" || job.Template != mailtpl.Welcome {
		t.Fatalf("job = %+v", job)
	}
	if job.Data["Username"] != "alice" || job.Data["AppName"] != "Tasks" {
		t.Fatalf("data = %v", job.Data)
	}
	if job.Data["Time"] != "01 February 2026, 09:30" {
		t.Fatalf("time = %v", job.Data["Time"])
	}
}
