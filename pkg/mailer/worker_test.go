package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	mailtpl "github.com/oksasatya/go-task-tracker/pkg/mailer/templates"
)

type recordingSender struct {
	to, subject, text, html string
	calls                   int
	err                     error
}

func (s *recordingSender) Send(_ context.Context, to, subject, text, html string) error {
	s.calls++
	s.to, s.subject, s.text, s.html = to, subject, text, html
	return s.err
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestProcessTemplateJob(t *testing.T) {
	sender := &recordingSender{}
	job := EmailJob{To: "a@x.com", Template: mailtpl.Welcome, Data: mailtpl.NewWelcomeData("Tasks", "alice", "a@x.com")}

	outcome, err := Process(context.Background(), mustJSON(t, job), sender)
	if err != nil || outcome != Ack {
		t.Fatalf("Process = (%v, %v), want (Ack, nil)", outcome, err)
	}
	if sender.to != "a@x.com" || sender.subject != "Welcome to Tasks" || sender.html == "" {
		t.Fatalf("unexpected send: %+v", sender)
	}
}

func TestProcessRawJob(t *testing.T) {
	sender := &recordingSender{}
	job := EmailJob{To: "a@x.com", Subject: "Hi", Text: "hello"}
	if outcome, err := Process(context.Background(), mustJSON(t, job), sender); err != nil || outcome != Ack {
		t.Fatalf("Process = (%v, %v)", outcome, err)
	}
	if sender.subject != "Hi" || sender.text != "hello" {
		t.Fatalf("unexpected send: %+v", sender)
	}
}

func TestProcessDropsBadMessages(t *testing.T) {
	cases := map[string][]byte{
		"invalid json":     []byte("{"),
		"no recipient":     mustJSON(t, EmailJob{Subject: "x", Text: "y"}),
		"no content":       mustJSON(t, EmailJob{To: "a@x.com"}),
		"unknown template": mustJSON(t, EmailJob{To: "a@x.com", Template: "nope"}),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			sender := &recordingSender{}
			outcome, err := Process(context.Background(), body, sender)
			if err == nil || outcome != Drop {
				t.Fatalf("Process = (%v, %v), want (Drop, error)", outcome, err)
			}
			if sender.calls != 0 {
				t.Fatal("sender must not be called")
			}
		})
	}
}

func TestProcessRetriesSendFailures(t *testing.T) {
	sender := &recordingSender{err: errors.New("mailgun down")}
	job := EmailJob{To: "a@x.com", Subject: "Hi", Text: "hello"}
	outcome, err := Process(context.Background(), mustJSON(t, job), sender)
	if err == nil || outcome != Retry {
		t.Fatalf("Process = (%v, %v), want (Retry, error)", outcome, err)
	}
}
