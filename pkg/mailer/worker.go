package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/go-task-tracker/pkg/mailer/templates"
)

// Outcome tells the queue consumer what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Drop rejects a message that can never succeed.
	Drop
	// Retry rejects a message and puts it back on the queue.
	Retry
)

var ErrEmptyJob = errors.New("job has neither template nor subject")

// Process decodes, renders and sends one queued job.
func Process(ctx context.Context, body []byte, sender Sender) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("bad message: %w", err)
	}
	if job.To == "" {
		return Drop, errors.New("bad message: missing recipient")
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return Drop, fmt.Errorf("render %s: %w", job.Template, err)
		}
		subject, text, html = s, t, h
	} else if subject == "" || (text == "" && html == "") {
		return Drop, ErrEmptyJob
	}

	if err := sender.Send(ctx, job.To, subject, text, html); err != nil {
		return Retry, fmt.Errorf("send: %w", err)
	}
	return Ack, nil
}
