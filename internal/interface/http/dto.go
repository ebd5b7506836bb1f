package handlers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

type authResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type taskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toTaskResponse(t *entity.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(ts []entity.Task) []taskResponse {
	out := make([]taskResponse, 0, len(ts))
	for i := range ts {
		out = append(out, toTaskResponse(&ts[i]))
	}
	return out
}

// dueDate accepts RFC 3339, a zone-less "2006-01-02T15:04:05" (read as
// UTC), a bare date, or null.
type dueDate struct {
	t *time.Time
}

var dueDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (d *dueDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.t = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &validation.FieldError{Field: "due_date", Message: "must be a timestamp string"}
	}
	if s == "" {
		d.t = nil
		return nil
	}
	for _, layout := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			d.t = &parsed
			return nil
		}
	}
	return &validation.FieldError{Field: "due_date", Message: "must be an RFC 3339 timestamp"}
}

type taskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	DueDate     dueDate `json:"due_date"`
	Status      string  `json:"status" binding:"required"`
}

func (r taskRequest) fields() entity.TaskFields {
	return entity.TaskFields{Title: r.Title, Description: r.Description, DueDate: r.DueDate.t, Status: r.Status}
}
