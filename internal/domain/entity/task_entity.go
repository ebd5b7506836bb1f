package entity

import "time"

// Task belongs to exactly one user. UserID never changes after creation.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     *time.Time
	Status      string
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFields are the owner-editable attributes of a task.
// Updates replace all of them at once.
type TaskFields struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      string
}

// Apply copies f onto t.
func (t *Task) Apply(f TaskFields) {
	t.Title = f.Title
	t.Description = f.Description
	t.DueDate = f.DueDate
	t.Status = f.Status
}
