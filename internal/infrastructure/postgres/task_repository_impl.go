package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

const taskColumns = `id, title, description, due_date, status, user_id, created_at, updated_at`

// TaskRepository filters every statement by owner as well as task id.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, ownerID int64, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, due_date, status, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+taskColumns,
		t.Title, t.Description, optionalTime(t.DueDate), t.Status, ownerID)

	created, err := scanTask(row)
	if err != nil {
		return translate(err, "task", "create task")
	}
	*t = *created
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, translate(err, "task", "list tasks")
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Task, error) {
		t, err := scanTask(row)
		if err != nil {
			return entity.Task{}, err
		}
		return *t, nil
	})
	if err != nil {
		return nil, translate(err, "task", "list tasks")
	}
	return tasks, nil
}

func (r *TaskRepository) GetOne(ctx context.Context, ownerID, taskID int64) (*entity.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, ownerID)

	t, err := scanTask(row)
	if err != nil {
		return nil, translate(err, "task", "get task")
	}
	return t, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID int64, f entity.TaskFields) (*entity.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING `+taskColumns,
		f.Title, f.Description, optionalTime(f.DueDate), f.Status, taskID, ownerID)

	t, err := scanTask(row)
	if err != nil {
		return nil, translate(err, "task", "update task")
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID int64) (int64, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, ownerID)
	if err != nil {
		return 0, translate(err, "task", "delete task")
	}
	return res.RowsAffected(), nil
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var (
		t   entity.Task
		due pgtype.Timestamptz
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return &t, nil
}

func optionalTime(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
