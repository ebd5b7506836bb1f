package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, u.Username, optionalText(u.PasswordHash), optionalText(u.Email))

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return translate(err, "user", "create user")
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, email, created_at
		FROM users
		WHERE username = $1
	`, username)

	u, err := scanUser(row)
	if err != nil {
		return nil, translate(err, "user", "get user")
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, password_hash, email, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, translate(err, "user", "list users")
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.User, error) {
		u, err := scanUser(row)
		if err != nil {
			return entity.User{}, err
		}
		return *u, nil
	})
	if err != nil {
		return nil, translate(err, "user", "list users")
	}
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u     entity.User
		hash  pgtype.Text
		email pgtype.Text
	)
	if err := row.Scan(&u.ID, &u.Username, &hash, &email, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.PasswordHash = hash.String
	u.Email = email.String
	return &u, nil
}

// optionalText stores empty strings as NULL so unique constraints ignore them.
func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

var _ repository.UserRepository = (*UserRepository)(nil)
