package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-task-tracker/pkg/apperror"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver errors onto application error kinds.
// what names the entity for not-found messages, op the failed action.
func translate(err error, what, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(what + " not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return apperror.NewConflict("username already exists", err)
		case strings.Contains(pgErr.ConstraintName, "email"):
			return apperror.NewConflict("email already exists", err)
		default:
			return apperror.NewConflict(what+" already exists", err)
		}
	}
	// only tasks.user_id references another table
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return apperror.NewNotFound("user not found")
	}
	return apperror.NewStorage("failed to "+op, err)
}
