package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/pkg/apperror"
)

// NewPool opens a bounded connection pool from the database settings and
// pings it once. appName is reported to Postgres as application_name.
func NewPool(ctx context.Context, db *config.Database, appName string) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(db.DatabaseURL)
	if err != nil {
		return nil, apperror.NewConfig("invalid DATABASE_URL", err)
	}
	pc.MaxConns = db.DBMaxConns
	if db.DBMinConns > 0 {
		pc.MinConns = db.DBMinConns
	}
	if db.DBMaxConnLife > 0 {
		pc.MaxConnLifetime = db.DBMaxConnLife
	}
	if appName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = appName
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, apperror.NewStorage("failed to create pool", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewStorage("failed to reach database", err)
	}
	return pool, nil
}
