package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	pginfra "github.com/oksasatya/go-task-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-task-tracker/pkg/apperror"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// seed creates a demo user with a few tasks. Running it twice is harmless.
func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg, "task-tracker-seed")
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	tasks := pginfra.NewTaskRepository(pool)

	username := "demo"
	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := &entity.User{Username: username, Email: email, PasswordHash: hash}
	if err := users.Create(ctx, u); err != nil {
		if !apperror.IsConflict(err) {
			log.Fatalf("failed to seed user: %v", err)
		}
		fmt.Printf("user %s already exists; nothing to do\n", username)
		return
	}
	fmt.Printf("seeded user: id=%d username=%s email=%s password=%s\n", u.ID, username, email, password)

	due := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Hour)
	for _, f := range []entity.TaskFields{
		{Title: "Write the weekly report", Description: "Summarise progress for the team", DueDate: &due, Status: "open"},
		{Title: "Buy groceries", Description: "Milk, eggs, bread", Status: "open"},
		{Title: "Renew passport", Description: "Book an appointment", Status: "done"},
	} {
		t := &entity.Task{}
		t.Apply(f)
		if err := tasks.Create(ctx, u.ID, t); err != nil {
			log.Fatalf("failed to seed task: %v", err)
		}
		fmt.Printf("seeded task: id=%d title=%q\n", t.ID, t.Title)
	}
}
