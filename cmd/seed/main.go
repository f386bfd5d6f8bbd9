package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

const (
	demoEmail    = "demo@example.com"
	demoName     = "demo"
	demoPassword = "demopass"
)

var demoTasks = []model.Task{
	{Title: "Write project outline", Description: "Rough structure for the Q4 plan", Status: model.TaskStatusPending, Priority: model.PriorityHigh},
	{Title: "Review open tickets", Description: "Close out anything stale", Status: model.TaskStatusPending, Priority: model.PriorityMedium},
	{Title: "Book dentist appointment", Status: model.TaskStatusDone, Priority: model.PriorityLow},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, created, err := seedUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}
	if created {
		log.Printf("Created demo user %q (password %q)", demoName, demoPassword)
	} else {
		log.Printf("Demo user %q already exists", demoName)
	}

	seeded := 0
	for _, task := range demoTasks {
		task.OwnerID = user.ID
		if err := taskRepo.Create(ctx, &task); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			log.Fatalf("Failed to seed task %q: %v", task.Title, err)
		}
		seeded++
	}

	log.Printf("Seed completed: %d new tasks for user %q", seeded, demoName)
}

// seedUser creates the demo user if it is not already present.
func seedUser(ctx context.Context, repo repository.UserRepository) (*model.User, bool, error) {
	existing, err := repo.FindByName(ctx, demoName)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		Email:        demoEmail,
		Name:         demoName,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
