package main

import (
	"context"
	"os"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/pkg/database"

	"github.com/fatih/color"
)

var starterCategories = []string{"Personal", "Work", "Ideas", "Travel"}

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	seeder := NewSeeder(unitofwork.NewRepositoryFactory(db, logger.NewNopLogger()))

	color.Cyan("Seeding users...")
	accounts := []struct {
		username string
		envKey   string
		role     entity.UserRole
	}{
		{username: "admin", envKey: "SEED_ADMIN_PASSWORD", role: entity.UserRoleAdmin},
		{username: "user", envKey: "SEED_USER_PASSWORD", role: entity.UserRoleUser},
	}
	for _, a := range accounts {
		password := os.Getenv(a.envKey)
		if password == "" {
			color.Yellow("%s is not set, skipping '%s'", a.envKey, a.username)
			continue
		}
		created, err := seeder.SeedUser(ctx, a.username, password, a.role)
		switch {
		case err != nil:
			color.Red("Error creating user '%s': %v", a.username, err)
		case created:
			color.Green("Created user: %s (%s)", a.username, a.role)
		default:
			color.Yellow("User '%s' already exists, skipping...", a.username)
		}
	}

	color.Cyan("Seeding categories...")
	created, err := seeder.SeedCategories(ctx, starterCategories)
	if err != nil {
		color.Red("Error seeding categories: %v", err)
		os.Exit(1)
	}
	color.Green("Created %d of %d categories", created, len(starterCategories))

	color.Green("Seeding completed!")
}
