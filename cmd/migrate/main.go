package main

import (
	"log"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/model"
	"personal-notes-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for users, categories, notes and comments...")

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
