package main

import (
	"log"
	"os"

	"chimera-chat-be/internal/model"
	"chimera-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo account for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo users...")

	users := []struct {
		Email    string
		Password string
		FullName string
	}{
		{Email: "demo@example.com", Password: "demopassword", FullName: "Demo User"},
		{Email: "tester@example.com", Password: "testerpassword", FullName: "Test User"},
	}

	for _, u := range users {
		var existing model.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", u.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			color.Red("Error hashing password for '%s': %v", u.Email, err)
			continue
		}

		user := model.User{
			Email:        u.Email,
			PasswordHash: string(hash),
			FullName:     u.FullName,
		}
		if err := db.Create(&user).Error; err != nil {
			color.Red("Error creating user '%s': %v", u.Email, err)
		} else {
			color.Green("Created user: %s (%s)", u.FullName, u.Email)
		}
	}

	color.Cyan("Seeding completed.")
}
