package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/rajtharani77/BlackBuck-pro/db"
	"github.com/rajtharani77/BlackBuck-pro/internal/auth"
	"github.com/rajtharani77/BlackBuck-pro/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	database, err := db.Connect(dsn)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedAdmin(database); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	tokens, err := auth.NewTokenService(os.Getenv("JWT_SECRET"))

	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	r := router.New(database, tokens, os.Getenv("DOMAIN"))

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "5000"
		log.Println("PORT not set, defaulting to 5000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
