package config

import (
	"fmt"
	"os"

	"github.com/PepsTwist/app-nutricionista/logger"
	"github.com/PepsTwist/app-nutricionista/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init loads .env and verifies the token signing secret. A missing secret
// kills the process here rather than failing every request later.
func Init() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on process environment")
	}

	if os.Getenv("JWT_SECRET") == "" {
		logger.Fatal("JWT_SECRET is not set")
	}
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Anamnesis{},
		&models.DietPlan{},
		&models.Meal{},
		&models.MealItem{},
		&models.WeightRecord{},
	)
	if err != nil {
		logger.Fatal("auto migration failed", zap.Error(err))
	}
}

// Port returns the HTTP listen port, defaulting to 3000.
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "3000"
}
