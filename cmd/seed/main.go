package main

import (
	"context"
	"errors"
	"os"

	"go-ems/internal/bootstrap"
	"go-ems/internal/shared/connection"
	"go-ems/internal/user"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the initial admin account so the API is usable on a fresh
// database. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	logger, err := bootstrap.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}

	ctx := context.Background()
	users := user.NewRepository(db)

	existing, err := users.FindAdmin(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Fatal("lookup admin failed", zap.Error(err))
	}
	if existing != nil {
		logger.Info("admin user already exists", zap.String("email", existing.Email))
		return
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@company.com"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("hash password failed", zap.Error(err))
	}

	admin := &user.User{
		ID:        uuid.New(),
		FirstName: "Admin",
		LastName:  "User",
		Email:     email,
		Password:  string(hashed),
		Role:      user.RoleAdmin,
		IsActive:  true,
	}
	if err := users.Create(ctx, admin); err != nil {
		logger.Fatal("create admin failed", zap.Error(err))
	}

	logger.Info("admin user created", zap.String("email", admin.Email))
}
