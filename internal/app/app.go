package app

import (
	"net/http"
	"os"

	"go-ems/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	// 1. Infrastructure
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
		return err
	}
	zap.L().Info("database connection established")

	if err := migrate(db); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		// The cache is an optimization; the API works without it.
		zap.L().Warn("redis unavailable, running without cache", zap.Error(err))
		redisClient = nil
	}

	// 2. Liveness probe
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running")
	})

	// 3. Modules & routes
	return registerModules(router, db, redisClient)
}
