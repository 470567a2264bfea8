package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hameema-git/ramzan-challange/internal/model"
	"github.com/hameema-git/ramzan-challange/internal/server"
	"github.com/hameema-git/ramzan-challange/pkg/database"
	"github.com/hameema-git/ramzan-challange/pkg/logger"
	"github.com/hameema-git/ramzan-challange/pkg/monitoring"
	"gorm.io/gorm"
)

func main() {
	// Running without a .env file is fine in containers.
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))
	monitoring.Init()

	db := database.Connect()
	if err := migrate(db); err != nil {
		logger.Log.Fatal("migration failed", logger.Err(err))
	}

	redisClient := newRedisClient()

	srv := server.NewServer(db, redisClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Log.Info("server starting on port " + port)
	if err := srv.Run(":" + port); err != nil {
		logger.Log.Fatal("server exited with error", logger.Err(err))
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.DailyRecord{},
		&model.Group{},
		&model.GroupMember{},
	)
}

// newRedisClient returns nil when REDIS_ADDR is unset; callers treat a
// nil client as "no cache, no live feed, no rate limiting".
func newRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logger.Log.Warn("REDIS_ADDR is not set, running without redis")
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}
