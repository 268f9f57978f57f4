package main

import (
	"context"
	"log"
	"time"

	"kavling.dev/assetmanager/internal/config"
	"kavling.dev/assetmanager/internal/entity"
	"kavling.dev/assetmanager/internal/server"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, continuing without it: %v", err)
			redisClient = nil
		}
	}

	srv := server.NewServer(cfg, redisClient)

	if cfg.AppEnv == "development" {
		if err := seedDemoUser(srv); err != nil {
			log.Fatalf("failed to seed demo user: %v", err)
		}
	}

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func seedDemoUser(srv *server.Server) error {
	password := "demo1234"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demoUser := &entity.User{
		ID:           uuid.New(),
		Name:         "Demo User",
		Email:        "demo@assetmanager.dev",
		PasswordHash: string(hashedPasswordBytes),
		CreatedAt:    time.Now(),
	}

	if err := srv.Users().Create(context.Background(), demoUser); err != nil {
		return err
	}

	log.Println("Demo user seeded")
	log.Println("   Email: demo@assetmanager.dev")
	log.Println("   Password: demo1234")

	return nil
}
