package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/ai"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/auth"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/config"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/db"
	router "github.com/mbachaalani/freshmarket-ai-platform/internal/http"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/http/handlers"
	rl "github.com/mbachaalani/freshmarket-ai-platform/internal/http/rate_limiter"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/redissvc"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/repo"
)

// @title FreshMarket AI Platform API
// @version 1.0
// @description Inventory and recipe management with AI assistance.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load config: %v", err)
	}
	auth.SetSecret([]byte(cfg.JWT.Secret))

	go rl.StartVisitorCleanupLoop()

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()
	if err := db.Migrate(cfg.Database.URL); err != nil {
		log.Fatalf("❌ Could not run migrations: %v", err)
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Could not connect to Redis: %v", err)
	}
	defer rdb.Close()
	redisService := redissvc.NewRedisService(rdb, ctx)

	inventoryRepo := repo.NewPostgresInventoryRepository(database)
	handlers.SetInventoryRepo(inventoryRepo)
	handlers.SetRecipeRepo(repo.NewPostgresRecipeRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetRefreshStore(auth.NewRedisRefreshStore(redisService))

	client := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	handlers.SetAdvisor(ai.NewAdvisor(client, inventoryRepo, rdb))

	r := router.NewRouter()
	log.Printf("✅ Server running on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatal(err)
	}
}
