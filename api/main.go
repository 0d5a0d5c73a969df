package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/catalog-sync/internal/config"
	"github.com/rogerio-castellano/catalog-sync/internal/db"
	"github.com/rogerio-castellano/catalog-sync/internal/feed"
	api "github.com/rogerio-castellano/catalog-sync/internal/http"
	"github.com/rogerio-castellano/catalog-sync/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-sync/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-sync/internal/observability"
	"github.com/rogerio-castellano/catalog-sync/internal/redissvc"
	"github.com/rogerio-castellano/catalog-sync/internal/repo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	productRepo := repo.NewPostgresProductRepository(database)
	handlers.SetProductRepo(productRepo)

	var locker feed.RunLocker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()

		redisService := redissvc.NewRedisService(rdb, ctx)
		handlers.SetRedisService(redisService)
		locker = redisService
	}

	observability.Register()
	go rl.StartVisitorCleanupLoop()

	syncer := feed.NewSyncer(feed.NewClient(), productRepo, cfg.FeedURL, cfg.MaxProducts)
	scheduler := feed.NewScheduler(syncer, cfg.FetchInterval, cfg.FetchInitialDelay, locker)
	go scheduler.Start(ctx)

	r := api.NewRouter()
	log.Printf("✅ Server running on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
