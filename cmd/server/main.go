package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/media-catalog/internal/config"
	"github.com/iliyamo/media-catalog/internal/database"
	"github.com/iliyamo/media-catalog/internal/handler"
	"github.com/iliyamo/media-catalog/internal/queue"
	"github.com/iliyamo/media-catalog/internal/repository"
	"github.com/iliyamo/media-catalog/internal/router"
)

func main() {
	// Load .env when present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Redis is optional: nil disables list caching and makes the auth
	// limiter run in-process.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; list cache off, in-process rate limiting")
	}

	// Entry change events are optional as well.
	events := queue.NewPublisher(cfg.AMQPURL)
	if events != nil {
		go queue.StartEntryConsumer(cfg.AMQPURL)
	}

	entries := handler.NewEntryHandler(repository.NewEntryRepo(db), events)
	auth := handler.NewAuthHandler(cfg, repository.NewUserRepo(db))

	e := echo.New()
	router.RegisterRoutes(e, cfg, entries, auth, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
