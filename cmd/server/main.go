package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rpk6432/train-station-api/internal/booking"
	"github.com/rpk6432/train-station-api/internal/config"
	"github.com/rpk6432/train-station-api/internal/database"
	"github.com/rpk6432/train-station-api/internal/handler"
	"github.com/rpk6432/train-station-api/internal/middleware"
	"github.com/rpk6432/train-station-api/internal/queue"
	"github.com/rpk6432/train-station-api/internal/repository"
	"github.com/rpk6432/train-station-api/internal/router"
	queue_publisher "github.com/rpk6432/train-station-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	stationRepo := repository.NewStationRepo(db)
	routeRepo := repository.NewRouteRepo(db)
	trainTypeRepo := repository.NewTrainTypeRepo(db)
	trainRepo := repository.NewTrainRepo(db)
	crewRepo := repository.NewCrewRepo(db)
	journeyRepo := repository.NewJourneyRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	bookingSvc := booking.NewService(journeyRepo, orderRepo)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	catalogHandler := handler.NewCatalogHandler(stationRepo, routeRepo, trainTypeRepo, trainRepo, crewRepo, journeyRepo)
	orderHandler := handler.NewOrderHandler(bookingSvc, orderRepo, queue_publisher.PublishOrderCreated)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogHandler, cfg.JWTSecret, cache)
	router.RegisterOrders(e, orderHandler, cfg.JWTSecret, limiter)

	go queue.StartOrderConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
