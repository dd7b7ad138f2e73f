package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/regionalsports/player-registry/registration-service/internal/adapters/cache"
	"github.com/regionalsports/player-registry/registration-service/internal/adapters/handler"
	"github.com/regionalsports/player-registry/registration-service/internal/adapters/middleware"
	"github.com/regionalsports/player-registry/registration-service/internal/adapters/repository"
	"github.com/regionalsports/player-registry/registration-service/internal/config"
	"github.com/regionalsports/player-registry/registration-service/internal/core/services"
	"github.com/regionalsports/player-registry/registration-service/internal/metrics"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("failed to ensure database schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	playerRepo := repository.NewPlayerRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	denylist := cache.NewRedisDenylist(redisClient)
	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	registrationService := services.NewRegistrationService(playerRepo)
	reportingService := services.NewReportingService(playerRepo)
	authService := services.NewAuthService(staffRepo, denylist, cfg.JWTPrivateKey, cfg.AdminSetupKey)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, denylist)

	router := handler.NewRouter(handler.RouterDeps{
		Players:        handler.NewPlayerHandler(registrationService, appMetrics),
		Admin:          handler.NewAdminHandler(registrationService, reportingService, authService, appMetrics),
		Auth:           handler.NewAuthHandler(authService, appMetrics),
		Health:         handler.NewHealthHandler(db, redisClient),
		AuthMiddleware: authMiddleware,
		AllowedOrigins: cfg.AllowedOrigins,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Starting server on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
