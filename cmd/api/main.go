package main

import (
	"context"
	"log"
	"time"

	"delivery-tracker/internal/core/auth"
	"delivery-tracker/internal/core/config"
	"delivery-tracker/internal/core/geo"
	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/core/server"
	analyticshandler "delivery-tracker/internal/features/analytics/handler"
	analyticsservice "delivery-tracker/internal/features/analytics/service"
	deliveryadapter "delivery-tracker/internal/features/deliveries/adapters"
	deliveryhandler "delivery-tracker/internal/features/deliveries/handler"
	deliveryservice "delivery-tracker/internal/features/deliveries/service"
	routinghandler "delivery-tracker/internal/features/routing/handler"
	routingservice "delivery-tracker/internal/features/routing/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title Delivery Tracker API
// @version 1.0
// @description Route planning, real-time delivery tracking, and per-RDC analytics for last-mile operations.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		l.Fatal("Invalid REDIS_URL", zap.Error(err))
	}
	client := redis.NewClient(opts)
	defer client.Close()

	store := deliveryadapter.NewRedisDeliveryStore(client)
	publisher := deliveryadapter.NewRedisEventPublisher(client)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified", zap.String("addr", opts.Addr))

	fence := geo.Fence{
		MinLat: cfg.Geofence.MinLat,
		MaxLat: cfg.Geofence.MaxLat,
		MinLon: cfg.Geofence.MinLon,
		MaxLon: cfg.Geofence.MaxLon,
	}

	tracker := deliveryservice.NewTracker(store, publisher, fence,
		time.Duration(cfg.LockWaitSeconds)*time.Second)
	deliveryHdl := deliveryhandler.NewDeliveryHandler(tracker)

	routeHdl := routinghandler.NewRouteHandler(routingservice.NewOptimizer())
	analyticsHdl := analyticshandler.NewAnalyticsHandler(analyticsservice.NewAggregator(store))

	srv := server.New(cfg)

	// Register Routes. Specific paths come before the /:deliveryId wildcard.
	srv.App.Post("/optimize-route",
		auth.RequireRole(auth.RoleOperator, auth.RoleAdmin), routeHdl.OptimizeRoute)
	srv.App.Get("/driver/:driverId",
		auth.RequireSelfOrAdmin("driverId"), deliveryHdl.DriverDeliveries)
	srv.App.Get("/analytics/:rdcId",
		auth.RequireRole(auth.RoleOperator, auth.RoleAdmin), analyticsHdl.GetSummary)

	srv.App.Post("/",
		auth.RequireRole(auth.RoleOperator, auth.RoleAdmin), deliveryHdl.CreateDelivery)
	srv.App.Get("/:deliveryId", deliveryHdl.GetTracking)
	srv.App.Post("/:deliveryId/location",
		auth.RequireRole(auth.RoleDriver, auth.RoleAdmin), deliveryHdl.UpdateLocation)
	srv.App.Post("/:deliveryId/complete",
		auth.RequireRole(auth.RoleDriver, auth.RoleAdmin), deliveryHdl.CompleteDelivery)
	srv.App.Post("/:deliveryId/fail",
		auth.RequireRole(auth.RoleDriver, auth.RoleAdmin), deliveryHdl.FailDelivery)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
