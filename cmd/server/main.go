package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"fishplant-backend/internal/archive"
	"fishplant-backend/internal/auth"
	"fishplant-backend/internal/cache"
	"fishplant-backend/internal/config"
	"fishplant-backend/internal/database"
	"fishplant-backend/internal/db"
	"fishplant-backend/internal/gas"
	"fishplant-backend/internal/handlers"
	"fishplant-backend/internal/health"
	h "fishplant-backend/internal/http"
	"fishplant-backend/internal/master"
	"fishplant-backend/internal/middleware"
	"fishplant-backend/internal/repositories"
	"fishplant-backend/internal/services"
	"fishplant-backend/migrations"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; without it the master cache is in-memory only.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] unavailable, continuing without it: %v", err)
	}

	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	queueRepo := repositories.NewQueueRepository(pool)
	draftRepo := repositories.NewDraftRepository(pool)
	closedRepo := repositories.NewClosedTicketRepository(pool)
	uploadLogRepo := repositories.NewUploadLogRepository(pool)

	// Upstream client and master source
	gasClient := gas.NewClient(
		cfg.Upstream.GasURL,
		cfg.Upstream.SpreadsheetID,
		cfg.Upstream.SheetList,
		cfg.Upstream.SheetAction,
		cfg.Upstream.DriveFolderID,
	)
	var masterSource services.MasterSource = gasClient
	if cfg.Upstream.MasterCSVURL != "" {
		masterSource = master.NewCSVSource(cfg.Upstream.MasterCSVURL)
	}

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	masterService := services.NewMasterService(masterSource)
	photoService := services.NewPhotoService(gasClient, uploadLogRepo, archive.New(cfg))
	queueService := services.NewQueueService(queueRepo, nil)
	inventoryService := services.NewInventoryService(gasClient, photoService, queueService, gasClient, closedRepo)
	intakeService := services.NewIntakeService(gasClient, queueService)
	queueService.SetDeliverer(services.NewSubmissionDispatcher(gasClient, inventoryService))
	listingService := services.NewListingService(gasClient, closedRepo)
	draftService := services.NewDraftService(draftRepo)
	exportService := services.NewExportService(listingService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	masterHandler := handlers.NewMasterHandler(masterService)
	intakeHandler := handlers.NewIntakeHandler(intakeService, draftService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, draftService)
	listingHandler := handlers.NewListingHandler(listingService)
	photoHandler := handlers.NewPhotoHandler(photoService)
	queueHandler := handlers.NewQueueHandler(queueService)
	draftHandler := handlers.NewDraftHandler(draftService)
	exportHandler := handlers.NewExportHandler(exportService)
	proxyHandler := handlers.NewProxyHandler(cfg.Upstream.GasURL)
	healthChecker := health.NewHealthChecker(pool, cache.GetClient())
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		masterHandler,
		intakeHandler,
		inventoryHandler,
		listingHandler,
		photoHandler,
		queueHandler,
		draftHandler,
		exportHandler,
		proxyHandler,
		healthHandler,
		authMiddleware,
	)

	startQueueScheduler(cfg, queueService)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// startQueueScheduler replays the offline queue on a cron schedule, plus one
// pass shortly after boot to flush anything left from the previous run.
func startQueueScheduler(cfg *config.Config, queueService *services.QueueService) {
	sync := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := queueService.SyncPending(ctx); err != nil {
			log.Printf("[Queue] scheduled sync failed: %v", err)
		}
	}

	go func() {
		time.Sleep(10 * time.Second)
		sync()
	}()

	if cfg.Queue.SyncSchedule == "" {
		log.Printf("[Queue] scheduler disabled")
		return
	}
	c := cron.New()
	if _, err := c.AddFunc(cfg.Queue.SyncSchedule, sync); err != nil {
		log.Fatalf("invalid queue sync schedule %q: %v", cfg.Queue.SyncSchedule, err)
	}
	c.Start()
	log.Printf("[Queue] scheduler running (%s)", cfg.Queue.SyncSchedule)
}
