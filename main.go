package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resort-backend/cache"
	"resort-backend/config"
	"resort-backend/controllers"
	"resort-backend/events"
	"resort-backend/repositories"
	"resort-backend/routes"
	"resort-backend/services"
	"resort-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to get database handle: %v", err)
	}
	log.Println("✅ Database connected and migrations applied")

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStart()

	var store cache.Cache = cache.NewMemoryCache()
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(startCtx, cfg.RedisURL, "resort:")
		if err != nil {
			log.Printf("⚠️ Redis unavailable, catalogue cache stays in-memory: %v", err)
		} else {
			store = cache.NewFallbackCache(rc, store)
			log.Println("✅ Catalogue cache: redis with in-memory fallback")
		}
	} else {
		log.Println("✅ Catalogue cache: in-memory")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("❌ Failed to create Kafka publisher: %v", err)
		}
		publisher = kp
		log.Printf("✅ Booking events go to Kafka topic %s", cfg.KafkaTopic)
	}

	if err := utils.RegisterValidators(); err != nil {
		log.Fatalf("❌ Failed to register validators: %v", err)
	}

	// Repositories
	bookingRepo := repositories.NewBookingRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)
	guestRepo := repositories.NewGuestRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Services
	window := services.SlotWindow{DayStart: cfg.ServiceDayStart, DayEnd: cfg.ServiceDayEnd, Granularity: cfg.SlotLength}
	bookingService := services.NewBookingService(bookingRepo, publisher)
	resourceService := services.NewResourceService(resourceRepo, bookingRepo, store, cfg.CacheTTL)
	occupancyService := services.NewOccupancyService(bookingRepo, resourceRepo)
	guestService := services.NewGuestService(guestRepo)
	paymentService := services.NewPaymentService(paymentRepo, publisher)
	adminService := services.NewAdminService(adminRepo, cfg.JWTSecret, cfg.TokenTTL)
	settingsService := services.NewSettingsService(settingsRepo, window)
	reviewService := services.NewReviewService(reviewRepo, resourceRepo, guestRepo)

	if cfg.DefaultAdminUsername != "" {
		if err := adminService.EnsureSuperAdmin(startCtx, cfg.DefaultAdminUsername, cfg.DefaultAdminPassword); err != nil {
			log.Fatalf("❌ Failed to bootstrap admin: %v", err)
		}
	}

	// Controllers
	router := routes.SetupRouter(routes.Controllers{
		Resources: controllers.NewResourceController(resourceService, bookingService, settingsService),
		Bookings:  controllers.NewBookingController(bookingService),
		Guests:    controllers.NewGuestController(guestService, bookingService),
		Payments:  controllers.NewPaymentController(paymentService),
		Occupancy: controllers.NewOccupancyController(occupancyService),
		Admins:    controllers.NewAdminController(adminService),
		Auth:      controllers.NewAuthController(adminService),
		Settings:  controllers.NewSettingsController(settingsService),
		Reviews:   controllers.NewReviewController(reviewService),
	}, adminService, routes.Options{
		CORSOrigins:      cfg.CORSOrigins,
		AllowCredentials: cfg.AllowCredentials(),
		RequestTimeout:   cfg.RequestTimeout,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️ Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}
	if err := publisher.Close(); err != nil {
		log.Printf("⚠️ Failed to close event publisher: %v", err)
	}
	if err := store.Close(); err != nil {
		log.Printf("⚠️ Failed to close cache: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("⚠️ Failed to close database: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
