// File: gigbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gigbook/config"
	"gigbook/cron"
	"gigbook/database"
	bookingRepo "gigbook/database/repository/booking"
	providerRepo "gigbook/database/repository/provider"
	ratingRepo "gigbook/database/repository/rating"
	"gigbook/handlers"
	"gigbook/middleware"
	"gigbook/routes"
	"gigbook/services/availability"
	"gigbook/services/booking"
	"gigbook/services/provider"
	"gigbook/services/rating"
	"gigbook/services/tasks"
	"gigbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()
	rateRepo := ratingRepo.NewMongoRatingRepo()

	// async task queue for payment-window expiry.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueue,
	})
	defer asynqClient.Close()

	// services.
	availabilitySvc := &availability.DefaultAvailabilityService{
		Repo:     provRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.SlotCacheTTLSeconds) * time.Second,
	}

	providerSvc := &provider.DefaultProviderService{
		Repo: provRepo,
	}

	ratingSvc := &rating.DefaultRatingService{
		Repo:         rateRepo,
		ProviderRepo: provRepo,
	}

	bookingSvc := &booking.DefaultBookingService{
		Repo:         bookRepo,
		ProviderRepo: provRepo,
		Locker: &booking.RedisSlotLocker{
			Client: utils.GetLockClient(),
			TTL:    time.Duration(config.AppConfig.BookingLockTTLMillis) * time.Millisecond,
		},
		Verifier:          booking.StripePaymentVerifier{},
		RatingSvc:         ratingSvc,
		Expiry:            &tasks.AsynqExpiryScheduler{Client: asynqClient},
		ServiceFeePercent: config.AppConfig.ServiceFeePercent,
		PaymentWindow:     time.Duration(config.AppConfig.PaymentWindowHours) * time.Hour,
	}

	cron.InitExpiryWorker(bookingSvc)

	// handlers.
	providerHandler := handlers.NewProviderHandler(providerSvc, availabilitySvc, bookingSvc)
	bookingHandler := handlers.NewBookingHandler(bookingSvc)
	ratingHandler := handlers.NewRatingHandler(ratingSvc)

	routes.RegisterRoutes(router, providerHandler, bookingHandler, ratingHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("gigbook listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
	logger.Info("server exited")
}
