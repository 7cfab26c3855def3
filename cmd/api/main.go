package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lodging-service/internal/api/http"
	"github.com/spec-kit/lodging-service/internal/api/http/handlers"
	"github.com/spec-kit/lodging-service/internal/auth"
	"github.com/spec-kit/lodging-service/internal/cache"
	"github.com/spec-kit/lodging-service/internal/config"
	"github.com/spec-kit/lodging-service/internal/events"
	"github.com/spec-kit/lodging-service/internal/messaging"
	"github.com/spec-kit/lodging-service/internal/observability"
	"github.com/spec-kit/lodging-service/internal/persistence"
	"github.com/spec-kit/lodging-service/internal/repository"
	"github.com/spec-kit/lodging-service/internal/service"
	"github.com/spec-kit/lodging-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	txManager := repository.NewTxManager(pool, repository.TxOptions{
		MaxRetries: cfg.Tx.MaxRetries,
		BaseDelay:  cfg.Tx.RetryBaseDelay(),
		Logger:     logger,
	})
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	ticketTypeRepo := repository.NewTicketTypeRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	hotelRepo := repository.NewHotelRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	publisher, err := messaging.NewPublisher(cfg.Messaging, logger)
	if err != nil {
		logger.Fatal("failed to connect rabbitmq", zap.Error(err))
	}
	var eventPublisher service.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	notificationService := service.NewNotificationService(dispatcher, eventPublisher, logger)
	workerDone := worker.StartNotificationWorker(ctx, notificationService, publisher.Close, logger)

	eligibility := service.NewEligibilityEvaluator(enrollmentRepo, ticketRepo)
	capacity := service.NewCapacityAllocator(roomRepo)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		EnrollmentRepo: enrollmentRepo,
		TicketRepo:     ticketRepo,
		TicketTypeRepo: ticketTypeRepo,
	})
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		TxManager:      txManager,
		EnrollmentRepo: enrollmentRepo,
		TicketRepo:     ticketRepo,
		PaymentRepo:    paymentRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	hotelService := service.NewHotelService(service.HotelDependencies{
		HotelRepo:   hotelRepo,
		RoomRepo:    roomRepo,
		Eligibility: eligibility,
		Cache:       hotelCache(cfg, redis),
		Logger:      logger,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		TxManager:   txManager,
		BookingRepo: bookingRepo,
		Eligibility: eligibility,
		Capacity:    capacity,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), sessionRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Users:        handlers.NewUsersHandler(authService),
		Tickets:      handlers.NewTicketsHandler(ticketService),
		Payments:     handlers.NewPaymentsHandler(paymentService),
		Hotels:       handlers.NewHotelsHandler(hotelService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Authenticate: authMiddleware.Handle,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	<-workerDone
}

// hotelCache returns nil when caching is disabled so the service reads straight from Postgres.
func hotelCache(cfg *config.Config, redis *persistence.Redis) service.HotelCache {
	ttl := cfg.Cache.HotelsTTL()
	if ttl <= 0 {
		return nil
	}
	return cache.NewHotelCache(redis.Client, ttl)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
