package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/rentalall/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/rentalall/booking-service/internal/api/handlers/create_booking"
	createReviewHandler "github.com/rentalall/booking-service/internal/api/handlers/create_review"
	getBookingHandler "github.com/rentalall/booking-service/internal/api/handlers/get_booking"
	getOccupiedSlotsHandler "github.com/rentalall/booking-service/internal/api/handlers/get_occupied_slots"
	getUserBookingsHandler "github.com/rentalall/booking-service/internal/api/handlers/get_user_bookings"
	getUserReviewsHandler "github.com/rentalall/booking-service/internal/api/handlers/get_user_reviews"
	getVenueBookingsHandler "github.com/rentalall/booking-service/internal/api/handlers/get_venue_bookings"
	getVenueReviewsHandler "github.com/rentalall/booking-service/internal/api/handlers/get_venue_reviews"
	initiatePaymentHandler "github.com/rentalall/booking-service/internal/api/handlers/initiate_payment"
	moderateReviewHandler "github.com/rentalall/booking-service/internal/api/handlers/moderate_review"
	settlePaymentHandler "github.com/rentalall/booking-service/internal/api/handlers/settle_payment"
	"github.com/rentalall/booking-service/internal/api/middleware"
	"github.com/rentalall/booking-service/internal/config"
	bookingRepo "github.com/rentalall/booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/rentalall/booking-service/internal/infra/storage/payment"
	reviewRepo "github.com/rentalall/booking-service/internal/infra/storage/review"
	userServiceClient "github.com/rentalall/booking-service/internal/integrations/userservice"
	venueServiceClient "github.com/rentalall/booking-service/internal/integrations/venueservice"
	bookingsService "github.com/rentalall/booking-service/internal/service/bookings"
	reviewsService "github.com/rentalall/booking-service/internal/service/reviews"
	createBookingUC "github.com/rentalall/booking-service/internal/usecase/create_booking"
	createReviewUC "github.com/rentalall/booking-service/internal/usecase/create_review"
	getOccupiedSlotsUC "github.com/rentalall/booking-service/internal/usecase/get_occupied_slots"
	initiatePaymentUC "github.com/rentalall/booking-service/internal/usecase/initiate_payment"
	settlePaymentUC "github.com/rentalall/booking-service/internal/usecase/settle_payment"
	"github.com/rentalall/booking-service/pkg/logger"
	"github.com/rentalall/booking-service/pkg/metrics"
	"github.com/rentalall/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Локальная временная зона сервиса (слотовая сетка считается в ней)
	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	log.Info("Service timezone: %s", cfg.Server.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)
	reviewRepository := reviewRepo.NewRepository(db)

	// Менеджер транзакций: повторы при конфликте сериализации учитываются в метриках
	var txOpts []txmanager.Option
	if metricsCollector != nil {
		txOpts = append(txOpts, txmanager.WithOnRetry(func(attempt int) {
			metricsCollector.IncTxRetries()
		}))
	}
	txMgr := txmanager.NewTransactionManager(db, txOpts...)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueClient,
		userClient,
		bookingsService.Policy{
			CancellationNoticeMinutes: cfg.Booking.CancellationNoticeMinutes,
		},
		log,
	)
	reviewSvc := reviewsService.NewService(
		reviewRepository,
		venueClient,
		userClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		venueClient,
		txMgr,
		location,
		createBookingUC.Policy{
			MinDurationHours: cfg.Booking.MinDurationHours,
			MaxDurationHours: cfg.Booking.MaxDurationHours,
		},
		log,
	)
	getOccupiedSlotsUseCase := getOccupiedSlotsUC.NewUseCase(
		bookingRepository,
		venueClient,
		log,
	)
	initiatePaymentUseCase := initiatePaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		userClient,
		txMgr,
		log,
	)
	settlePaymentUseCase := settlePaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		txMgr,
		log,
	)
	createReviewUseCase := createReviewUC.NewUseCase(
		bookingRepository,
		reviewRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	getOccupiedSlots := getOccupiedSlotsHandler.NewHandler(getOccupiedSlotsUseCase, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, metricsCollector, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, location, log)
	initiatePayment := initiatePaymentHandler.NewHandler(initiatePaymentUseCase, log)
	settlePayment := settlePaymentHandler.NewHandler(settlePaymentUseCase, metricsCollector, log)
	createReview := createReviewHandler.NewHandler(createReviewUseCase, log)
	getVenueReviews := getVenueReviewsHandler.NewHandler(reviewSvc, log)
	getUserReviews := getUserReviewsHandler.NewHandler(reviewSvc, log)
	moderateReview := moderateReviewHandler.NewHandler(reviewSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятые слоты площадки на дату
	api.HandleFunc("/venues/{venueId}/occupied-slots",
		getOccupiedSlots.Handle).Methods(http.MethodGet)

	// Отзывы площадки (анонимно видны только одобренные)
	api.HandleFunc("/venues/{venueId}/reviews",
		getVenueReviews.Handle).Methods(http.MethodGet)

	// Callback платёжного провайдера (межсервисный вызов)
	api.HandleFunc("/internal/payments/{paymentId}/settle",
		settlePayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/bookings/{bookingId}/payments", initiatePayment.Handle).Methods(http.MethodPost)

	// --- Отзывы ---
	protected.HandleFunc("/bookings/{bookingId}/reviews", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/reviews", getUserReviews.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reviews/{reviewId}/moderate", moderateReview.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
