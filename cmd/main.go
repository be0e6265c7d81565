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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	checkAvailabilityHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/check_availability"
	changeStatusHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/change_reservation_status"
	createReservationHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/create_reservation"
	createTableHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/create_table"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_available_slots"
	getBookingPolicyHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_booking_policy"
	getReservationHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_reservation"
	healthHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/health"
	listReservationsHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/list_reservations"
	listTablesHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/list_tables"
	reassignTableHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/reassign_table"
	updateBookingPolicyHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/update_booking_policy"
	updateReservationHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/update_reservation"
	updateTableHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/update_table"
	updateTableLayoutHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/update_table_layout"
	"github.com/m04kA/SMC-TableBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TableBookingService/internal/config"
	availabilityCache "github.com/m04kA/SMC-TableBookingService/internal/infra/cache/availability"
	policyRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/table"
	customerServiceClient "github.com/m04kA/SMC-TableBookingService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-TableBookingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-TableBookingService/internal/service/availability"
	"github.com/m04kA/SMC-TableBookingService/internal/service/notify"
	policyService "github.com/m04kA/SMC-TableBookingService/internal/service/policy"
	reservationsService "github.com/m04kA/SMC-TableBookingService/internal/service/reservations"
	tablesService "github.com/m04kA/SMC-TableBookingService/internal/service/tables"
	createReservationUC "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_reservation"
	reassignTableUC "github.com/m04kA/SMC-TableBookingService/internal/usecase/reassign_table"
	updateReservationUC "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_reservation"
	updateTableLayoutUC "github.com/m04kA/SMC-TableBookingService/internal/usecase/update_table_layout"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/logger"
	"github.com/m04kA/SMC-TableBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/txmanager"
)

// AvailabilityCache кеш снимков доступности (Redis или заглушка)
type AvailabilityCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

// EventPublisher издатель событий брони (RabbitMQ или заглушка)
type EventPublisher interface {
	Publish(ctx context.Context, event notifications.Event) error
	Close() error
}

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

	log.Info("Starting SMC-TableBookingService...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid restaurant timezone: %v", err)
	}
	log.Info("Restaurant timezone: %s", location)

	// Метрики (nil = выключены, все вызовы безопасны)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кеш доступности
	var cache AvailabilityCache = availabilityCache.Nop{}
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, availability cache disabled: %v", cfg.Redis.Addr, err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			cache = availabilityCache.New(redisClient, cfg.Redis.Prefix, cfg.Redis.TTL())
			log.Info("Availability cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
		}
		cancel()
	}

	// События для сервиса рассылок
	var publisher EventPublisher = notifications.NopPublisher{}
	if cfg.Broker.Enabled() {
		publisher = notifications.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue, log)
		log.Info("Reservation events will be published to queue %s", cfg.Broker.Queue)
	}

	// Интеграционные клиенты
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		cfg.CustomerService.Token,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CustomerService=%s timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Репозитории
	tableRepository := tableRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)

	// Сервисы
	policySvc := policyService.NewService(policyRepository, cfg.Booking.DefaultPolicy(), log)
	notifier := notify.NewNotifier(publisher, cache, log)
	engine := availability.NewEngine(
		tableRepository,
		reservationRepository,
		policySvc,
		cache,
		cfg.Booking.RecommendationLimit,
		log,
	)
	tablesSvc := tablesService.NewService(tableRepository, cache, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, txMgr, notifier, log)

	// Use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		engine,
		policySvc,
		customerClient,
		txMgr,
		notifier,
		metricsCollector,
		location,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		engine,
		policySvc,
		txMgr,
		notifier,
		metricsCollector,
		location,
		log,
	)
	reassignTableUseCase := reassignTableUC.NewUseCase(
		reservationRepository,
		engine,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)
	updateTableLayoutUseCase := updateTableLayoutUC.NewUseCase(
		tableRepository,
		txMgr,
		cfg.Booking.CollisionThreshold,
		log,
	)

	// Handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(engine, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(engine, location, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, location, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	reassignTable := reassignTableHandler.NewHandler(reassignTableUseCase, log)
	changeStatus := changeStatusHandler.NewHandler(reservationsSvc, log)
	listTables := listTablesHandler.NewHandler(tablesSvc, log)
	createTable := createTableHandler.NewHandler(tablesSvc, log)
	updateTable := updateTableHandler.NewHandler(tablesSvc, log)
	updateTableLayout := updateTableLayoutHandler.NewHandler(updateTableLayoutUseCase, log)
	getBookingPolicy := getBookingPolicyHandler.NewHandler(policySvc, log)
	updateBookingPolicy := updateBookingPolicyHandler.NewHandler(policySvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (виджет бронирования)
	// ============================================================

	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-policy", getBookingPolicy.Handle).Methods(http.MethodGet)

	var intake http.Handler = http.HandlerFunc(createReservation.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, 10*time.Minute, log)
		intake = limiter.Limit(intake)
		log.Info("Rate limit on reservation intake: %d/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	api.Handle("/reservations", intake).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (JWT, роль staff и выше)
	// ============================================================

	auth := middleware.JWTAuth(cfg.Auth.JWTSecret, log)

	staff := api.PathPrefix("").Subrouter()
	staff.Use(auth, middleware.RequireRole(middleware.RoleStaff, middleware.RoleManager, middleware.RoleAdmin))

	staff.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/reservations/{id:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/reservations/{id:[0-9]+}", updateReservation.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/reservations/{id:[0-9]+}/table", reassignTable.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/reservations/{id:[0-9]+}/status", changeStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/tables", listTables.Handle).Methods(http.MethodGet)

	// ============================================================
	// MANAGER ROUTES (схема зала, справочник столов, политика)
	// ============================================================

	manager := api.PathPrefix("").Subrouter()
	manager.Use(auth, middleware.RequireRole(middleware.RoleManager, middleware.RoleAdmin))

	manager.HandleFunc("/tables", createTable.Handle).Methods(http.MethodPost)
	manager.HandleFunc("/tables/layout", updateTableLayout.Handle).Methods(http.MethodPut)
	manager.HandleFunc("/tables/{id:[0-9]+}", updateTable.Handle).Methods(http.MethodPut)
	manager.HandleFunc("/booking-policy", updateBookingPolicy.Handle).Methods(http.MethodPut)

	// CORS для виджета на сайте ресторана
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         600,
	}).Handler(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := publisher.Close(); err != nil {
		log.Warn("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
