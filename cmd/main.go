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

	cancelReservationHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/cancel_reservation"
	createPartnerTransactionHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/create_partner_transaction"
	createRateHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/create_rate"
	createReservationHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/create_reservation"
	createSettlementHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/create_settlement"
	deactivateRateHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/deactivate_rate"
	deleteDispatchHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/delete_dispatch"
	dispatchSummaryHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/dispatch_summary"
	getAvailabilityHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/get_reservation"
	getSettlementHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/get_settlement"
	listPartnerTransactionsHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/list_partner_transactions"
	listReservationsHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/list_reservations"
	listSettlementsHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/list_settlements"
	recordDispatchHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/record_dispatch"
	recordPaymentHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/record_payment"
	recordPayoutHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/record_payout"
	requestPartnerDeletionHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/request_partner_deletion"
	resolvePartnerDeletionHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/resolve_partner_deletion"
	updateRateHandler "github.com/gezilink/GL-BookingService/internal/api/handlers/update_rate"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
	"github.com/gezilink/GL-BookingService/internal/config"
	"github.com/gezilink/GL-BookingService/internal/domain"
	activityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/activity"
	agencyRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/agency"
	capacityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/capacity"
	dispatchRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/dispatch"
	partnerRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/partner"
	rateRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/rate"
	reservationRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/reservation"
	settlementRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/settlement"
	partnerRegistryClient "github.com/gezilink/GL-BookingService/internal/integrations/partnerregistry"
	dispatchesService "github.com/gezilink/GL-BookingService/internal/service/dispatches"
	partnersService "github.com/gezilink/GL-BookingService/internal/service/partners"
	ratesService "github.com/gezilink/GL-BookingService/internal/service/rates"
	reservationsService "github.com/gezilink/GL-BookingService/internal/service/reservations"
	settlementsService "github.com/gezilink/GL-BookingService/internal/service/settlements"
	createReservationUC "github.com/gezilink/GL-BookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/gezilink/GL-BookingService/internal/usecase/get_availability"
	"github.com/gezilink/GL-BookingService/pkg/dbmetrics"
	"github.com/gezilink/GL-BookingService/pkg/logger"
	"github.com/gezilink/GL-BookingService/pkg/metrics"
	"github.com/gezilink/GL-BookingService/pkg/simpletxmanager"
	"github.com/gezilink/GL-BookingService/pkg/ttlcache"
	"github.com/gezilink/GL-BookingService/pkg/txmanager"
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

	log.Info("Starting GL-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Коллектор метрик создается всегда: бизнес-счётчики нужны сервисам.
	// Endpoint и обёртка БД включаются флагом.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	// Инициализируем клиент реестра партнёрств
	registryClient := partnerRegistryClient.NewClient(
		cfg.PartnerRegistry.URL,
		time.Duration(cfg.PartnerRegistry.Timeout)*time.Second,
		log,
	)
	log.Info("Partner registry client initialized (url=%s, timeout=%ds)",
		cfg.PartnerRegistry.URL, cfg.PartnerRegistry.Timeout)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoRepeatableRead(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		activityRepository    *activityRepo.Repository
		agencyRepository      *agencyRepo.Repository
		capacityRepository    *capacityRepo.Repository
		dispatchRepository    *dispatchRepo.Repository
		partnerRepository     *partnerRepo.Repository
		rateRepository        *rateRepo.Repository
		reservationRepository *reservationRepo.Repository
		settlementRepository  *settlementRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		activityRepository = activityRepo.NewRepository(wrappedDB)
		agencyRepository = agencyRepo.NewRepository(wrappedDB)
		capacityRepository = capacityRepo.NewRepository(wrappedDB)
		dispatchRepository = dispatchRepo.NewRepository(wrappedDB)
		partnerRepository = partnerRepo.NewRepository(wrappedDB)
		rateRepository = rateRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		settlementRepository = settlementRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		activityRepository = activityRepo.NewRepository(db)
		agencyRepository = agencyRepo.NewRepository(db)
		capacityRepository = capacityRepo.NewRepository(db)
		dispatchRepository = dispatchRepo.NewRepository(db)
		partnerRepository = partnerRepo.NewRepository(db)
		rateRepository = rateRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		settlementRepository = settlementRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кэш активностей с TTL (0 = выключен)
	activityCache := ttlcache.New[createReservationUC.ActivityCacheKey, *domain.Activity](
		time.Duration(cfg.Booking.ActivityCacheTTLSeconds) * time.Second,
	)

	// Инициализируем сервисы
	rateSvc := ratesService.NewService(rateRepository, log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		capacityRepository,
		txMgr,
		log,
		cfg.Booking.ReleaseCapacityOnCancel,
	)
	settlementSvc := settlementsService.NewService(
		settlementRepository,
		reservationRepository,
		agencyRepository,
		rateSvc,
		txMgr,
		metricsCollector,
		log,
	)
	dispatchSvc := dispatchesService.NewService(
		dispatchRepository,
		agencyRepository,
		txMgr,
		log,
	)
	partnerSvc := partnersService.NewService(
		partnerRepository,
		registryClient,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		capacityRepository,
		activityRepository,
		activityCache,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		capacityRepository,
		activityRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	createRate := createRateHandler.NewHandler(rateSvc, log)
	updateRate := updateRateHandler.NewHandler(rateSvc, log)
	deactivateRate := deactivateRateHandler.NewHandler(rateSvc, log)
	createSettlement := createSettlementHandler.NewHandler(settlementSvc, log)
	getSettlement := getSettlementHandler.NewHandler(settlementSvc, log)
	listSettlements := listSettlementsHandler.NewHandler(settlementSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(settlementSvc, log)
	recordDispatch := recordDispatchHandler.NewHandler(dispatchSvc, log)
	deleteDispatch := deleteDispatchHandler.NewHandler(dispatchSvc, log)
	recordPayout := recordPayoutHandler.NewHandler(dispatchSvc, log)
	dispatchSummary := dispatchSummaryHandler.NewHandler(dispatchSvc, log)
	createPartnerTransaction := createPartnerTransactionHandler.NewHandler(partnerSvc, log)
	listPartnerTransactions := listPartnerTransactionsHandler.NewHandler(partnerSvc, log)
	requestPartnerDeletion := requestPartnerDeletionHandler.NewHandler(partnerSvc, log)
	resolvePartnerDeletion := resolvePartnerDeletionHandler.NewHandler(partnerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание бронирования с публичного виджета тенанта
	api.HandleFunc("/tenants/{tenantId}/reservations",
		createReservation.Handle).Methods(http.MethodPost)

	// Отслеживание бронирования по публичному токену
	api.HandleFunc("/reservations/track/{token}",
		getReservation.Handle).Methods(http.MethodGet)

	// Доступность активности на дату
	api.HandleFunc("/tenants/{tenantId}/activities/{activityId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Контрактные тарифы агентств ---
	protected.HandleFunc("/agencies/{agencyId}/rates", createRate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rates/{rateId}", updateRate.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/rates/{rateId}/deactivate", deactivateRate.Handle).Methods(http.MethodPatch)

	// --- Взаиморасчёты ---
	protected.HandleFunc("/agencies/{agencyId}/settlements", createSettlement.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/settlements", listSettlements.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settlements/{settlementId}", getSettlement.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settlements/{settlementId}/payments", recordPayment.Handle).Methods(http.MethodPost)

	// --- Отгрузки и выплаты ---
	protected.HandleFunc("/dispatches", recordDispatch.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/dispatches/summary", dispatchSummary.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dispatches/{dispatchId}", deleteDispatch.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/payouts", recordPayout.Handle).Methods(http.MethodPost)

	// --- Партнёрские транзакции ---
	protected.HandleFunc("/partner-transactions", createPartnerTransaction.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/partner-transactions", listPartnerTransactions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/partner-transactions/{transactionId}/deletion-request",
		requestPartnerDeletion.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/partner-transactions/{transactionId}/deletion-resolution",
		resolvePartnerDeletion.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
