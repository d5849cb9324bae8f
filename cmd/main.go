package main

import (
	"context"
	"database/sql"
	"errors"
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

	aggregateDayHandler "github.com/m04kA/SMC-SeatLive/internal/api/handlers/aggregate_day"
	getRecentOccupancyHandler "github.com/m04kA/SMC-SeatLive/internal/api/handlers/get_recent_occupancy"
	getSeatStatusHandler "github.com/m04kA/SMC-SeatLive/internal/api/handlers/get_seat_status"
	getWeekAggregatedHandler "github.com/m04kA/SMC-SeatLive/internal/api/handlers/get_week_aggregated"
	getWeekDetailHandler "github.com/m04kA/SMC-SeatLive/internal/api/handlers/get_week_detail"
	"github.com/m04kA/SMC-SeatLive/internal/api/middleware"
	"github.com/m04kA/SMC-SeatLive/internal/config"
	"github.com/m04kA/SMC-SeatLive/internal/domain"
	statisticsCache "github.com/m04kA/SMC-SeatLive/internal/infra/cache/statistics"
	occupancyRepo "github.com/m04kA/SMC-SeatLive/internal/infra/storage/occupancy"
	statisticsRepo "github.com/m04kA/SMC-SeatLive/internal/infra/storage/statistics"
	"github.com/m04kA/SMC-SeatLive/internal/integrations/realtimedb"
	"github.com/m04kA/SMC-SeatLive/internal/integrations/seatfeed"
	"github.com/m04kA/SMC-SeatLive/internal/scheduler"
	seatsService "github.com/m04kA/SMC-SeatLive/internal/service/seats"
	statisticsService "github.com/m04kA/SMC-SeatLive/internal/service/statistics"
	aggregateDayUC "github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_day"
	aggregateWeekUC "github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_week"
	getRecentOccupancyUC "github.com/m04kA/SMC-SeatLive/internal/usecase/get_recent_occupancy"
	"github.com/m04kA/SMC-SeatLive/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeatLive/pkg/logger"
	"github.com/m04kA/SMC-SeatLive/pkg/metrics"
	"github.com/m04kA/SMC-SeatLive/pkg/txmanager"
)

// statisticsStore хранилище detail_data / aggregated_data (postgres, realtimedb или кэш над ними)
type statisticsStore interface {
	WriteDetail(ctx context.Context, week domain.WeekKey, day time.Time, records []domain.DetailRecord) error
	ReadAllDetail(ctx context.Context, week domain.WeekKey) (map[string][]domain.DetailRecord, error)
	WriteAggregated(ctx context.Context, week domain.WeekKey, records []domain.AggregatedRecord) error
	ReadAggregated(ctx context.Context, week domain.WeekKey) ([]domain.AggregatedRecord, error)
}

// seatStatusReader источник /seat_status
type seatStatusReader interface {
	GetSeatStatuses(ctx context.Context) ([]domain.SeatStatus, error)
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

	log.Info("Starting SMC-SeatLive...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Grid.Location()
	if err != nil {
		log.Fatal("Invalid grid timezone: %v", err)
	}
	grid := cfg.Grid.Domain()

	// Инициализируем метрики (если включены)
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

	// Репозитории и transaction manager (с метриками или без)
	var (
		eventRepository *occupancyRepo.Repository
		statsRepository *statisticsRepo.Repository
		txMgr           *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		eventRepository = occupancyRepo.NewRepository(wrappedDB)
		statsRepository = statisticsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		eventRepository = occupancyRepo.NewRepository(db)
		statsRepository = statisticsRepo.NewRepository(db)
		txMgr = txmanager.FromSQL(db)
	}

	// Хранилище статистики
	var (
		store       statisticsStore  = statsRepository
		seatsSource seatStatusReader = eventRepository
	)

	if cfg.Storage.Driver == config.StorageDriverRealtimeDB {
		rtdb := realtimedb.NewClient(
			cfg.RealtimeDB.URL,
			cfg.RealtimeDB.AuthToken,
			time.Duration(cfg.RealtimeDB.Timeout)*time.Second,
			location,
			log,
		)
		store = rtdb
		seatsSource = rtdb
		log.Info("Statistics store: realtimedb (%s, timeout=%ds)", cfg.RealtimeDB.URL, cfg.RealtimeDB.Timeout)
	} else {
		log.Info("Statistics store: postgres")
	}

	// Redis кэш только для чтения через API; пересчеты работают с хранилищем напрямую
	var (
		readStore statisticsStore = store
		cache     *statisticsCache.Cache
	)
	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable (%s): %v; requests will fall back to the store", cfg.Cache.Addr, err)
		}
		cancel()

		cache = statisticsCache.NewCache(store, rdb, time.Duration(cfg.Cache.TTL)*time.Second, cfg.Cache.Prefix, log)
		readStore = cache
		log.Info("Statistics cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTL)
	}

	// Инициализируем сервисы
	seatSvc := seatsService.NewService(
		seatsSource,
		eventRepository,
		txMgr,
		metricsCollector,
		log,
	)
	statisticsSvc := statisticsService.NewService(readStore, grid, log)

	// Инициализируем use cases
	aggregateWeekUseCase := aggregateWeekUC.NewUseCase(
		store,
		txMgr,
		metricsCollector,
		aggregateWeekUC.Settings{ProfileWeeks: cfg.Statistics.ProfileWeeks},
		log,
	)

	aggregateDayUseCase := aggregateDayUC.NewUseCase(
		eventRepository,
		store,
		aggregateWeekUseCase,
		txMgr,
		metricsCollector,
		aggregateDayUC.Settings{
			Grid:       grid,
			TotalSeats: cfg.Statistics.TotalSeats,
			Location:   location,
		},
		log,
	)

	if cache != nil {
		aggregateDayUseCase.SetWeekCache(cache)
	}

	getRecentOccupancyUseCase := getRecentOccupancyUC.NewUseCase(
		readStore,
		getRecentOccupancyUC.Settings{
			DefaultDays: cfg.Statistics.RecentDays,
			Grid:        grid,
			Location:    location,
		},
		log,
	)

	// Фоновые задачи
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	var (
		sched        *scheduler.Scheduler
		consumerDone chan struct{}
	)

	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(aggregateDayUseCase, cfg.Scheduler.RunAt, location, log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		sched.Start(bgCtx)
		log.Info("Daily aggregation scheduled at %s (%s)", cfg.Scheduler.RunAt, location)
	}

	if cfg.SeatFeed.Enabled {
		consumer := seatfeed.NewConsumer(
			cfg.SeatFeed.URL,
			cfg.SeatFeed.Queue,
			cfg.SeatFeed.Prefetch,
			seatSvc,
			metricsCollector,
			log,
		)
		consumerDone = make(chan struct{})
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Seat feed consumer stopped: %v", err)
			}
		}()
		log.Info("Seat feed consumer started (queue=%s)", cfg.SeatFeed.Queue)
	}

	// Инициализируем handlers
	getSeatStatus := getSeatStatusHandler.NewHandler(seatSvc, log)
	getWeekDetail := getWeekDetailHandler.NewHandler(statisticsSvc, log)
	getWeekAggregated := getWeekAggregatedHandler.NewHandler(statisticsSvc, log)
	getRecentOccupancy := getRecentOccupancyHandler.NewHandler(getRecentOccupancyUseCase, log)
	aggregateDay := aggregateDayHandler.NewHandler(aggregateDayUseCase, location, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Текущее состояние мест
	api.HandleFunc("/seats/status", getSeatStatus.Handle).Methods(http.MethodGet)

	// Статистика по неделям
	api.HandleFunc("/statistics/weeks/{week}/detail", getWeekDetail.Handle).Methods(http.MethodGet)
	api.HandleFunc("/statistics/weeks/{week}/aggregated", getWeekAggregated.Handle).Methods(http.MethodGet)

	// Загрузка за последние дни
	api.HandleFunc("/statistics/recent", getRecentOccupancy.Handle).Methods(http.MethodGet)

	// Ручной пересчет дня
	api.HandleFunc("/statistics/days/{date}/aggregate", aggregateDay.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновые задачи
	stopBackground()
	if sched != nil {
		sched.Stop()
		log.Info("Scheduler stopped")
	}
	if consumerDone != nil {
		<-consumerDone
		log.Info("Seat feed consumer stopped")
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
