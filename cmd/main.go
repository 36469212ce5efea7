package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/danger_zones/internal/config"
	"github.com/shenikar/danger_zones/internal/cooldown"
	"github.com/shenikar/danger_zones/internal/corroboration"
	"github.com/shenikar/danger_zones/internal/events"
	v1 "github.com/shenikar/danger_zones/internal/handler/http/v1"
	"github.com/shenikar/danger_zones/internal/metrics"
	"github.com/shenikar/danger_zones/internal/registry"
	"github.com/shenikar/danger_zones/internal/repository"
	"github.com/shenikar/danger_zones/internal/resolver"
	"github.com/shenikar/danger_zones/internal/service"
	"github.com/shenikar/danger_zones/internal/snapshot"
	"github.com/shenikar/danger_zones/pkg/logger"
	"github.com/shenikar/danger_zones/pkg/postgres"
	redisclient "github.com/shenikar/danger_zones/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/danger_zones/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Danger Zones API
// @version 1.0
// @description Crowd-sourced danger zone reports with corroboration before incidents are confirmed.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Загрузка зон из сида
	zones, err := registry.LoadSeedFile(cfg.ZonesSeedFile)
	if err != nil {
		log.Fatalf("Failed to load zones seed: %v", err)
	}
	reg := registry.New()
	if err := reg.Seed(zones); err != nil {
		log.Fatalf("Failed to seed zone registry: %v", err)
	}
	log.WithField("zones", reg.Len()).Info("Zone registry seeded")

	// PostgreSQL необязателен, без него счетчики живут только в памяти
	var counterStore service.CounterStore
	if cfg.DatabaseURL != "" {
		log.Info("Running database migrations...")
		applied, err := postgres.Migrate(cfg.MigrationsPath, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.WithField("applied", applied).Info("Database migrations applied successfully")

		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		counterStore = repository.NewZoneCounterRepository(dbpool)
		if err := service.RestoreCounters(ctx, counterStore, reg, cfg.PromotionThreshold, log); err != nil {
			log.Fatalf("Failed to restore zone counters: %v", err)
		}
	} else {
		log.Warn("DATABASE_URL is not set, zone counters will not survive a restart")
	}

	// Инициализация Redis клиента
	var redisClient *redis.Client
	if cfg.RedisRequired() {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	// Хранилище cooldown
	var tracker cooldown.Tracker
	switch cfg.CooldownBackend {
	case config.CooldownBackendRedis:
		tracker = cooldown.NewRedisTracker(redisClient, cfg.ReportCooldown)
	default:
		memTracker := cooldown.NewMemoryTracker()
		cooldown.NewJanitor(memTracker, cfg.ReportCooldown, cfg.CooldownSweepInterval, log).Start(ctx)
		tracker = memTracker
	}
	log.WithField("backend", cfg.CooldownBackend).Info("Cooldown tracker initialized")

	// Издатели событий
	var publishers events.MultiPublisher
	if cfg.EventsRedisEnabled {
		publishers = append(publishers, events.NewRedisPublisher(redisClient))
		if cfg.WebhookURL != "" {
			events.NewWebhookWorker(redisClient, log, cfg).Start(ctx)
		}
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.WithError(err).Error("Failed to close Kafka writer")
			}
		}()
		publishers = append(publishers, kafkaPublisher)
		log.WithField("topic", cfg.KafkaTopic).Info("Kafka zone event publisher enabled")
	}
	var publisher events.Publisher
	if len(publishers) > 0 {
		publisher = publishers
	}

	// Хранилище снимков
	var archiver service.SnapshotArchiver
	if cfg.SnapshotsEnabled() {
		minioClient, err := snapshot.NewMinioClient(cfg)
		if err != nil {
			log.Fatalf("Failed to create MinIO client: %v", err)
		}
		snapshotArchiver := snapshot.NewArchiver(minioClient, cfg.MinioBucket)
		if err := snapshotArchiver.EnsureBucket(ctx); err != nil {
			log.Fatalf("Failed to prepare snapshot bucket: %v", err)
		}
		archiver = snapshotArchiver
		log.WithField("bucket", cfg.MinioBucket).Info("Snapshot archiving enabled")
	}

	// Инициализация сервисов
	engine := corroboration.NewEngine(reg, tracker,
		corroboration.WithThreshold(cfg.PromotionThreshold),
		corroboration.WithCooldown(cfg.ReportCooldown),
	)
	zoneService := service.NewZoneService(service.Dependencies{
		Registry:  reg,
		Engine:    engine,
		Tracker:   tracker,
		Index:     resolver.NewIndex(reg.List()),
		Hub:       events.NewHub(),
		Store:     counterStore,
		Publisher: publisher,
		Archiver:  archiver,
	}, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(zoneService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики Prometheus
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Запросы наследуют ctx, чтобы SSE подписки завершались при остановке
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// Останавливаем фоновые воркеры и закрываем SSE подписки
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
