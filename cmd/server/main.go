package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/assistant"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/cfg"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/middleware"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/report"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/routers"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/workspace"
)

func main() {
	conf := cfg.LoadConfig()
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	if conf.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	db := mustConnectDB(conf)
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("failed to access sql DB: %v", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&workspace.Workspace{},
		&workspace.VocabEntry{},
		&auth.Users{},
		&registry.Task{},
		&report.Report{},
	); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	var rdb *redis.Client
	if conf.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     conf.RedisAddr,
			Password: conf.RedisPassword,
		})
		defer rdb.Close()
	} else {
		logger.Println("REDIS_ADDR not set, token revocation and login throttling disabled")
	}

	var producer registry.EventProducer
	if brokers := splitCSV(conf.KafkaBrokers); len(brokers) > 0 && conf.KafkaTopic != "" {
		producer = registry.NewKafkaProducer(brokers, conf.KafkaTopic)
		defer producer.Close()
	} else {
		logger.Println("Kafka not configured, task events disabled")
	}

	workspaceService := workspace.NewWorkspaceService(workspace.NewRepository(db))
	userService := auth.NewUserService(auth.NewRepository(db), workspaceService, jwtTTL(conf.JWTTTLSeconds))
	taskService := registry.NewTaskService(registry.NewRepository(db), producer)

	var storage report.ObjectStorage
	if conf.MinioEndpoint != "" {
		storage, err = report.NewMinioStorage(
			conf.MinioEndpoint,
			conf.MinioAccessKey,
			conf.MinioSecretKey,
			conf.MinioUseSSL == "true",
			conf.MinioBucket,
		)
		if err != nil {
			logger.Fatalf("failed to init object storage: %v", err)
		}
	} else {
		logger.Println("MINIO_ENDPOINT not set, report archive disabled")
	}
	reportService := report.NewReportService(taskService, report.NewRepository(db), storage)

	var model assistant.ModelClient
	if conf.GeminiAPIKey != "" {
		model, err = assistant.NewGeminiClient(context.Background(), conf.GeminiAPIKey, conf.GeminiModel)
		if err != nil {
			logger.Fatalf("failed to init model client: %v", err)
		}
	} else {
		logger.Println("GEMINI_API_KEY not set, assistant disabled")
	}
	assistantService := assistant.NewAssistantService(taskService, model)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	router, err := routers.New(routers.Dependencies{
		Users:       userService,
		Tasks:       taskService,
		Workspaces:  workspaceService,
		Assistant:   assistantService,
		Reports:     reportService,
		JWTSecret:   []byte(conf.JWTSecret),
		Redis:       rdb,
		AuthLimiter: loginLimiter.Middleware,
		Middleware: []func(http.Handler) http.Handler{
			middleware.SecurityHeadersMiddleware,
			middleware.CORSMiddleware,
			middleware.RequestSizeLimitMiddleware(5 << 20),
		},
	})
	if err != nil {
		logger.Fatalf("failed to build router: %v", err)
	}

	httpServer := &http.Server{
		Addr:    ":" + pickPort(conf.HTTPPort, "8080"),
		Handler: router.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Println("shutdown signal received")
	case err := <-errCh:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown error: %v", err)
	}
	logger.Println("server stopped")
}

func mustConnectDB(conf cfg.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		conf.DBHost,
		conf.DBPort,
		conf.DBUser,
		conf.DBPassword,
		conf.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to init sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func jwtTTL(value string) int64 {
	ttl, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || ttl <= 0 {
		return 24 * 60 * 60
	}
	return ttl
}

func pickPort(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
