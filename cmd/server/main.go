package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fileHasher/cache"
	"fileHasher/config"
	"fileHasher/database"
	"fileHasher/executor"
	"fileHasher/handlers"
	"fileHasher/hasher"
	"fileHasher/kafka"
	"fileHasher/middleware"
	"fileHasher/registry"
	"fileHasher/service"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Hash service starting",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	var statusCache *cache.StatusCache
	if cfg.RedisAddr != "" {
		redisCache, err := database.ConnectCache(cfg.RedisAddr)
		if err != nil {
			logger.Warn("Redis unavailable, status mirror disabled", zap.Error(err))
		} else {
			defer redisCache.Close()
			statusCache = cache.NewStatusCache(redisCache)
		}
	}

	var producer kafka.Producer
	if cfg.KafkaBrokers != "" {
		producer, err = kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","))
		if err != nil {
			logger.Warn("Kafka unavailable, task events disabled", zap.Error(err))
			producer = nil
		} else {
			defer producer.Close()
		}
	}

	engine := hasher.NewEngine(logger)
	reg := registry.NewMemoryRegistry()
	pool := executor.NewPool(cfg.WorkerCount)

	taskService := service.NewTaskService(
		reg,
		engine,
		pool,
		statusCache,
		producer,
		cfg.KafkaTopic,
		cfg.DefaultChunkSize,
		logger,
	)

	taskHandler := handlers.NewTaskHandler(taskService, cfg.UploadDir, cfg.MaxFileSize, cfg.DefaultChunkSize, logger)
	hashHandler := handlers.NewHashHandler(taskService, cfg.UploadDir, cfg.MaxFileSize, cfg.DefaultChunkSize, logger)

	r := chi.NewRouter()
	r.Use(middleware.TraceID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1/hash", func(r chi.Router) {
		r.Get("/", hashHandler.Root)
		r.Get("/algorithms", hashHandler.Algorithms)
		r.Post("/file", hashHandler.File)
		r.Post("/files", hashHandler.Files)
		r.Post("/path", hashHandler.Path)
		r.Post("/verify", hashHandler.Verify)
		r.Post("/batch", taskHandler.SubmitDirectory)
		r.Post("/upload/batch", taskHandler.SubmitUpload)
		r.Get("/tasks/{taskID}", taskHandler.Status)
		r.Get("/tasks/{taskID}/results", taskHandler.Results)
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server started", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	pool.Wait()
	logger.Info("Stopped")
}
