package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdaptationAtlas/data-management/internal/atlas"
	"github.com/AdaptationAtlas/data-management/internal/auth"
	"github.com/AdaptationAtlas/data-management/internal/config"
	"github.com/AdaptationAtlas/data-management/internal/logger"
	"github.com/AdaptationAtlas/data-management/internal/server"
	"github.com/AdaptationAtlas/data-management/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logg, err := logger.Init()
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	minioClient, err := storage.NewMinIOClient(cfg.Storage)
	if err != nil {
		logg.Fatal("connect storage", zap.Error(err))
	}

	store := storage.NewStore(minioClient, cfg.Storage.Bucket)
	authService := auth.NewService(cfg.Auth)
	atlasService := atlas.NewService(store, cfg.Catalog, logg)

	router := server.NewRouter(server.Dependencies{
		Config:       cfg,
		Logger:       logg,
		ObjectStore:  minioClient,
		AuthService:  authService,
		AtlasService: atlasService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("Atlas data-management API listening",
			zap.String("address", cfg.Server.Address()),
			zap.String("bucket", cfg.Storage.Bucket),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown error", zap.Error(err))
	}
}
