package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"article-hub/internal/auth"
	"article-hub/internal/config"
	apphttp "article-hub/internal/http"
	"article-hub/internal/repository/sqlite"
	"article-hub/internal/seed"
	"article-hub/internal/service"
	"article-hub/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	store := sqlite.NewStore(db)
	if err := store.Init(ctx); err != nil {
		logger.Fatalf("init store: %v", err)
	}

	files, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.TokenTTL())
	if err != nil {
		logger.Fatalf("setup tokens: %v", err)
	}

	userService := service.NewUserService(store.Users)

	if cfg.Seed.Enabled {
		seeder := seed.New(userService, store.Categories, store.Articles, files, logger)
		if _, err := seeder.Run(ctx, seed.Options{
			AdminPassword: cfg.Seed.AdminPassword,
			UserPassword:  cfg.Seed.UserPassword,
		}); err != nil {
			logger.Fatalf("seed database: %v", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Services{
		Users:      userService,
		Categories: service.NewCategoryService(store.Categories),
		Articles:   service.NewArticleService(store.Articles, store.Categories, files),
		Engagement: service.NewEngagementService(store.Users, store.Articles, store.Activities, files),
		About:      service.NewAboutService(store.About),
	}, tokens, logger, cfg.Upload.MaxBytes)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.FileStore, error) {
	if cfg.Storage.Driver != config.StorageS3 {
		logger.Infof("storing uploads in %s", cfg.Upload.Dir)
		return storage.NewLocalStore(cfg.Upload.Dir)
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Store(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix)
}
