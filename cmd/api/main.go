package main

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"marketplace/internal/adapter/api"
	"marketplace/internal/adapter/api/handler"
	apimiddleware "marketplace/internal/adapter/api/middleware"
	"marketplace/internal/adapter/api/router"
	"marketplace/internal/adapter/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/infrastructure/ratelimit"
	"marketplace/internal/infrastructure/storage"
	"marketplace/internal/usecase"
	"marketplace/pkg/config"
	"marketplace/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	logger.Init(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.ServiceAccountJSON != "" {
		logger.Info("Using service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	} else if cfg.ServiceAccountPath != "" {
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			logger.Error("Service account file does not exist: %s", cfg.ServiceAccountPath)
			os.Exit(1)
		}
		logger.Info("Using service account from file: %s", cfg.ServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	} else {
		logger.Info("Using application default credentials")
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		logger.Error("Failed to create Firestore client: %v", err)
		os.Exit(1)
	}
	defer firestoreClient.Close()

	objectStorage, err := newObjectStorage(ctx, cfg, opts)
	if err != nil {
		logger.Error("Failed to initialize %s storage: %v", cfg.StorageDriver, err)
		os.Exit(1)
	}
	defer objectStorage.Close()

	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)

	listingUseCase := usecase.NewListingUseCase(listingRepo)
	messageUseCase := usecase.NewMessageUseCase(messageRepo)
	uploadUseCase := usecase.NewUploadUseCase(objectStorage, usecase.UploadOptions{
		Bucket:  cfg.StorageBucket,
		MaxSize: cfg.UploadMaxSize,
	})

	handler.Setup(listingUseCase, messageUseCase, uploadUseCase)
	handler.SetupHealthHandler(cfg.StorageDriver)

	limiter := ratelimit.NewRateLimiter()
	done := make(chan struct{})
	defer close(done)
	limiter.StartCleanupRoutine(done)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.CORS())
	e.Validator = api.NewValidator()

	router.Setup(e,
		apimiddleware.NewPrincipalMiddleware(usecase.StaticPrincipal(cfg.CurrentUserEmail)),
		apimiddleware.NewRateLimitMiddleware(limiter, cfg.RateLimitEnabled),
	)

	logger.Info("Starting server on :%s (%s, storage=%s)", cfg.ServerPort, cfg.Environment, cfg.StorageDriver)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		logger.Error("Server stopped: %v", err)
	}
}

func newObjectStorage(ctx context.Context, cfg *config.Config, opts []option.ClientOption) (service.ObjectStorage, error) {
	switch cfg.StorageDriver {
	case "minio":
		return storage.NewMinIOStorageClient(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL, cfg.StorageBucket)
	default:
		client, err := storage.NewCloudStorageClient(ctx, cfg.StoragePublicBaseURL, opts...)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureCORS(ctx, cfg.StorageBucket); err != nil {
			logger.Warn("Could not configure CORS on bucket %s: %v", cfg.StorageBucket, err)
		}
		return client, nil
	}
}
