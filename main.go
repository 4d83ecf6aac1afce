// main.go
package main

import (
	"context"
	"log"
	"time"

	"biz-directory/cmd"
	"biz-directory/internal/data/repository"
	"biz-directory/internal/usecase"
	"biz-directory/internal/wire"
	"biz-directory/pkg/cache"
	"biz-directory/pkg/database"
	"biz-directory/pkg/mailer"
	"biz-directory/pkg/qrcode"
	"biz-directory/pkg/storage"
	"biz-directory/pkg/token"
	"biz-directory/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Token revocation
	denylist := cache.NewMemoryDenylist()
	redisClient, err := cache.NewRedisClient(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		denylist = cache.NewRedisDenylist(redisClient, logger)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Warn("REDIS_ADDR not set, token revocation is process-local")
	}

	// Blob storage
	blobs, err := storage.New(ctx, config.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to init storage", zap.Error(err))
	}

	opts := wire.Options{DB: db}
	if local, ok := blobs.(*storage.LocalStore); ok {
		opts.Static = local.Handler()
	}

	repos := repository.NewRepository(db, logger)

	service := usecase.NewService(repos, usecase.Deps{
		Tokens:   token.NewManager(config.JWT.Secret, config.JWT.Issuer, time.Duration(config.JWT.ExpiryMinutes)*time.Minute),
		Denylist: denylist,
		Blobs:    blobs,
		QR:       qrcode.NewRenderer(config.QR.Size),
		Notifier: mailer.New(config.Email, logger),
	}, config, logger)

	app := wire.Wiring(service, opts, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}

	// let queued mails finish before exit
	service.Mail.Wait()
	logger.Info("Server stopped")
}
