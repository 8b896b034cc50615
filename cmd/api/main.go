package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/casazul/real-estate-api/docs" // swagger docs

	"github.com/casazul/real-estate-api/internal/api"
	"github.com/casazul/real-estate-api/internal/infrastructure/config"
	mongodb "github.com/casazul/real-estate-api/internal/infrastructure/db/mongo"
	redisdb "github.com/casazul/real-estate-api/internal/infrastructure/db/redis"
	"github.com/casazul/real-estate-api/internal/infrastructure/storage"
	"github.com/casazul/real-estate-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Real Estate API
// @version 1.0
// @description REST backend for a real-estate listing platform: accounts, locations, property listings and favorites.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	uploader, err := storage.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		log.Fatal().Err(err).Msg("image store init")
	}

	e := api.NewRouter(cfg, db, rdb, uploader)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

// ensureIndexes creates the unique and query indexes each collection relies
// on. Index creation is idempotent, so it runs on every boot.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewLocationRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewPropertyRepository(db).EnsureIndexes(ctx)
}
