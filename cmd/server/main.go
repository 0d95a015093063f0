// Package main initializes and starts the filebox HTTP server, setting
// up configuration, logging, the database, the token store, blob
// storage, repositories, services, and handlers.
package main

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/avolkov/filebox/internal/blob"
	"github.com/avolkov/filebox/internal/config"
	"github.com/avolkov/filebox/internal/db"
	"github.com/avolkov/filebox/internal/kvstore"
	"github.com/avolkov/filebox/internal/logger"
	"github.com/avolkov/filebox/internal/repository"
	"github.com/avolkov/filebox/internal/server/handler/http"
	"github.com/avolkov/filebox/internal/service"
	"github.com/avolkov/filebox/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// dbPinger adapts *sql.DB to the service.Pinger interface.
type dbPinger struct {
	db *sql.DB
}

func (p dbPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	ctx := context.Background()

	// Initialize PostgreSQL and apply migrations.
	postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize the session token store.
	var tokenStore kvstore.KVStore
	if options.TokenDBPath != "" {
		tokenStore, err = kvstore.NewBadgerStore(options.TokenDBPath)
		if err != nil {
			zapLogger.Fatal("cannot open token store", zap.Error(err))
		}
	} else {
		zapLogger.Warn("no token db path configured, sessions will not survive restarts")
		tokenStore = kvstore.NewMemoryStore()
	}
	defer func() { _ = tokenStore.Close() }()

	tokenManager := token.NewManager(tokenStore)

	// Initialize blob storage.
	var blobStore blob.Store
	switch options.BlobBackend {
	case "s3":
		blobStore, err = blob.NewS3Store(ctx, blob.S3Config{
			Bucket:   options.S3Bucket,
			Region:   options.S3Region,
			Endpoint: options.S3Endpoint,
		})
		if err != nil {
			zapLogger.Fatal("cannot init s3 blob store", zap.Error(err))
		}
	default:
		blobStore = blob.NewFSStore(options.BlobRoot)
		// Reclaim blobs left behind by uploads that failed between the
		// blob write and the metadata insert.
		root := cmp.Or(options.BlobRoot, blob.DefaultRoot)
		db.StartOrphanBlobSweeper(ctx, postgresDB, root,
			time.Hour,    // interval
			24*time.Hour, // retention
			zapLogger,
		)
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	entryRepo := repository.NewPostgresEntryRepository(postgresDB)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, tokenManager)
	fileService := service.NewFileService(entryRepo, blobStore)
	appService := service.NewAppService(tokenManager, dbPinger{postgresDB}, userRepo, entryRepo)

	// Create HTTP handlers.
	appHandler := &http.AppHandler{App: appService}
	usersHandler := &http.UsersHandler{Users: userService}
	authHandler := &http.AuthHandler{Auth: authService}
	filesHandler := &http.FilesHandler{Files: fileService}

	// Build the router with middleware and routes.
	router := http.NewRouter(appHandler, usersHandler, authHandler, filesHandler, tokenManager, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
