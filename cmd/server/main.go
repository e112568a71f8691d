package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcatalog "github.com/mysticum/wms/internal/application/catalog"
	appdocument "github.com/mysticum/wms/internal/application/document"
	appidentity "github.com/mysticum/wms/internal/application/identity"
	appstock "github.com/mysticum/wms/internal/application/stock"
	apptopology "github.com/mysticum/wms/internal/application/topology"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/infrastructure/auth"
	"github.com/mysticum/wms/internal/infrastructure/cache"
	"github.com/mysticum/wms/internal/infrastructure/config"
	"github.com/mysticum/wms/internal/infrastructure/logger"
	"github.com/mysticum/wms/internal/infrastructure/persistence"
	"github.com/mysticum/wms/internal/infrastructure/telemetry"
	"github.com/mysticum/wms/internal/interfaces/http/handler"
	"github.com/mysticum/wms/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting wms backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(persistence.DatabaseConfig{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Minute,
		ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Minute,
		Tracing:         cfg.Telemetry.Enabled,
	}, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	// Repositories
	typeRepo := persistence.NewGormDocumentTypeRepository(db.DB)
	statusRepo := persistence.NewGormStatusRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	topoRepo := persistence.NewGormTopologyRepository(db.DB)
	lotRepo := persistence.NewGormLotRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Document type lookups go through the cache; falls back to in-memory
	// when Redis is disabled or unreachable.
	cachedTypes, closeCache := cache.NewDocumentTypeCache(cfg.Redis, typeRepo, log)
	defer func() {
		if err := closeCache(); err != nil {
			log.Error("error closing cache", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewPasswordHasher(0)
	clock := shared.SystemClock{}

	authService := appidentity.NewAuthService(userRepo, jwtService, hasher, log)
	docService := appdocument.NewService(txScope, cachedTypes, statusRepo, productRepo, userRepo, topoRepo, clock, log)
	stockService := appstock.NewService(lotRepo, topoRepo)
	topoService := apptopology.NewService(topoRepo, log)
	catalogService := appcatalog.NewService(cachedTypes, statusRepo, productRepo, log)

	// HTTP engine and routes
	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:             cfg.HTTP,
		ServiceName:      cfg.Telemetry.ServiceName,
		TelemetryEnabled: cfg.Telemetry.Enabled,
		JWTService:       jwtService,
		Logger:           log,
	})
	if err != nil {
		log.Fatal("failed to build http engine", zap.Error(err))
	}

	r := router.NewRouter(engine)
	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewDocumentHandler(docService)).
		Register(handler.NewStockHandler(stockService)).
		Register(handler.NewTopologyHandler(topoService)).
		Register(handler.NewCatalogHandler(catalogService))
	r.Setup()

	handler.NewSystemHandler(db, version).RegisterRoutes(engine)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
