package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/database/migrate"
	"hotel/internal/domain/client"
	"hotel/internal/domain/reservation"
	"hotel/internal/domain/room"
	"hotel/internal/health"
	"hotel/internal/lock"
	"hotel/internal/metrics"
	"hotel/internal/middleware"
	"hotel/internal/pkg/logger"
	"hotel/internal/pkg/response"
	"hotel/internal/realtime"
	"hotel/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := migrate.Run(db); err != nil {
		return err
	}
	log.Info("database schema ready")

	locker, err := lock.New(cfg, log)
	if err != nil {
		return err
	}
	defer locker.Close()

	hub := realtime.NewHub(log)
	defer hub.Close()

	m := metrics.New()
	m.WatchSubscribers(hub.Count)

	router, err := newRouter(cfg, log, db, locker, hub, m)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("hotel API listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		// Websocket connections are hijacked and ignored by Shutdown.
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newRouter(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	locker lock.Locker,
	hub *realtime.Hub,
	m *metrics.Metrics,
) (*gin.Engine, error) {
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	clientRepo := client.NewRepository(db)
	roomRepo := room.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)

	clientService := client.NewService(clientRepo, log)
	roomService := room.NewService(roomRepo, log)

	listing, err := reservation.ParseOverlapMode(cfg.ListingOverlap)
	if err != nil {
		return nil, err
	}
	checker := reservation.NewChecker(roomRepo, reservationRepo, listing)
	reservationService := reservation.NewService(checker, reservationRepo, clientRepo, locker, hub, m, log)

	reporter, err := reservation.NewReporterFromGorm(db)
	if err != nil {
		return nil, err
	}

	pages, err := web.NewHandler(clientService, roomService, reservationService, reporter, log)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSOrigins),
	)
	if cfg.RateLimit {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}
	if cfg.MetricsEnabled {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	health.NewHandler(map[string]health.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"lock": locker.Ping,
	}).RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		client.NewHandler(clientService).RegisterRoutes(v1)
		room.NewHandler(roomService).RegisterRoutes(v1)
		reservation.NewHandler(reservationService, reporter).RegisterRoutes(v1)
	}

	realtime.NewHandler(hub, cfg.CORSOrigins).RegisterRoutes(r)
	pages.RegisterRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r, nil
}
