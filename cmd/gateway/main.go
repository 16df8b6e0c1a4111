package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pgRepo "github.com/platemate/auth-gateway/internal/adapters/db/postgres"
	"github.com/platemate/auth-gateway/internal/adapters/notify"
	httpTransport "github.com/platemate/auth-gateway/internal/adapters/transport/http"
	"github.com/platemate/auth-gateway/internal/adapters/transport/http/dto"
	httpmw "github.com/platemate/auth-gateway/internal/adapters/transport/http/middleware"
	"github.com/platemate/auth-gateway/internal/app/auth/hash"
	appsvc "github.com/platemate/auth-gateway/internal/app/auth/service"
	"github.com/platemate/auth-gateway/internal/app/auth/token"
	"github.com/platemate/auth-gateway/internal/infra/config"
	lg "github.com/platemate/auth-gateway/internal/infra/log"
	"github.com/platemate/auth-gateway/internal/infra/metrics"
	"github.com/platemate/auth-gateway/internal/infra/migrate"
	"github.com/platemate/auth-gateway/internal/infra/server"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	validate := validator.New()
	_ = validate.RegisterValidation("e164ish", dto.E164ish)

	accountRepo := pgRepo.NewAccountRepo(db)
	codec := token.NewCodec(cfg.JWTSecret, cfg.SessionTokenTTL, cfg.ResetTokenTTL)
	hasher := hash.New(cfg.PasswordPepper)
	notifier := notify.NewLogNotifier(zapLog, "")
	svc := appsvc.New(accountRepo, hasher, codec, notifier, validate)
	handler := httpTransport.NewHandler(svc, zapLog, m)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))

	// CORS answers preflight OPTIONS, which never carry the API key, so
	// it must run ahead of the gate.
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization", httpmw.APIKeyHeader,
			},
			MaxAge: 12 * time.Hour,
		}
		router.Use(cors.New(corsConfig))
	}

	router.Use(httpmw.NewAPIKeyGate(cfg.APIKey, "/", m.Unauthorized))
	router.Use(httpmw.NewThroughputGuard(50, 100, 10_000, time.Hour))

	limiter := httpmw.NewFixedWindowPerKey(
		cfg.RateLimitMax, cfg.RateLimitWindow, 10_000, httpmw.ClientIPKey, m.RateLimited,
	)
	handler.Mount(router, limiter)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, cfg, router, zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
