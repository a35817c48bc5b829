package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/permit_tracker/internal/es"
	"github.com/Skotchmaster/permit_tracker/internal/events"
	"github.com/Skotchmaster/permit_tracker/internal/httpserver"
	"github.com/Skotchmaster/permit_tracker/internal/repo"
	"github.com/Skotchmaster/permit_tracker/internal/service"
	"github.com/Skotchmaster/permit_tracker/pkg/config"
	"github.com/Skotchmaster/permit_tracker/pkg/db"
	jwthelp "github.com/Skotchmaster/permit_tracker/pkg/jwt"
	"github.com/Skotchmaster/permit_tracker/pkg/logging"
	"github.com/Skotchmaster/permit_tracker/pkg/metrics"
	authmw "github.com/Skotchmaster/permit_tracker/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/permit_tracker/pkg/middleware/logging"
	"github.com/Skotchmaster/permit_tracker/pkg/tokens"
)

func main() {
	cfg := config.Load()
	config.MustValid(cfg)

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}
	if err := repo.Migrate(gdb); err != nil {
		cancel()
		log.Fatalf("db migrate error: %v", err)
	}

	esClient, err := es.NewClient(initCtx, &cfg)
	cancel()
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	tokenSvc := tokens.NewService(cfg.JWTSecret, cfg.TokenTTL)
	signer := jwthelp.NewSigner(cfg.CookieSecret)
	secure := cfg.Production()

	accountSvc := &service.AccountService{Accounts: &repo.AccountRepo{DB: gdb}, Tokens: tokenSvc}
	permitSvc := &service.PermitService{Permits: &repo.PermitRepo{DB: gdb}}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer != nil {
		accountSvc.Publisher = producer
		permitSvc.Publisher = producer
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}
	if indexer := es.NewIndexer(esClient, cfg.ESIndex); indexer != nil {
		permitSvc.Indexer = indexer
		logger.Info("elasticsearch_enabled", "url", cfg.ESURL, "index", cfg.ESIndex)
	}

	m := metrics.NewHTTP(cfg.ServiceName)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Secure(),
		loggingmw.RequestLogger(logger),
		m.Middleware(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowCredentials: true,
		}),
	)

	httpserver.Register(e, &httpserver.Deps{
		DB:            gdb,
		AuthHandler:   &httpserver.AuthHTTP{Svc: accountSvc, Signer: signer, SecureCookie: secure},
		PermitHandler: &httpserver.PermitHTTP{Svc: permitSvc},
		Session:       authmw.NewSessionMiddleware(tokenSvc, signer, secure),
		Metrics:       m,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("shutdown_complete")
}
