// @title        Teamify Office API
// @version      1.0
// @description  Authentication, subscription checkout and company setup for the virtual office.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teamify/office-api/internal/api"
	"github.com/teamify/office-api/internal/api/handler"
	"github.com/teamify/office-api/internal/api/middleware"
	"github.com/teamify/office-api/internal/core/ports"
	"github.com/teamify/office-api/internal/core/service"
	"github.com/teamify/office-api/internal/infrastructure/db/mongo"
	"github.com/teamify/office-api/internal/infrastructure/db/redis"
	"github.com/teamify/office-api/internal/infrastructure/db/sqlite"
	"github.com/teamify/office-api/internal/infrastructure/mail"
	"github.com/teamify/office-api/internal/infrastructure/queue"
	"github.com/teamify/office-api/internal/pkg/config"
	"github.com/teamify/office-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "office-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, mail.NewLogMailer(logger.Component("mailer")), logger.Component("mail_queue"))
	dispatcher.Start(workerCtx)

	sessions := service.NewSessionIssuer(cfg.JWTSecret, service.SessionTTL)
	authService := service.NewAuthService(store.Accounts(), sessions, logger.Component("auth"))
	passwordService := service.NewPasswordService(
		store.Accounts(),
		redis.NewResetTokenStore(rdb),
		dispatcher,
		cfg.Auth.ResetTokenTTL,
		cfg.AppURL,
		logger.Component("password"),
	)
	subscriptionService := service.NewSubscriptionService(store.Subscriptions(), store.SetupStatus(), logger.Component("subscriptions"))
	entitlementService := service.NewEntitlementService(store.Subscriptions(), store.Companies(), store.SetupStatus(), logger.Component("entitlements"))
	companyService := service.NewCompanyService(store.Companies(), subscriptionService, logger.Component("companies"))
	newsletterService := service.NewNewsletterService(store.Newsletter(), logger.Component("newsletter"))

	e := api.NewRouter(api.Deps{
		Log:             logger.Component("http"),
		Auth:            authService,
		Passwords:       passwordService,
		Entitlements:    entitlementService,
		Subscriptions:   subscriptionService,
		Companies:       companyService,
		Newsletter:      newsletterService,
		LoginLimiter:    redis.NewRateLimiter(rdb),
		LoginRateLimit:  cfg.Auth.LoginRateLimit,
		LoginRateWindow: cfg.Auth.LoginRateWindow,
		TrustedProxies:  cfg.TrustedProxyRanges(),
		Cookie: middleware.CookieConfig{
			Secure: !cfg.IsDevelopment(),
			MaxAge: sessions.TTL(),
		},
		WebRoot: cfg.WebRoot,
		Readiness: map[string]handler.CheckFunc{
			"store": store.Ping,
			"redis": redis.Ping(rdb),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	cancelWorkers()
	dispatcher.Wait()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store close")
	}
	log.Info().Msg("shutdown complete")
}

func openStore(ctx context.Context, cfg *config.Config) (ports.Store, error) {
	if cfg.StoreDriver == config.StoreMongo {
		return mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	}
	return sqlite.Open(ctx, cfg.SQLite.Path)
}
