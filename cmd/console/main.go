package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hosfind_admin/internal/adapters/hosfind"
	server "hosfind_admin/internal/adapters/http_server"
	"hosfind_admin/internal/adapters/notify"
	"hosfind_admin/internal/adapters/observability"
	redisad "hosfind_admin/internal/adapters/redis"
	"hosfind_admin/internal/app"
	"hosfind_admin/internal/domain"
	"hosfind_admin/internal/shared"
	mysqlrepo "hosfind_admin/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// session token storage
	var sessions domain.SessionStore = &app.MemorySession{}
	if cfg.RedisAddr != "" {
		rs := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionTTL)
		defer rs.Close()
		if err := rs.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		sessions = rs
		log.Info().Str("addr", cfg.RedisAddr).Msg("session store: redis")
	}

	client, err := hosfind.New(cfg.APIBaseURL, sessions, cfg.APIRPS, cfg.APITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API client")
	}
	if err := client.Health(ctx); err != nil {
		log.Warn().Err(err).Str("base", cfg.APIBaseURL).Msg("API health check failed")
	}

	// optional audit trail
	var audit domain.AuditLog
	if cfg.MySQLDSN != "" {
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("audit database unavailable")
		}
		defer db.Close()
		audit = mysqlrepo.New(db)
		log.Info().Msg("database connection ok")
	}

	feed := notify.NewFeed(notify.DefaultTTL)
	console := app.NewConsole(client, app.Options{
		Notifier:          feed,
		Audit:             audit,
		ResyncAfterDelete: cfg.DeleteResync,
	})
	session := app.NewSession(client, sessions)

	if cfg.AdminEmail != "" {
		if err := session.Login(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Warn().Err(err).Msg("boot login failed")
		}
	}
	if err := console.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial fetch failed")
	}

	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Console: console, Session: session, Notices: feed, Audit: audit})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("api", cfg.APIBaseURL).Msg("console listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	console.Wait()
	log.Info().Msg("console stopped")
}
