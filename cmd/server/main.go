package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cs-Nikhil/msdproject/internal/app"
	"github.com/cs-Nikhil/msdproject/internal/booking"
	"github.com/cs-Nikhil/msdproject/internal/config"
	"github.com/cs-Nikhil/msdproject/internal/handler"
	"github.com/cs-Nikhil/msdproject/internal/mailer"
	"github.com/cs-Nikhil/msdproject/internal/middleware"
	"github.com/cs-Nikhil/msdproject/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := app.NewLogger(cfg.Environment)
	defer log.Sync()

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("db ping", zap.Error(err))
	}
	log.Info("connected to postgres")

	// migrations
	migrator, err := app.NewMigrator(pool, "db/migrations")
	if err != nil {
		log.Fatal("migrator", zap.Error(err))
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("migrations", zap.Error(err))
	}
	migrator.Close()
	log.Info("migrations applied")

	// notification sink; noop unless SMTP is configured
	var notify booking.Notifier = mailer.Noop{}
	if cfg.SMTPHost != "" {
		notify = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromName, cfg.FromEmail)
		log.Info("email notifications enabled", zap.String("host", cfg.SMTPHost))
	}

	st := store.New(pool)
	svc := booking.NewService(st, notify, log, cfg.AllowCancelCompleted)
	h := handler.New(svc, st, cfg.JWTSecret, log)

	rl := middleware.NewRateLimiter(5, 10)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.Router(rl),
	}
	go func() {
		log.Info("http listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
