package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/diet-forms/internal/auth"
	"github.com/gdg-garage/diet-forms/internal/config"
	"github.com/gdg-garage/diet-forms/internal/database"
	"github.com/gdg-garage/diet-forms/internal/diets"
	"github.com/gdg-garage/diet-forms/internal/handlers"
	"github.com/gdg-garage/diet-forms/internal/notifier"
	"github.com/gdg-garage/diet-forms/internal/session"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open the store; without it nothing can be saved
	st, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Error("local storage is unavailable", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Notices
	current := notifier.NewCurrentSink()
	sinks := []notifier.Sink{notifier.NewLogSink(logger), current}
	if cfg.DiscordEnabled() {
		discordSink, err := notifier.NewDiscordSink(cfg.DiscordBotToken, cfg.DiscordNotificationsChannelID, logger)
		if err != nil {
			logger.Warn("discord notices not initialized", "error", err)
		} else {
			sinks = append(sinks, discordSink)
		}
	}
	queue := notifier.NewQueue(cfg.NoticeDuration, logger, sinks...)
	go queue.Run(ctx)

	sessions := session.NewRegistry(cfg.ChangeDebounce)
	go pruneSessions(ctx, sessions, cfg.SessionTTL)

	dietService := diets.NewService(st, queue, diets.WithLogger(logger))
	authHandler := auth.NewAuthHandler(cfg)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, logger, authHandler,
		handlers.NewSessionHandler(authHandler, sessions, dietService),
		handlers.NewDietHandler(sessions, dietService),
		handlers.NewNoticeHandler(current),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

// pruneSessions drops form sessions whose token can no longer be valid.
func pruneSessions(ctx context.Context, sessions *session.Registry, ttl time.Duration) {
	if ttl <= 0 {
		ttl = auth.DefaultTokenDuration
	}
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(time.Now().Add(-ttl)); n > 0 {
				slog.Info("pruned idle sessions", "count", n)
			}
		}
	}
}
