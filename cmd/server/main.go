package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"medsimplify/internal/config"
	"medsimplify/internal/core"
	"medsimplify/internal/db"
	httpserver "medsimplify/internal/http"
	"medsimplify/internal/llm"
	"medsimplify/internal/logging"
	"medsimplify/internal/metrics"

	_ "github.com/lib/pq"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Init("medsimplify", cfg.AppEnv, cfg.LogLevel)
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set; generation requests will fail")
	}

	// Open database connection
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer dbConn.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	notifier := db.NewNotifier(dbConn, cfg.DatabaseURL, cfg.NotifyChannel, logger)
	repo := db.NewRepository(dbConn, notifier)
	llmClient := llm.NewOpenAIClient(llm.Options{
		APIKey:            cfg.OpenAIAPIKey,
		BaseURL:           cfg.OpenAIBaseURL,
		DefaultModel:      cfg.OpenAIModel,
		RequestsPerMinute: cfg.OpenAIRequestsPerMinute,
	})
	simplifier := core.NewSimplifier(llmClient, metrics.NewEvaluator(nil), repo, logger)
	srv := httpserver.NewServer(simplifier, repo, notifier, httpserver.Defaults{
		Model:       cfg.OpenAIModel,
		Temperature: cfg.DefaultTemperature,
		PageSize:    cfg.HistoryPageSize,
		Models:      []string{"gpt-3.5-turbo", "gpt-4-turbo"},
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpSrv.Addr).Msg("listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return httpSrv.Shutdown(shutdownCtx)
}
