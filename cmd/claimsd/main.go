package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/medclaims/claims-pipeline/internal/common"
	"github.com/medclaims/claims-pipeline/internal/llm/openai"
	"github.com/medclaims/claims-pipeline/internal/pipeline"
	"github.com/medclaims/claims-pipeline/internal/policy"
	"github.com/medclaims/claims-pipeline/internal/trigger"
	"github.com/medclaims/claims-pipeline/internal/version"
)

// claimsd receives storage upload events over CloudEvents HTTP and
// adjudicates one claim per event.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("claimsd.config_invalid", "error", err)
		os.Exit(1)
	}
	if cfg.Database.DSN == "" {
		logger.Error("claimsd.config_invalid", "error", "DB_URL env var is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	versions, err := version.Load(cfg.Versions.GlobalPath, cfg.Versions.DocumentsPath)
	if err != nil {
		logger.Error("claimsd.versions_load_failed", "error", err)
		os.Exit(1)
	}

	pool, err := policy.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("claimsd.db_open_failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := policy.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("claimsd.db_health_failed", "error", err)
		os.Exit(1)
	}

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       versions.Model(),
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		MaxAttempts: cfg.LLM.MaxAttempts,
		RetryDelay:  cfg.LLM.RetryDelay,
	}, logger)

	pipe, err := pipeline.New(logger, versions, client, policy.NewPostgresStore(pool, logger), cfg.Pipeline)
	if err != nil {
		logger.Error("claimsd.pipeline_init_failed", "error", err)
		os.Exit(1)
	}

	pages := trigger.FSPageSource{Root: os.Getenv("CLAIMS_DATA_ROOT")}
	handler := trigger.NewHandler(logger, pages, pipe, nil)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		logger.Error("claimsd.bad_port", "port", port)
		os.Exit(1)
	}
	receiver, err := cloudevents.NewClientHTTP(cehttp.WithPort(portNum))
	if err != nil {
		logger.Error("claimsd.receiver_init_failed", "error", err)
		os.Exit(1)
	}

	logger.Info("claimsd.serving", "port", port)
	if err := receiver.StartReceiver(ctx, handler.Receive); err != nil {
		logger.Error("claimsd.receiver_stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("claimsd.stopped")
}
