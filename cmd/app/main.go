package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"legal-docgen/internal/config"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/domain/ports/adapter"
	aiAdapters "legal-docgen/internal/infra/adapters/ai"
	pg "legal-docgen/internal/infra/db/postgres"
	"legal-docgen/internal/infra/logging"
	"legal-docgen/internal/infra/metrics"
	red "legal-docgen/internal/infra/redis"
	"legal-docgen/internal/infra/render"
	"legal-docgen/internal/infra/storage"
	"legal-docgen/internal/infra/web"
	"legal-docgen/internal/infra/worker"
	"legal-docgen/internal/prompt"
	"legal-docgen/internal/registry"
	"legal-docgen/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (stub drafter, relaxed auth)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.PoolSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	txManager := pg.NewTxManager(pool)
	generationRepo := pg.NewGenerationRepo(pool)
	jobRepo := pg.NewRenderJobRepo(pool, txManager)

	// ---- Redis (rate limiting only; absence is tolerated in dev) ----
	var rateLimiter web.RateLimiter
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		if !cfg.Runtime.Dev {
			logger.Fatal().Err(err).Msg("redis")
		}
		logger.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
	} else {
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
	}

	// ---- Object storage ----
	store, err := storage.NewMinioStore(&cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("object storage")
	}
	if err := store.EnsureBucket(ctx); err != nil {
		logger.Fatal().Err(err).Msg("object storage bucket")
	}

	// ---- Drafter chain ----
	drafter, err := buildDrafter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("drafter")
	}

	// ---- Pipeline ----
	reg := registry.New()
	composer := prompt.NewComposer()
	renderer := render.NewRenderer(cfg.Render.Slots, cfg.Render.NavTimeout)
	defaultFormat := model.OutputFormat(cfg.Render.DefaultFormat)

	genUC := usecase.NewGenerationUseCase(reg, composer, drafter, renderer, store, generationRepo, defaultFormat, logger)
	jobUC := usecase.NewJobUseCase(reg, jobRepo, defaultFormat)

	// ---- Async workers ----
	pool2 := worker.NewPool(cfg.Worker.Count, logger)
	pool2.Start(ctx)
	processor := worker.NewRenderJobProcessor(jobRepo, genUC, pool2, cfg.Worker.PollInterval, logger)
	processor.Start(ctx)

	// ---- HTTP ----
	auth := web.NewAuthManager(cfg.Server.JWTSecret, cfg.Runtime.Dev)
	apiServer := web.NewServer(genUC, jobUC, auth, rateLimiter, cfg.Limits.GeneratePerMinute, logger)
	router := apiServer.Router()
	router.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	pool2.Stop()
}

// buildDrafter assembles the provider chain: Gemini first, OpenAI as
// failover, everything metered. Dev mode runs on the deterministic stub so no
// provider account is needed locally.
func buildDrafter(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (adapter.Drafter, error) {
	if cfg.Runtime.Dev && cfg.AI.GeminiKey == "" && cfg.AI.OpenAIKey == "" {
		logger.Warn().Msg("no AI provider configured, using stub drafter")
		return aiAdapters.NewNoopDrafter(), nil
	}

	var chain []adapter.Drafter
	if cfg.AI.GeminiKey != "" {
		g, err := aiAdapters.NewGeminiDrafter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.GeminiModel, cfg.AI.MaxOutputTokens, cfg.AI.RequestTimeout)
		if err != nil {
			return nil, err
		}
		chain = append(chain, g)
		logger.Info().Str("model", cfg.AI.GeminiModel).Msg("drafter: gemini")
	}
	if cfg.AI.OpenAIKey != "" {
		o, err := aiAdapters.NewOpenAIDrafter(cfg.AI.OpenAIKey, cfg.AI.OpenAIModel, cfg.AI.MaxOutputTokens, cfg.AI.RequestTimeout)
		if err != nil {
			return nil, err
		}
		chain = append(chain, o)
		logger.Info().Str("model", cfg.AI.OpenAIModel).Msg("drafter: openai")
	}

	failover, err := aiAdapters.NewFailoverDrafter(chain...)
	if err != nil {
		return nil, fmt.Errorf("no AI provider configured: set ai.gemini_key or ai.openai_key: %w", err)
	}
	return aiAdapters.NewMeteredDrafter(failover), nil
}
