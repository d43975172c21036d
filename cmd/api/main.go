package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/passguard/passguard/internal/breach"
	"github.com/passguard/passguard/internal/config"
	"github.com/passguard/passguard/internal/handler"
	evaluateHandler "github.com/passguard/passguard/internal/handler/evaluate"
	prometheusHandler "github.com/passguard/passguard/internal/handler/prometheus"
	"github.com/passguard/passguard/internal/middleware"
	"github.com/passguard/passguard/internal/policy"
	"github.com/passguard/passguard/internal/repository"
	"github.com/passguard/passguard/internal/repository/redisstore"
	"github.com/passguard/passguard/internal/repository/textfile"
	"github.com/passguard/passguard/internal/router"
	"github.com/passguard/passguard/internal/service/evaluator"
	"github.com/passguard/passguard/pkg/logger"
	"github.com/passguard/passguard/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.Log.Level})
	log.Logger = appLogger

	ctx := context.Background()

	dictionary := loadWordSet(ctx, appLogger, "dictionary",
		textfile.NewWordSetRepository(cfg.Data.WordlistFile))
	blacklist := loadWordSet(ctx, appLogger, "blacklist", blacklistSource(cfg, appLogger))

	var hibp *breach.HIBPClient
	if cfg.Breach.HIBPEnabled {
		hibp = breach.NewHIBPClient(breach.HIBPConfig{
			BaseURL:  cfg.Breach.HIBPBaseURL,
			Timeout:  cfg.Breach.Timeout,
			CacheTTL: cfg.Breach.CacheTTL,
		}, appLogger)
	}

	checker := breach.NewChecker(blacklist, hibp, appLogger)
	svc := evaluator.NewService(policy.Default(), dictionary, checker, appLogger)

	registry := prometheus.NewRegistry()
	m := metrics.New("passguard", registry)

	r := router.NewRouter(
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			MaxBodyBytes:     cfg.Server.MaxBodyBytes,
			CORS:             middleware.DefaultCORSConfig(),
		},
		evaluateHandler.NewHandler(svc, m),
		prometheusHandler.New(registry),
		handler.NewHandler(),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info().
			Int("port", cfg.Server.Port).
			Int("dictionary_words", len(dictionary)).
			Int("blacklist_entries", len(blacklist)).
			Bool("hibp_enabled", cfg.Breach.HIBPEnabled).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("forced shutdown")
	}
}

// blacklistSource prefers Redis when configured, else the blacklist file.
func blacklistSource(cfg *config.Config, appLogger zerolog.Logger) repository.WordSetRepository {
	if cfg.Data.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Data.RedisURL)
		if err != nil {
			appLogger.Warn().Err(err).Msg("invalid redis url, falling back to blacklist file")
			return textfile.NewWordSetRepository(cfg.Data.BlacklistFile)
		}
		return redisstore.NewWordSetRepository(redis.NewClient(opts), cfg.Data.BlacklistKey)
	}
	return textfile.NewWordSetRepository(cfg.Data.BlacklistFile)
}

// loadWordSet degrades a failed source to an empty set: evaluation must
// keep working without the optional data files.
func loadWordSet(ctx context.Context, appLogger zerolog.Logger, name string, repo repository.WordSetRepository) map[string]struct{} {
	set, err := repo.Load(ctx)
	if err != nil {
		appLogger.Warn().Err(err).Str("source", name).Msg("failed to load word set, continuing with empty set")
		return map[string]struct{}{}
	}
	return set
}
