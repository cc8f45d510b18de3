package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"gitlab.com/clawgames.net/internal/adapter/crypto"
	"gitlab.com/clawgames.net/internal/adapter/kafka/reviewpublisher"
	"gitlab.com/clawgames.net/internal/adapter/logging"
	"gitlab.com/clawgames.net/internal/adapter/memory"
	"gitlab.com/clawgames.net/internal/adapter/objstore"
	"gitlab.com/clawgames.net/internal/adapter/postgres/botrepository"
	"gitlab.com/clawgames.net/internal/adapter/postgres/gamerepository"
	"gitlab.com/clawgames.net/internal/adapter/postgres/migrate"
	"gitlab.com/clawgames.net/internal/adapter/postgres/ratingrepository"
	"gitlab.com/clawgames.net/internal/adapter/redis/ratelimitport"
	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/core/sanitize"
	auth2 "gitlab.com/clawgames.net/internal/core/services/auth"
	"gitlab.com/clawgames.net/internal/core/services/ratelimit"
	"gitlab.com/clawgames.net/internal/core/services/rating"
	"gitlab.com/clawgames.net/internal/core/services/submission"
	logger2 "gitlab.com/clawgames.net/internal/global/logger"
	http2 "gitlab.com/clawgames.net/internal/http"
	"gitlab.com/clawgames.net/internal/schedulerengine"
	"gitlab.com/clawgames.net/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the submission and rating HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env != "" {
				if err := godotenv.Load(env + ".env"); err != nil {
					return fmt.Errorf("failed to load %s.env: %w", env, err)
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.NewSystemConfig(config.NewReader()))
		},
	}
	cmd.Flags().StringVar(&env, "env", "", "load <env>.env before reading configuration")
	return cmd
}

// ports groups the secondary adapters selected by configuration
type ports struct {
	games     secondary.GameRepository
	ratings   secondary.RatingRepository
	bots      secondary.BotPort
	rateLimit secondary.RateLimitStore
	review    secondary.ReviewNotifier
	closers   []io.Closer
}

func (p *ports) close(logger primary.Logger) {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i].Close(); err != nil {
			logger.Error("Failed to close resource", "error", err)
		}
	}
}

func serve(ctx context.Context, sysCfg *config.AppConfig) error {
	zapLogger := logging.NewZapLoggerWithConfig(sysCfg.LogConfig)
	defer zapLogger.Sync()
	logger2.Set(zapLogger)
	logger := logger2.Logger
	logger.Info("Starting clawgames service", "debug", sysCfg.DebugMode)

	shutdownTelemetry, err := telemetry.Setup(ctx, sysCfg.HTTPConfig.ServiceName, sysCfg.TelemetryConfig)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			logger.Error("Failed to flush metrics", "error", err)
		}
	}()
	metrics, err := telemetry.NewGlobalMetrics()
	if err != nil {
		return err
	}

	p, err := setupPorts(ctx, sysCfg, logger)
	if err != nil {
		return err
	}
	defer p.close(logger)

	artifacts, err := objstore.Open(ctx, sysCfg.StorageConfig)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	authenticator := auth2.NewAuthenticator(
		auth2.NewAPIKeyAuthService(p.bots, jwtProvider, logger),
		auth2.NewJWTAuthService(p.bots, jwtProvider, logger),
	)
	limiter := ratelimit.NewSubmissionRateLimiter(p.rateLimit, sysCfg.SubmissionConfig, logger)
	orchestrator := submission.NewSubmissionOrchestrator(
		authenticator, limiter, sanitize.NewScanner(), p.games, p.bots, artifacts, logger)
	orchestrator.SetMetrics(metrics)
	orchestrator.SetReviewNotifier(p.review)
	ratingGate := rating.NewRatingGate(p.ratings, p.games, sysCfg.SubmissionConfig, logger, metrics)
	serviceProvider := http2.NewServiceProvider(orchestrator, ratingGate)

	//server
	httpServer := http2.NewServer(sysCfg.HTTPConfig, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		return err
	}
	serverErr := httpServer.Start(ctx)

	reconciler := schedulerengine.NewReconcileEngine(
		sysCfg.SubmissionConfig, artifacts, p.games, logger, metrics, submission.ArtifactPrefix)
	reconciler.Start(ctx)

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}
	logger.Info("Shutting down server...")

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if stopErr := httpServer.Stop(sctx); stopErr != nil {
		logger.Error("Server forced to shutdown", "error", stopErr)
	}
	reconciler.Wait()

	logger.Info("successfully shutdown server")
	return err
}

// setupPorts selects in-memory adapters in debug mode and PostgreSQL, Redis
// and Kafka otherwise.
func setupPorts(ctx context.Context, sysCfg *config.AppConfig, logger primary.Logger) (*ports, error) {
	if sysCfg.DebugMode {
		logger.Warn("Debug mode: using in-memory stores")
		return &ports{
			games:   memory.NewGameStore(),
			ratings: memory.NewRatingStore(),
			bots:    memory.NewBotStore(),
			rateLimit: memory.NewRateLimitStore(
				sysCfg.SubmissionConfig.CompactThreshold, sysCfg.SubmissionConfig.CompactAge),
			review: memory.NewReviewRecorder(),
		}, nil
	}

	p := &ports{}
	db, err := setupDatabase(ctx, sysCfg.PostgresConfig)
	if err != nil {
		return nil, err
	}
	p.closers = append(p.closers, db)
	if sysCfg.AutoMigrate {
		if err := migrate.Apply(ctx, db, sysCfg.PostgresConfig.Schema); err != nil {
			p.close(logger)
			return nil, err
		}
	}
	schema := sysCfg.PostgresConfig.Schema
	p.games = gamerepository.NewGameRepository(db, logger, schema)
	p.ratings = ratingrepository.NewRatingRepository(db, logger, schema)
	p.bots = botrepository.New(db, logger, schema)

	if sysCfg.RedisConfig.Url != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     sysCfg.RedisConfig.Url,
			Password: sysCfg.RedisConfig.Password,
			DB:       sysCfg.RedisConfig.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			p.close(logger)
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		p.closers = append(p.closers, redisClient)
		p.rateLimit = ratelimitport.NewRateLimitRepository(redisClient, logger)
	} else {
		p.rateLimit = memory.NewRateLimitStore(
			sysCfg.SubmissionConfig.CompactThreshold, sysCfg.SubmissionConfig.CompactAge)
	}

	if len(sysCfg.KafkaConfig.Brokers) > 0 {
		publisher := reviewpublisher.New(sysCfg.KafkaConfig, logger)
		p.closers = append(p.closers, publisher)
		p.review = publisher
	} else {
		logger.Warn("No kafka brokers configured: review events are not published")
	}
	return p, nil
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
