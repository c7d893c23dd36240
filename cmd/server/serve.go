package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcadapter "github.com/simaogato/mortgagecalc-backend/internal/adapter/grpc"
	mortgagecalcv1 "github.com/simaogato/mortgagecalc-backend/internal/adapter/grpc/mortgagecalcv1"
	"github.com/simaogato/mortgagecalc-backend/internal/adapter/events"
	"github.com/simaogato/mortgagecalc-backend/internal/adapter/ratelimit"
	"github.com/simaogato/mortgagecalc-backend/internal/adapter/rest"
	"github.com/simaogato/mortgagecalc-backend/internal/config"
	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/mortgage"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/payment"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/portfolio"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/property"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/seeder"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// 1. Setup Database
	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	// 2. Event publisher and rate limiter
	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	limiter, stopLimiter := newLimiter(cfg, logger)
	defer stopLimiter()

	// 3. Initialize Services (Use Cases)
	propertyService := property.NewPropertyService(st.Properties, st.Mortgages, publisher, logger)
	mortgageService := mortgage.NewMortgageService(st.Mortgages, st.Properties, publisher, logger)
	paymentResolver := payment.NewResolver(st.Mortgages, st.Properties, logger)
	portfolioService := portfolio.NewPortfolioService(st.Properties, st.Mortgages, logger)

	if cfg.SeedDemoData {
		if err := seeder.NewDemoSeeder(st.Properties, st.Mortgages, logger).Seed(ctx); err != nil {
			return err
		}
	}

	// 4. Build servers
	handler := rest.NewHandler(propertyService, mortgageService, paymentResolver, portfolioService, logger)
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: rest.NewRouter(handler, rest.RouterOptions{
			CORSOrigins: cfg.CORSOrigins,
			Limiter:     limiter,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcServer, healthServer := grpcadapter.NewGRPCServer(
		grpcadapter.NewServer(propertyService, mortgageService, paymentResolver, portfolioService, logger),
		cfg.APIToken,
		logger,
	)
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	// 5. Run until a signal arrives or a server fails
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		return grpcServer.Serve(grpcListener)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully")

		healthServer.SetServingStatus(mortgagecalcv1.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}

		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("servers stopped")
	return nil
}

func newPublisher(cfg *config.Config, logger *zap.Logger) (domain.EventPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("event publishing disabled")
		return events.Noop{}, func() {}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("publishing events", zap.String("exchange", cfg.AMQPExchange))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close event publisher", zap.Error(err))
		}
	}, nil
}

func newLimiter(cfg *config.Config, logger *zap.Logger) (ratelimit.Limiter, func()) {
	if cfg.RateLimitBackend == config.RateLimitRedis {
		client := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		logger.Info("using redis rate limiter", zap.String("addr", cfg.RedisAddr))
		return ratelimit.NewRedisLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow), func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close redis client", zap.Error(err))
			}
		}
	}

	limiter := ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	return limiter, limiter.Stop
}
