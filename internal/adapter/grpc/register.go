package grpc

import (
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	mortgagecalcv1 "github.com/simaogato/mortgagecalc-backend/internal/adapter/grpc/mortgagecalcv1"
)

// healthPrefix covers the standard health service, which is served without a token
const healthPrefix = "/grpc.health.v1.Health/"

// NewGRPCServer builds a gRPC server with auth and logging interceptors, the
// MortgageService, the health service and reflection registered.
// The returned health server lets callers flip the serving status on shutdown.
func NewGRPCServer(srv *Server, apiToken string, logger *zap.Logger) (*grpclib.Server, *health.Server) {
	if logger == nil {
		logger = zap.NewNop()
	}

	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			LoggingInterceptor(logger.Named("grpc")),
			AuthInterceptor(apiToken, healthPrefix),
		),
	)

	mortgagecalcv1.RegisterMortgageServiceServer(grpcServer, srv)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(mortgagecalcv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	return grpcServer, healthServer
}
