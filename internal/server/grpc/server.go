// Package grpc exposes the account actions over gRPC, next to the standard
// health service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gameauth/internal/logging"
	"github.com/dmitrijs2005/gameauth/internal/server/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address    string
	dispatcher *api.Dispatcher
	logger     logging.Logger
	health     *health.Server
}

func NewGRPCServer(a string, l logging.Logger, d *api.Dispatcher) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		dispatcher: d,
		health:     health.NewServer(),
	}
}

// Register attaches the account and health services to srv.
func (s *GRPCServer) Register(srv *grpc.Server) {
	srv.RegisterService(&accountServiceDesc, s)
	healthpb.RegisterHealthServer(srv, s.health)
}

// NewServer builds a grpc.Server with the interceptors and services attached.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.userIDInterceptor))
	s.Register(srv)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()
	s.health.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
