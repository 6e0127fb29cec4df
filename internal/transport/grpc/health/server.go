// Package health exposes the standard gRPC health service so orchestrators
// can probe the process without going through HTTP.
package health

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server wraps a grpc.Server that only serves grpc.health.v1.Health.
type Server struct {
	srv    *grpc.Server
	health *grpchealth.Server
}

func NewServer() *Server {
	srv := grpc.NewServer()
	hs := grpchealth.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return &Server{srv: srv, health: hs}
}

// SetServing flips the overall status reported for the empty service name.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Serve blocks until lis is closed or Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.SetServing(true)
	return s.srv.Serve(lis)
}

// Stop drains in-flight calls, falling back to a hard stop after timeout.
func (s *Server) Stop(timeout time.Duration) {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(timeout):
		s.srv.Stop()
	}
}

// Check is a convenience client call used by tests and probes.
func Check(ctx context.Context, conn grpc.ClientConnInterface) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
