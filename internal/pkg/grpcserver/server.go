package grpcserver

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name probed by orchestrators.
const ServiceName = "register.BackOffice"

type Server struct {
	addr   string
	health *health.Server
	Server *grpc.Server
}

// New builds a gRPC server exposing only the standard health service. The
// register starts as NOT_SERVING until SetServing is called.
func New(addr string) *Server {
	s := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)
	return &Server{
		addr:   addr,
		health: hs,
		Server: s,
	}
}

func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Listen binds the configured address for Serve.
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.addr)
}

// Serve blocks until Stop is called. The listener is closed by Stop.
func (s *Server) Serve(lis net.Listener) error {
	return s.Server.Serve(lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.Server.GracefulStop()
}
