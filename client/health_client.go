package client

import (
	"context"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthClient is a client to call the standard gRPC health service
type HealthClient struct {
	service healthpb.HealthClient
}

// NewHealthClient returns a new health client.
func NewHealthClient(cc *grpc.ClientConn) *HealthClient {
	return &HealthClient{service: healthpb.NewHealthClient(cc)}
}

// Check returns the serving status of service; "" asks about the whole server.
func (c *HealthClient) Check(ctx context.Context, service string) (*healthpb.HealthCheckResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	return c.service.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
}
