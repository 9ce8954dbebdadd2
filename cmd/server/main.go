package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"otmane/userbook/config"
	"otmane/userbook/httpapi"
	"otmane/userbook/logger"
	"otmane/userbook/sample"
	"otmane/userbook/service"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func seedUsers(ctx context.Context, userService *service.UserService, n int) error {
	for i := 0; i < n; i++ {
		user, err := userService.CreateUser(ctx, sample.NewUser())
		if err != nil {
			return fmt.Errorf("cannot seed user: %w", err)
		}
		log.Debug().Str("id", user.ID.String()).Str("email", user.Email).Msg("seeded user")
	}
	return nil
}

func loadConfigWithOverrides(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if c.IsSet("http-addr") {
		cfg.HTTPAddr = c.String("http-addr")
	}
	if c.IsSet("grpc-addr") {
		cfg.GRPCAddr = c.String("grpc-addr")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int("seed")
	}

	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config) error {
	userStore := service.NewInMemoryUserStore()
	userService := service.NewUserService(userStore)

	if err := seedUsers(ctx, userService, cfg.Seed); err != nil {
		return err
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	service.RegisterUserServiceServer(grpcServer, service.NewUserServer(userService))
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(service.UserServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", cfg.GRPCAddr, err)
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(userService),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", grpcListener.Addr().String()).Msg("grpc server starting")
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve grpc: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info().Str("addr", httpServer.Addr).Msg("http server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func main() {
	app := &cli.App{
		Name:  "userbook-server",
		Usage: "Serve the user API over HTTP and gRPC",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "http-addr", Usage: "HTTP listen address (overrides USERBOOK_HTTP_ADDR)"},
			&cli.StringFlag{Name: "grpc-addr", Usage: "gRPC listen address (overrides USERBOOK_GRPC_ADDR)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides USERBOOK_LOG_LEVEL)"},
			&cli.IntFlag{Name: "seed", Usage: "number of random users to create at startup (overrides USERBOOK_SEED)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
