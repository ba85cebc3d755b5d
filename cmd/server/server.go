package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/dungeon-api/internal/engine"
	"github.com/KirkDiggler/dungeon-api/internal/handlers/dungeon/v1alpha1"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/rng"
	redisclient "github.com/KirkDiggler/dungeon-api/internal/redis"
	dungeonlayout "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout"
)

var (
	grpcPort  int
	redisAddr string
	redisTLS  bool
	gridRows  int
	gridCols  int
	layoutTTL time.Duration
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the dungeon gRPC server. Layouts are kept in Redis when --redis-addr is set, in memory otherwise.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address (empty keeps layouts in memory)")
	serverCmd.Flags().BoolVar(&redisTLS, "redis-tls", false, "Connect to Redis over TLS")
	serverCmd.Flags().IntVar(&gridRows, "rows", 0, "Grid rows (0 uses the default)")
	serverCmd.Flags().IntVar(&gridCols, "cols", 0, "Grid columns (0 uses the default)")
	serverCmd.Flags().DurationVar(&layoutTTL, "ttl", dungeonlayout.DefaultTTL, "How long stored layouts live")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	repo, cleanup, err := newRepository()
	if err != nil {
		return err
	}
	defer cleanup()

	svc, err := newDungeonService(repo, layoutTTL)
	if err != nil {
		return err
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		DungeonService: svc,
	})
	if err != nil {
		return fmt.Errorf("failed to create dungeon handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterDungeonServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("gRPC server starting on port %d...", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func newRepository() (dungeonlayout.Repository, func(), error) {
	if redisAddr == "" {
		log.Println("No Redis address configured, storing layouts in memory")
		return dungeonlayout.NewInMemory(clock.New()), func() {}, nil
	}

	client, err := redisclient.NewClient(redisAddr, &redisclient.Options{
		PoolSize:        10,
		MinIdleConns:    2,
		ConnMaxIdleTime: 5 * time.Minute,
		MaxRetries:      3,
		UseTLS:          redisTLS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	repo, err := dungeonlayout.NewRedisRepository(&dungeonlayout.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create layout repository: %w", err)
	}

	log.Printf("Storing layouts in Redis at %s", redisAddr)
	return repo, func() { _ = client.Close() }, nil
}

func newDungeonService(repo dungeonlayout.Repository, ttl time.Duration) (dungeon.Service, error) {
	cfg := engine.DefaultConfig()
	if gridRows > 0 {
		cfg.Grid.Rows = gridRows
	}
	if gridCols > 0 {
		cfg.Grid.Cols = gridCols
	}

	e, err := engine.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	svc, err := dungeon.NewOrchestrator(&dungeon.Config{
		Engine:      e,
		Repository:  repo,
		IDGenerator: idgen.NewUUID(idgen.DungeonPrefix),
		SeedSource:  rng.NewSeedSource(clock.New()),
		TTL:         ttl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dungeon orchestrator: %w", err)
	}

	return svc, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	log.Printf("[%v] %s %v", level, msg, fields)
}
