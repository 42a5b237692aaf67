package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/solatis/audiencekeeper/internal/core/api"
	"github.com/solatis/audiencekeeper/internal/core/db"
	"github.com/solatis/audiencekeeper/internal/core/export"
	"github.com/solatis/audiencekeeper/internal/core/httpapi"
	"github.com/solatis/audiencekeeper/internal/core/server"
	"github.com/solatis/audiencekeeper/internal/core/service"
	"github.com/solatis/audiencekeeper/internal/core/store"
	"github.com/solatis/audiencekeeper/internal/core/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST and gRPC APIs",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "listen host")
	serveCmd.Flags().Int("http-port", 8080, "REST API port")
	serveCmd.Flags().Int("grpc-port", 50051, "gRPC API port")
	serveCmd.Flags().Bool("migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("http-port") {
		cfg.Server.HTTPPort, _ = flags.GetInt("http-port")
	}
	if flags.Changed("grpc-port") {
		cfg.Server.GRPCPort, _ = flags.GetInt("grpc-port")
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warnw("failed to flush traces", "error", err)
		}
	}()

	database, err := db.Open(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if migrate, _ := flags.GetBool("migrate"); migrate {
		applied, err := db.MigrateUp(ctx, database)
		if err != nil {
			return err
		}
		log.Infow("migrations applied", "count", applied)
	}
	statuses, err := db.MigrateStatus(ctx, database)
	if err != nil {
		return fmt.Errorf("failed to check migrations: %w", err)
	}
	for _, s := range statuses {
		if !s.Applied {
			return fmt.Errorf("migration %s not applied - run 'audiencekeeper migrate' first", s.ID)
		}
	}

	st, err := store.New(database)
	if err != nil {
		return err
	}
	exporter, err := export.New(ctx, cfg.Export)
	if err != nil {
		return fmt.Errorf("failed to configure export: %w", err)
	}
	svc, err := service.New(st, exporter, cfg.Audience, log)
	if err != nil {
		return err
	}
	audience, err := api.NewAudienceService(svc)
	if err != nil {
		return err
	}

	host := cfg.Server.Host
	grpcServer, err := server.NewGRPCServer(net.JoinHostPort(host, strconv.Itoa(cfg.Server.GRPCPort)), audience, log)
	if err != nil {
		return fmt.Errorf("failed to create gRPC server: %w", err)
	}
	router := httpapi.NewRouter(
		httpapi.NewHandler(svc, cfg.Server.MaxBodyBytes, log),
		httpapi.RouterConfig{AllowedOrigins: cfg.Server.AllowedOrigins, RequestTimeout: cfg.Server.RequestTimeout},
		log,
	)
	httpServer := server.NewHTTPServer(net.JoinHostPort(host, strconv.Itoa(cfg.Server.HTTPPort)), router, cfg.Server.RequestTimeout, log)

	log.Infow("starting audiencekeeper",
		"version", tracing.Version,
		"http_port", cfg.Server.HTTPPort,
		"grpc_port", cfg.Server.GRPCPort,
		"driver", database.DriverName(),
		"strategy", cfg.Audience.Strategy,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcServer.Start(gctx) })
	g.Go(func() error { return httpServer.Start(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		httpErr := httpServer.Shutdown(shutdownCtx)
		grpcErr := grpcServer.Shutdown(shutdownCtx)
		if httpErr != nil {
			return httpErr
		}
		return grpcErr
	})
	return g.Wait()
}
