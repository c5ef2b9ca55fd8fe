// solcmeta-grpcd serves the metadata decoder over gRPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"google.golang.org/grpc"

	"xdao.co/solcmeta/config"
	"xdao.co/solcmeta/grpcmeta"
	"xdao.co/solcmeta/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, errOut io.Writer) int {
	cfg, err := loadConfig(args, errOut)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, err)
		return 2
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(errOut, level)

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		logger.Error("listen failed", "addr", cfg.Listen, "err", err)
		return 1
	}
	defer lis.Close()

	opts := []grpc.ServerOption{grpc.UnaryInterceptor(logRequests(logger))}
	if cfg.MaxMsgBytes > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(cfg.MaxMsgBytes))
	}
	s := grpc.NewServer(opts...)
	grpcmeta.RegisterMetadataServer(s, &grpcmeta.Server{
		Mode:          cfg.ComplianceMode(),
		GatewayPrefix: cfg.GatewayPrefix,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		s.GracefulStop()
	}()

	logger.Info("solcmeta-grpcd listening", "addr", lis.Addr().String(), "mode", cfg.ComplianceMode())
	if err := s.Serve(lis); err != nil {
		logger.Error("serve failed", "err", err)
		return 1
	}
	return 0
}

// loadConfig builds the daemon configuration: defaults, then --config, then
// individual flag overrides.
func loadConfig(args []string, errOut io.Writer) (config.Config, error) {
	fs := pflag.NewFlagSet("solcmeta-grpcd", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	path := fs.StringP("config", "c", "", "TOML config file")
	listen := fs.String("listen", "", "listen address (overrides config)")
	mode := fs.String("mode", "", "compliance mode: permissive|strict (overrides config)")
	logLevel := fs.String("log-level", "", "log level: debug|info|warn|error (overrides config)")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if fs.NArg() != 0 {
		return config.Config{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.LoadFile(*path); err != nil {
			return cfg, err
		}
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	return cfg, cfg.Validate()
}

// logRequests attaches logger to each request context and logs the outcome.
func logRequests(logger *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(logging.WithLogger(ctx, logger), req)
		if err != nil {
			logger.Info("request rejected", "method", info.FullMethod, "dur", time.Since(start), "err", err)
			return resp, err
		}
		logger.Debug("request", "method", info.FullMethod, "dur", time.Since(start))
		return resp, nil
	}
}
