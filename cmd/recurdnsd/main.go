package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nyxdns/recurdns/internal/dns/common/clock"
	"github.com/nyxdns/recurdns/internal/dns/common/log"
	"github.com/nyxdns/recurdns/internal/dns/config"
	"github.com/nyxdns/recurdns/internal/dns/gateways/transport"
	"github.com/nyxdns/recurdns/internal/dns/gateways/upstream"
	"github.com/nyxdns/recurdns/internal/dns/gateways/wire"
	"github.com/nyxdns/recurdns/internal/dns/services/resolver"
)

const (
	version = "0.1.0-dev"
	appName = "recurdnsd"

	defaultShutdownTimeout = 10 * time.Second
)

// Application holds all the components of the DNS server.
type Application struct {
	config    *config.AppConfig
	transport *transport.UDPTransport
	resolver  *resolver.Resolver
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":   version,
		"env":       cfg.Env,
		"log_level": cfg.LogLevel,
		"listen":    cfg.ListenAddr,
		"bootstrap": cfg.BootstrapServer,
	}, fmt.Sprintf("starting %s", appName))

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "server failed")
	}

	log.Info(nil, fmt.Sprintf("%s stopped gracefully", appName))
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()
	codec := wire.NewCodec(logger)

	upstreamClient, err := buildUpstream(cfg, codec)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream client: %w", err)
	}

	resolverService := resolver.NewResolver(resolver.ResolverOptions{
		Logger:            logger,
		Upstream:          upstreamClient,
		Clock:             clock.RealClock{},
		BootstrapServer:   cfg.BootstrapServer,
		Timeout:           time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second,
		RetryCount:        cfg.RetryCount,
		MaxIterations:     cfg.MaxIterations,
		MaxRecursionDepth: cfg.MaxRecursionDepth,
	})

	udpTransport := transport.NewUDPTransport(cfg.ListenAddr, codec, logger)

	return &Application{
		config:    cfg,
		transport: udpTransport,
		resolver:  resolverService,
	}, nil
}

// buildUpstream creates and configures the single-hop upstream client
// used by every round of the resolver's referral walk.
func buildUpstream(cfg *config.AppConfig, codec *wire.Codec) (*upstream.Client, error) {
	client, err := upstream.NewClient(upstream.Options{
		Timeout: time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second,
		Codec:   codec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream client: %w", err)
	}

	log.Info(map[string]any{
		"bootstrap": cfg.BootstrapServer,
		"timeout":   cfg.UpstreamTimeoutSeconds,
	}, "upstream DNS client configured")

	return client, nil
}

// Run starts the DNS server and blocks until ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.transport.Start(ctx, app.resolver); err != nil {
		return fmt.Errorf("failed to start UDP transport: %w", err)
	}

	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "UDP",
	}, "DNS server started")

	<-ctx.Done()

	log.Info(nil, "shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := app.transport.Stop(); err != nil {
		log.Warn(map[string]any{"error": err}, "error during transport shutdown")
	}

	done := make(chan struct{})
	go func() {
		close(done)
	}()

	select {
	case <-done:
		log.Info(nil, "graceful shutdown completed")
		return nil
	case <-shutdownCtx.Done():
		log.Warn(map[string]any{"timeout": defaultShutdownTimeout}, "shutdown timeout exceeded")
		return fmt.Errorf("shutdown timeout")
	}
}
