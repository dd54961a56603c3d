// Command ipcfabricd hosts every IntelliRouter IPC contract behind one
// mutual-TLS gRPC endpoint, plus a Redis-backed (or in-process) event bus
// for the fabric's asynchronous side. It is a demo/reference gateway: its
// six service implementations come from pkg/mock, the same deterministic
// fakes pkg/gateway's own tests use, so the binary is useful for exercising
// the fabric end-to-end without a real chain engine, model registry, or
// memory store behind it.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lspecian/intellirouter/pkg/config"
	"github.com/lspecian/intellirouter/pkg/contracts"
	"github.com/lspecian/intellirouter/pkg/eventbus"
	"github.com/lspecian/intellirouter/pkg/gateway"
	"github.com/lspecian/intellirouter/pkg/health"
	"github.com/lspecian/intellirouter/pkg/log"
	"github.com/lspecian/intellirouter/pkg/metrics"
	"github.com/lspecian/intellirouter/pkg/mock"
	"github.com/lspecian/intellirouter/pkg/security"
	"github.com/lspecian/intellirouter/pkg/types"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "ipcfabricd",
	Short:   "IntelliRouter IPC fabric gateway",
	Long:    `ipcfabricd hosts the chain engine, model registry, memory, RAG manager, persona layer, and router contracts behind one mutual-TLS gRPC endpoint, with a Redis-backed (or, with no broker URL configured, in-process) event bus for asynchronous notifications.`,
	Version: Version,
	RunE:    runServe,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("ipcfabricd version %s\nCommit: %s\nBuilt: %s\n", Version, Commit, BuildTime))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.Flags().String("config", "", "Path to the fabric's YAML config file (required)")
	_ = rootCmd.MarkFlagRequired("config")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(logLevel), JSONOutput: logJSON})
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	trust, err := cfg.Trust.TrustMaterial()
	if err != nil {
		return fmt.Errorf("load trust material: %w", err)
	}

	tokens, err := security.NewTokenService(cfg.Token.TokenServiceConfig())
	if err != nil {
		return fmt.Errorf("build token service: %w", err)
	}

	builder, err := gateway.NewGatewayBuilder(gateway.BuilderConfig{
		Trust:      trust,
		ServerName: cfg.Transport.ServerName,
		Tokens:     tokens,
		Services:   demoServices(cfg.Metrics.Addr),
	})
	if err != nil {
		return fmt.Errorf("build gateway: %w", err)
	}

	srv, err := builder.Server()
	if err != nil {
		return fmt.Errorf("build transport server: %w", err)
	}

	broker, err := buildBroker(cfg.Broker)
	if err != nil {
		return fmt.Errorf("build event broker: %w", err)
	}
	defer broker.Close()

	notifyChannel, err := types.NewChannelPattern("router", "operator", "*")
	if err != nil {
		return fmt.Errorf("build notify channel pattern: %w", err)
	}

	httpHandler := http.NewServeMux()
	httpHandler.Handle("/metrics", metrics.Handler())
	httpHandler.Handle("/", gateway.NewHealthHandler(builder.Breakers()))
	httpServer := &http.Server{Addr: cfg.Metrics.Addr, Handler: httpHandler}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Logger.Info().Str("addr", cfg.Transport.ListenAddr).Msg("fabric gRPC endpoint listening")
		if err := srv.Serve(cfg.Transport.ListenAddr); err != nil {
			return fmt.Errorf("fabric server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Logger.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics/health endpoint listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		sub, err := broker.Subscribe(gctx, notifyChannel)
		if err != nil {
			return fmt.Errorf("subscribe to notify channel: %w", err)
		}
		defer sub.Release()

		for {
			select {
			case <-gctx.Done():
				return nil
			case env, ok := <-sub.Events():
				if !ok {
					return nil
				}
				log.Logger.Info().Int("payload_bytes", len(env.Payload)).Msg("received event")
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)

		srv.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil && gctx.Err() == nil {
		return err
	}
	log.Logger.Info().Msg("shutdown complete")
	return nil
}

// demoServices wires pkg/mock's deterministic fakes into a gateway.Services
// bundle. The model registry is wrapped so its HealthCheck operation
// dispatches through a real health.Registry instead of the mock's own
// scripted table, registering one HTTPChecker against this process's own
// metrics endpoint as a stand-in for a model-serving process's readiness
// probe.
func demoServices(metricsAddr string) gateway.Services {
	checkers := health.NewRegistry()
	checkers.Register("gateway-self", health.NewHTTPChecker("http://"+metricsAddr+"/metrics"))

	return gateway.Services{
		ChainEngine:   mock.NewChainEngine(),
		ModelRegistry: &modelRegistryWithHealth{ModelRegistry: mock.NewModelRegistry(), checkers: checkers},
		Memory:        mock.NewMemory(),
		RAGManager:    mock.NewRAGManager(),
		PersonaLayer:  mock.NewPersonaLayer(),
		Router:        mock.NewRouter(),
	}
}

// modelRegistryWithHealth overrides *mock.ModelRegistry's scripted
// HealthCheck with one backed by a real pkg/health.Registry, so the
// HealthCheck operation exercises per-model HTTP/TCP/Exec checking instead
// of always returning the mock's canned outcome.
type modelRegistryWithHealth struct {
	*mock.ModelRegistry
	checkers *health.Registry
}

func (m *modelRegistryWithHealth) HealthCheck(ctx context.Context, req contracts.HealthCheckRequest) (contracts.HealthCheckResponse, error) {
	return m.checkers.HealthCheck(ctx, req)
}

// buildBroker returns a RedisBroker when cfg names a broker URL, or an
// InProcessBroker otherwise — the same fallback pkg/eventbus's tests rely
// on so ipcfabricd runs standalone with no external dependency unless one
// is configured.
func buildBroker(cfg config.BrokerConfig) (eventbus.Broker, error) {
	if cfg.URL == "" {
		return eventbus.NewInProcessBroker(), nil
	}
	redisCfg := eventbus.DefaultRedisConfig()
	redisCfg.Addr = cfg.URL
	return eventbus.NewRedisBroker(context.Background(), redisCfg, log.Logger)
}
