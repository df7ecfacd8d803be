package proposalservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicgrid/proposal-service/internal/api"
	"github.com/civicgrid/proposal-service/internal/config"
	emb "github.com/civicgrid/proposal-service/internal/embeddings"
	"github.com/civicgrid/proposal-service/internal/factory"
	"github.com/civicgrid/proposal-service/internal/health"
	"github.com/civicgrid/proposal-service/internal/logger"
	"github.com/civicgrid/proposal-service/internal/services"
	"github.com/civicgrid/proposal-service/internal/vectorstore"
)

// Run starts the proposal service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("proposal-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("weaviate_url", cfg.WeaviateURL).
		Str("embed_model", cfg.EmbedModel).
		Str("chat_model", cfg.ChatModel).
		Msg("Proposal service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dependencies: vector store (with synchronous schema bootstrap),
	// embedding and completion clients. One handle per process, injected
	// downward; no package-level globals.
	store, err := factory.NewVectorStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Vector store unavailable")
		return err
	}
	embedder := factory.NewEmbeddingProvider(cfg)
	completer := factory.NewCompletionProvider(cfg)

	proposals := services.NewProposalService(store, embedder)
	assist := services.NewAssistService(proposals, completer, cfg.AskTopK)

	router := api.NewRouter(proposals, assist, cfg.SearchTopK)

	// Background health checkers feed /api/health; they observe but never
	// gate requests.
	startHealthCheckers(ctx, cfg, log, store, embedder)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// startHealthCheckers starts component checkers and the service-level
// aggregator, and binds the aggregate to the health endpoint.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, store vectorstore.Store, embedder emb.EmbeddingProvider) {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := vectorstore.NewStoreHealthChecker(store, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	embChecker := emb.NewProviderHealthChecker(embedder, log, probeTimeout)
	go embChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker, embChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
}
