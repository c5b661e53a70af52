// Command thot imports project knowledge from issue trackers, wikis and
// documents and indexes it as chunks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/IQ2i/thot/internal/adapters/driven/config/file"
	"github.com/IQ2i/thot/internal/adapters/driven/embedding/langchain"
	"github.com/IQ2i/thot/internal/adapters/driven/storage/sqlite"
	"github.com/IQ2i/thot/internal/adapters/driving/cli"
	"github.com/IQ2i/thot/internal/connectors/github"
	"github.com/IQ2i/thot/internal/connectors/gitlab"
	"github.com/IQ2i/thot/internal/connectors/google"
	"github.com/IQ2i/thot/internal/connectors/google/docs"
	"github.com/IQ2i/thot/internal/connectors/manual"
	"github.com/IQ2i/thot/internal/connectors/redmine"
	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/core/services"
	"github.com/IQ2i/thot/internal/logger"
	"github.com/IQ2i/thot/internal/metrics"
	"github.com/IQ2i/thot/internal/normalisers"
	"github.com/IQ2i/thot/internal/postprocessors"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := file.LoadDotEnv(".env"); err != nil {
		logger.Warn("%v", err)
	}

	config, err := file.NewConfigStore("")
	if err != nil {
		logger.Error("Failed to open config: %v", err)
		return 1
	}
	settings, err := config.Settings()
	if err != nil {
		logger.Error("Invalid configuration in %s: %v", config.Dir(), err)
		return 1
	}

	if settings.LogFile != "" {
		closeLog, err := logger.OpenFile(settings.LogFile)
		if err != nil {
			logger.Warn("%v", err)
		} else {
			defer func() { _ = closeLog() }()
		}
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		logger.Error("Failed to open storage: %v", err)
		return 1
	}
	defer func() { _ = store.Close() }()

	projects := store.ProjectStore()
	sources := store.SourceStore()
	documents := store.DocumentStore()

	pipeline, err := postprocessors.NewDefaultPipeline(settings.Ingest)
	if err != nil {
		logger.Error("Invalid ingest settings: %v", err)
		return 1
	}

	embedder, err := newEmbedder(settings)
	if err != nil {
		logger.Error("Failed to configure embeddings: %v", err)
		return 1
	}

	registry := newConnectorRegistry(documents, settings)
	logger.Debug("Registered %d connector variants", registry.Len())

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Projects:  services.NewProjectService(projects),
		Sources:   services.NewSourceService(sources, projects),
		Documents: services.NewDocumentService(documents, sources),
		Sync: services.NewSynchronizer(sources, registry,
			services.WithSyncSettings(settings.Sync)),
		Ingest: services.NewIngestor(projects, sources, documents,
			normalisers.NewDefaultRegistry(), pipeline, store.Indexer(embedder),
			services.WithBatchSize(settings.Ingest.BatchSize),
			services.WithIngestWorkers(settings.Sync.Workers)),
		Config:   config,
		Settings: settings.Sync,
	})

	code := 0
	if err := cli.Execute(ctx); err != nil {
		code = 1
	}

	if settings.MetricsFile != "" {
		if err := metrics.WriteFile(settings.MetricsFile); err != nil {
			logger.Warn("%v", err)
		}
	}
	return code
}

// newConnectorRegistry builds the dispatch table of every supported source variant.
func newConnectorRegistry(documents driven.DocumentStore, settings file.Settings) *services.ConnectorRegistry {
	gitlabConnector := gitlab.New(documents,
		gitlab.WithTimeout(settings.HTTPTimeout),
		gitlab.WithRateLimit(settings.RateLimit))
	githubConnector := github.New(documents,
		github.WithTimeout(settings.HTTPTimeout),
		github.WithRateLimit(settings.RateLimit))
	redmineConnector := redmine.New(documents,
		redmine.WithTimeout(settings.HTTPTimeout),
		redmine.WithRateLimit(settings.RateLimit))
	docsConnector := docs.New(documents,
		docs.WithCredentials(google.Credentials{
			File:  settings.GoogleCredentialsFile,
			Token: settings.GoogleToken,
		}),
		docs.WithRateLimit(settings.RateLimit))

	registry := services.NewConnectorRegistry()
	registry.Register(domain.SourceKindIssueTracker, domain.FlavourGitLab, gitlabConnector)
	registry.Register(domain.SourceKindWikiPages, domain.FlavourGitLab, gitlabConnector)
	registry.Register(domain.SourceKindIssueTracker, domain.FlavourGitHub, githubConnector)
	registry.Register(domain.SourceKindWikiPages, domain.FlavourGitHub, githubConnector)
	registry.Register(domain.SourceKindIssueTracker, domain.FlavourRedmine, redmineConnector)
	registry.Register(domain.SourceKindWordProcessorDoc, domain.FlavourGoogleDocs, docsConnector)
	registry.Register(domain.SourceKindManual, "", manual.New())
	return registry
}

// newEmbedder returns nil when embeddings are disabled.
func newEmbedder(settings file.Settings) (driven.EmbeddingService, error) {
	if settings.EmbedProvider == "" || settings.EmbedProvider == langchain.ProviderNone {
		return nil, nil
	}
	svc, err := langchain.New(langchain.Config{
		Provider: settings.EmbedProvider,
		Model:    settings.EmbedModel,
		BaseURL:  settings.EmbedBaseURL,
		APIKey:   settings.EmbedAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding provider %s: %w", settings.EmbedProvider, err)
	}
	return svc, nil
}
