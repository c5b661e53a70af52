package file

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/IQ2i/thot/internal/core/domain"
)

// Configuration keys.
const (
	KeyChunkSize     = "ingest.chunk_size"
	KeyOverlap       = "ingest.overlap"
	KeyBatchSize     = "ingest.batch_size"
	KeyIncludeClosed = "sync.include_closed"
	KeySyncWorkers   = "sync.workers"
	KeySyncTimeout   = "sync.timeout"
	KeyHTTPTimeout   = "http.timeout"
	KeyRateLimit     = "http.rate_limit"
	KeyEmbedProvider = "embedding.provider"
	KeyEmbedModel    = "embedding.model"
	KeyEmbedBaseURL  = "embedding.base_url"
	KeyEmbedAPIKey   = "embedding.api_key"
	KeyGoogleFile    = "google.credentials_file"
	KeyGoogleToken   = "google.token"
	KeyLogFile       = "log.file"
	KeyMetricsFile   = "metrics.file"
	KeyDataDir       = "storage.data_dir"
)

// Defaults of the keys that are not domain settings.
const (
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultRateLimit     = 5.0
	DefaultEmbedProvider = "none"
)

// Settings is the resolved application configuration.
type Settings struct {
	Ingest domain.IngestSettings
	Sync   domain.SyncSettings

	HTTPTimeout time.Duration
	RateLimit   float64

	EmbedProvider string
	EmbedModel    string
	EmbedBaseURL  string
	EmbedAPIKey   string

	GoogleCredentialsFile string
	GoogleToken           string

	LogFile     string
	MetricsFile string
	DataDir     string
}

// Settings resolves every key against its default and validates the result.
func (s *ConfigStore) Settings() (Settings, error) {
	ingest := domain.DefaultIngestSettings()
	if _, ok := s.Get(KeyChunkSize); ok {
		ingest.ChunkSize = s.GetInt(KeyChunkSize)
	}
	if _, ok := s.Get(KeyOverlap); ok {
		ingest.Overlap = s.GetInt(KeyOverlap)
	}
	if _, ok := s.Get(KeyBatchSize); ok {
		ingest.BatchSize = s.GetInt(KeyBatchSize)
	}
	if err := ingest.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", s.filePath, err)
	}

	sync := domain.DefaultSyncSettings()
	sync.IncludeClosed = s.GetBool(KeyIncludeClosed)
	if n := s.GetInt(KeySyncWorkers); n > 0 {
		sync.Workers = n
	}
	if d := s.GetDuration(KeySyncTimeout); d > 0 {
		sync.Timeout = d
	}

	out := Settings{
		Ingest:                ingest,
		Sync:                  sync,
		HTTPTimeout:           DefaultHTTPTimeout,
		RateLimit:             DefaultRateLimit,
		EmbedProvider:         s.stringOr(KeyEmbedProvider, DefaultEmbedProvider),
		EmbedModel:            s.GetString(KeyEmbedModel),
		EmbedBaseURL:          s.GetString(KeyEmbedBaseURL),
		EmbedAPIKey:           s.GetString(KeyEmbedAPIKey),
		GoogleCredentialsFile: s.GetString(KeyGoogleFile),
		GoogleToken:           s.GetString(KeyGoogleToken),
		LogFile:               s.GetString(KeyLogFile),
		MetricsFile:           s.GetString(KeyMetricsFile),
		DataDir:               s.stringOr(KeyDataDir, filepath.Join(s.dir, "data")),
	}
	if d := s.GetDuration(KeyHTTPTimeout); d > 0 {
		out.HTTPTimeout = d
	}
	if _, ok := s.Get(KeyRateLimit); ok {
		out.RateLimit = s.GetFloat(KeyRateLimit)
	}
	return out, nil
}

func (s *ConfigStore) stringOr(key, fallback string) string {
	if v := s.GetString(key); v != "" {
		return v
	}
	return fallback
}
