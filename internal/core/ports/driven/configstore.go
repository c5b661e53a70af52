package driven

import "time"

// ConfigStore holds the flat dot-keyed settings of Thot ("sync.workers").
// Environment variables shadow stored values; typed getters return the zero
// value for missing or unparsable keys.
type ConfigStore interface {
	// Get returns the effective value of key and whether it is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// GetDuration parses values such as "30s" or "10m".
	GetDuration(key string) time.Duration

	// Set stores a value and writes the file.
	Set(key string, value any) error
	Save() error
	Load() error

	// Path returns the configuration file path.
	Path() string
}
