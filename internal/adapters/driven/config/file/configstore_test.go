package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore isolates the store from the process environment.
func newTestStore(t *testing.T, env map[string]string) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	store.lookup = func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Equal(t, tmpDir, store.Dir())
}

func TestNewConfigStore_HomeFromEnvironment(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom")
	t.Setenv(EnvHome, dir)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.DirExists(t, dir)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t, nil)
	require.NoError(t, store.Set("a.string", "hello"))
	require.NoError(t, store.Set("a.int", int64(42)))
	require.NoError(t, store.Set("a.float", 2.5))
	require.NoError(t, store.Set("a.bool", true))
	require.NoError(t, store.Set("a.duration", "90s"))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("a.string"), "hello"},
		{"int", store.GetInt("a.int"), 42},
		{"float", store.GetFloat("a.float"), 2.5},
		{"int as float", store.GetFloat("a.int"), 42.0},
		{"bool", store.GetBool("a.bool"), true},
		{"duration", store.GetDuration("a.duration"), 90 * time.Second},
		{"missing string", store.GetString("nope"), ""},
		{"missing int", store.GetInt("nope"), 0},
		{"wrong type", store.GetInt("a.string"), 0},
		{"missing bool", store.GetBool("nope"), false},
		{"bad duration", store.GetDuration("a.string"), time.Duration(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_EnvironmentOverrides(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"THOT_INGEST_CHUNK_SIZE":   "1200",
		"THOT_SYNC_INCLUDE_CLOSED": "true",
		"THOT_HTTP_RATE_LIMIT":     "0.5",
	})
	require.NoError(t, store.Set("ingest.chunk_size", int64(3000)))

	assert.Equal(t, 1200, store.GetInt("ingest.chunk_size"))
	assert.True(t, store.GetBool("sync.include_closed"))
	assert.Equal(t, 0.5, store.GetFloat("http.rate_limit"))
	assert.Equal(t, "THOT_EMBEDDING_BASE_URL", EnvName("embedding.base_url"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("ingest.chunk_size", int64(2000)))
	require.NoError(t, store.Set("log.file", "/tmp/thot.log"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[ingest]")
	assert.Contains(t, string(raw), "chunk_size = 2000")

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 2000, reloaded.GetInt("ingest.chunk_size"))
	assert.Equal(t, "/tmp/thot.log", reloaded.GetString("log.file"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("sync.workers", int64(n))
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("sync.workers")
		}()
	}
	wg.Wait()
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("THOT_TEST_DOTENV=from-file\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("THOT_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("THOT_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
