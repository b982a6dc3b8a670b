package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kosymspell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2, cfg.Engine.MaxEditDistance)
	assert.Equal(t, 7, cfg.Engine.PrefixLength)
	assert.True(t, cfg.Engine.Decompose)
	assert.Equal(t, "custom_dict", cfg.Redis.Key)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  read_timeout: 5s
engine:
  max_edit_distance: 1
  prefix_length: 5
  decompose: false
dictionary:
  unigrams: /data/ko.txt
  bigrams: /data/ko_bigrams.txt
redis:
  enabled: false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 1, cfg.Engine.MaxEditDistance)
	assert.False(t, cfg.Engine.Decompose)
	assert.Equal(t, "/data/ko_bigrams.txt", cfg.Dictionary.Bigrams)
	assert.False(t, cfg.Redis.Enabled)

	cc := cfg.Corrector()
	assert.Equal(t, 1, cc.MaxEditDistance)
	assert.Equal(t, 5, cc.PrefixLength)
	assert.False(t, cc.DecomposeScript)
	assert.Equal(t, 8, cc.TopKSuggestions)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATABASE_URL", "postgres://localhost/ko")
	t.Setenv("KOSYMSPELL_MAX_EDIT_DISTANCE", "1")
	t.Setenv("KOSYMSPELL_DECOMPOSE", "false")
	t.Setenv("KOSYMSPELL_PREFIX_LENGTH", "not-a-number")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "postgres://localhost/ko", cfg.Database.URL)
	assert.Equal(t, 1, cfg.Engine.MaxEditDistance)
	assert.False(t, cfg.Engine.Decompose)
	assert.Equal(t, 7, cfg.Engine.PrefixLength)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "engine: [unclosed"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "engine:\n  max_edit_distance: 3\n  prefix_length: 3\n"))
	assert.ErrorContains(t, err, "prefix_length")
}
