package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
pair: ETH_USD
idMode: sequential
logging:
  level: debug
  format: console
metricsAddr: ":9100"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ETH_USD", cfg.Pair)
	assert.Equal(t, IDModeSequential, cfg.IDMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `pair: BTC_USDT`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BTC_USDT", cfg.Pair)
	assert.Equal(t, IDModeGUID, cfg.IDMode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.Error(t, Validate(Config{}))

	cfg := Default()
	assert.NoError(t, Validate(cfg))

	cfg.IDMode = "random"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Logging.Level = "verbose"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Logging.Format = "xml"
	assert.Error(t, Validate(cfg))
}
