package config_test

import (
	"io/fs"
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hybridkit/navcache/internal/config"
	"github.com/hybridkit/navcache/internal/units"
)

func noEnv(string) (string, bool) { return "", false }

func TestCanParseValidConfiguration(t *testing.T) {
	t.Parallel()

	configFile := path.Join(t.TempDir(), "config.yml")

	require.NoError(
		t,
		os.WriteFile(
			configFile,
			[]byte(`
gateway: 0.0.0.0:8080
admin_interface: localhost:8192
metrics: false
profiling: true
log:
  level: error
  format: console
cache:
  path: ./cache
  hot_cache_size: 16MiB
transport:
  timeout: 30s
  max_idle_conns: 5
  max_conns_per_host: 5
  idle_conn_timeout: 1m
rules:
  - pattern: "https://app.example.com/offline/**"
    strategy: application
  - pattern: "https://app.example.com/uncached/**"
    strategy: none
default_strategy: transport`),
			0o600,
		),
	)

	conf, err := config.Parse(configFile, noEnv)
	require.NoError(t, err)
	require.Equal(
		t,
		&config.Config{
			Gateway:         "0.0.0.0:8080",
			AdminInterface:  "localhost:8192",
			EnableMetrics:   false,
			EnableProfiling: true,
			Log:             config.Log{"error", "console"},
			Cache: config.Cache{
				Path:         "./cache",
				HotCacheSize: units.Bytes{Bytes: 16 * 1024 * 1024},
			},
			Transport: config.Transport{
				Timeout:         units.Duration{Duration: 30 * time.Second},
				MaxIdleConns:    5,
				MaxConnsPerHost: 5,
				IdleConnTimeout: units.Duration{Duration: time.Minute},
			},
			Rules: []config.StrategyRule{
				{Pattern: "https://app.example.com/offline/**", Strategy: "application"},
				{Pattern: "https://app.example.com/uncached/**", Strategy: "none"},
			},
			DefaultStrategy: "transport",
		},
		conf,
	)
}

func TestReportsCannotReadConfig(t *testing.T) {
	t.Parallel()

	_, err := config.Parse("nonexistent", noEnv)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	configFile := path.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("no_such_option: true"), 0o600))

	_, err := config.Parse(configFile, noEnv)
	require.Error(t, err)
}

func TestCanSetOverridesViaEnvironment(t *testing.T) {
	t.Parallel()

	conf := config.Default(func(envvar string) (string, bool) {
		switch envvar {
		case "NAVCACHE_ENABLE_PROFILING":
			return "1", true
		case "NAVCACHE_LOG_LEVEL":
			return "debug", true
		case "NAVCACHE_LOG_FORMAT":
			return "console", true
		case "NAVCACHE_CACHE_PATH":
			return "cache", true
		case "NAVCACHE_GATEWAY":
			return "0.0.0.0:1000", true
		case "NAVCACHE_ADMIN_INTERFACE":
			return "0.0.0.0:1001", true
		default:
			return "", false
		}
	})

	require.Equal(
		t,
		&config.Config{
			Gateway:         "0.0.0.0:1000",
			AdminInterface:  "0.0.0.0:1001",
			EnableMetrics:   true,
			EnableProfiling: true,
			Log:             config.Log{Level: "debug", Format: "console"},
			Cache: config.Cache{
				Path:         "cache",
				HotCacheSize: units.Bytes{Bytes: 64 * 1024 * 1024},
			},
			Transport: config.Transport{
				Timeout:         units.Duration{Duration: 5 * time.Minute},
				MaxIdleConns:    20,
				MaxConnsPerHost: 20,
				IdleConnTimeout: units.Duration{Duration: 90 * time.Second},
			},
			DefaultStrategy: "transport",
		},
		conf,
	)
}
