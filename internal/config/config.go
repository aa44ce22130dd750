package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/hybridkit/navcache/internal/units"
)

type Log struct {
	Level  string
	Format string
}

type Cache struct {
	Path         string
	HotCacheSize units.Bytes `yaml:"hot_cache_size"`
}

type Transport struct {
	Timeout         units.Duration
	MaxIdleConns    int            `yaml:"max_idle_conns"`
	MaxConnsPerHost int            `yaml:"max_conns_per_host"`
	IdleConnTimeout units.Duration `yaml:"idle_conn_timeout"`
}

// StrategyRule binds URLs to a caching strategy. Patterns are doublestar
// globs matched against the full request URL, first matching rule wins.
type StrategyRule struct {
	Pattern  string
	Strategy string
}

type Config struct {
	Gateway         string
	AdminInterface  string `yaml:"admin_interface"`
	EnableMetrics   bool   `yaml:"metrics"`
	EnableProfiling bool   `yaml:"profiling"`
	Log             Log
	Cache           Cache
	Transport       Transport
	Rules           []StrategyRule
	DefaultStrategy string `yaml:"default_strategy"`
}

func getBaseConfig(lookupEnv func(string) (string, bool)) *Config {
	defaultCachePath, ok := lookupEnv("NAVCACHE_DEFAULT_CACHE_PATH")
	if !ok {
		defaultCachePath = "_cache/"
	}

	return &Config{
		Gateway:        "localhost:3080",
		AdminInterface: "localhost:3081",
		EnableMetrics:  true,
		Log:            Log{zerolog.LevelInfoValue, "json"},
		Cache: Cache{
			Path:         defaultCachePath,
			HotCacheSize: units.Bytes{Bytes: 64 * 1024 * 1024},
		},
		Transport: Transport{
			Timeout:         units.Duration{Duration: 5 * time.Minute},
			MaxIdleConns:    20,
			MaxConnsPerHost: 20,
			IdleConnTimeout: units.Duration{Duration: 90 * time.Second},
		},
		DefaultStrategy: "transport",
	}
}

func Parse(configPath string, lookupEnv func(string) (string, bool)) (conf *Config, err error) {
	conf = getBaseConfig(lookupEnv)

	fp, err := os.Open(configPath) //nolint:gosec
	if err != nil {
		return conf, err
	}
	defer func() {
		if closeErr := fp.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	decoder := yaml.NewDecoder(fp)
	decoder.KnownFields(true)
	err = decoder.Decode(conf)

	applyOverrides(conf, lookupEnv)
	return conf, err
}

func Default(lookupEnv func(string) (string, bool)) *Config {
	conf := getBaseConfig(lookupEnv)
	applyOverrides(conf, lookupEnv)
	return conf
}

func applyOverrides(conf *Config, lookupEnv func(string) (string, bool)) {
	if val, _ := lookupEnv("NAVCACHE_ENABLE_PROFILING"); val == "1" {
		conf.EnableProfiling = true
	}

	if val, ok := lookupEnv("NAVCACHE_LOG_LEVEL"); ok {
		conf.Log.Level = val
	}

	if val, ok := lookupEnv("NAVCACHE_LOG_FORMAT"); ok {
		conf.Log.Format = val
	}

	if val, ok := lookupEnv("NAVCACHE_CACHE_PATH"); ok {
		conf.Cache.Path = val
	}

	if val, ok := lookupEnv("NAVCACHE_GATEWAY"); ok {
		conf.Gateway = val
	}

	if val, ok := lookupEnv("NAVCACHE_ADMIN_INTERFACE"); ok {
		conf.AdminInterface = val
	}
}
