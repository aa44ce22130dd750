package main

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hybridkit/navcache/internal/appcache"
	"github.com/hybridkit/navcache/internal/config"
	"github.com/hybridkit/navcache/internal/cookies"
	"github.com/hybridkit/navcache/internal/fetcher"
	"github.com/hybridkit/navcache/internal/httpcache"
	"github.com/hybridkit/navcache/internal/logging"
	"github.com/hybridkit/navcache/internal/server"
)

func getVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return info.Main.Version
}

func loadConfig(lookupEnv func(string) (string, bool)) (*config.Config, bool, error) {
	configPath, configPathSet := lookupEnv("NAVCACHE_CONFIG_PATH")
	if !configPathSet {
		configPath = "./navcache.yaml"
	}

	conf, err := config.Parse(configPath, lookupEnv)
	if err != nil {
		if !configPathSet && errors.Is(err, fs.ErrNotExist) {
			return config.Default(lookupEnv), true, nil
		}
		return nil, false, err
	}

	return conf, false, nil
}

func compileRules(conf *config.Config) ([]appcache.Rule, fetcher.CacheStrategy, error) {
	rules := make([]appcache.Rule, 0, len(conf.Rules))

	for _, rule := range conf.Rules {
		strategy, err := fetcher.ParseStrategy(rule.Strategy)
		if err != nil {
			return nil, fetcher.StrategyNone, err
		}
		rules = append(rules, appcache.Rule{Pattern: rule.Pattern, Strategy: strategy})
	}

	defaultStrategy, err := fetcher.ParseStrategy(conf.DefaultStrategy)
	if err != nil {
		return nil, fetcher.StrategyNone, err
	}

	return rules, defaultStrategy, nil
}

func main() {
	panicLogger, err := logging.CreateLogger(zerolog.WarnLevel, "json", os.Stderr)
	if err != nil {
		panic("BUG: invalid default logger")
	}

	conf, usingDefaults, err := loadConfig(os.LookupEnv)
	if err != nil {
		panicLogger.Fatal().Err(err).Msg("Unable to start server: invalid configuration")
	}

	logLevel, err := zerolog.ParseLevel(conf.Log.Level)
	if err != nil {
		panicLogger.Fatal().Err(err).Msg("Unable to start server: invalid configuration")
	}
	logger, err := logging.CreateLogger(logLevel, conf.Log.Format, os.Stderr)
	if err != nil {
		panicLogger.Fatal().Err(err).Msg("Unable to initialize logger")
	}

	logger.Info().Str("version", getVersion()).Msg("Starting navcached")
	if usingDefaults {
		logger.Info().
			Msg("navcache.yaml not found and NAVCACHE_CONFIG_PATH not set: Using default configuration")
	}

	bridge, err := cookies.NewBridge()
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to start server: can't setup the cookie store")
	}

	cachingTransport, err := httpcache.New(
		&http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          conf.Transport.MaxIdleConns,
			MaxConnsPerHost:       conf.Transport.MaxConnsPerHost,
			IdleConnTimeout:       conf.Transport.IdleConnTimeout.Duration,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
		conf.Cache.Path,
		&logger,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to start server: can't setup the transport cache")
	}
	defer func() {
		logger.Info().Msg("Closing the transport cache")
		if err := cachingTransport.Close(); err != nil {
			logger.Error().Err(err).Msg("Couldn't close the transport cache properly")
		}
	}()

	client := &http.Client{
		Timeout:   conf.Transport.Timeout.Duration,
		Transport: cachingTransport,
	}

	rules, defaultStrategy, err := compileRules(conf)
	if err != nil {
		logger.Fatal().Err(err).Msg("Unable to start server: invalid configuration")
	}

	policy, err := appcache.New(
		rules,
		defaultStrategy,
		conf.Cache.Path,
		conf.Cache.HotCacheSize,
		&logger,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to start server: can't setup the application cache")
	}
	defer func() {
		logger.Info().Msg("Closing the application cache")
		if err := policy.Close(); err != nil {
			logger.Error().Err(err).Msg("Couldn't close the application cache properly")
		}
	}()

	registry := prometheus.NewRegistry()

	fetch := fetcher.New(
		fetcher.NewRequestBuilder(bridge),
		fetcher.NewTransportExecutor(client, bridge, &logger),
		&logger,
		registry,
	)

	srv := server.New(conf, fetch, policy, &logger, registry)
	if err := srv.ListenAndServe(); err != nil {
		logger.Panic().Err(err).Msg("An error occurred while shutting down the server")
	}

	logger.Info().Msg("Server shut down")
}
