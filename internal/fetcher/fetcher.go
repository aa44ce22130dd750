package fetcher

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// Fetcher dispatches resource fetches according to the caching strategy
// the policy assigns to each URL.
type Fetcher struct {
	builder  *RequestBuilder
	executor *TransportExecutor
	logger   *zerolog.Logger
	metrics  *metrics
}

func New(
	builder *RequestBuilder,
	executor *TransportExecutor,
	logger *zerolog.Logger,
	registry prometheus.Registerer,
) *Fetcher {
	return &Fetcher{
		builder:  builder,
		executor: executor,
		logger:   logger,
		metrics:  newMetrics(registry),
	}
}

// Fetch runs the pipeline for a single resource request on the caller's
// goroutine. Network failures never escape: they degrade into cache
// fallbacks per strategy, reported through FetchResult.Offline.
func (f *Fetcher) Fetch(ctx context.Context, policy Policy, req ResourceRequest) FetchResult {
	logger := f.logger.With().
		Str("fetchId", xid.New().String()).
		Str("url", req.URL).
		Logger()

	strategy := policy.Classify(req.URL)

	result, outcome := f.fetch(ctx, policy, req, strategy, &logger)
	f.metrics.observe(strategy, outcome)

	return result
}

func (f *Fetcher) fetch(
	ctx context.Context,
	policy Policy,
	req ResourceRequest,
	strategy CacheStrategy,
	logger *zerolog.Logger,
) (FetchResult, string) {
	switch strategy {
	case StrategyApplication, StrategyTransport:
	case StrategyNone:
		return FetchResult{}, outcomeNone
	default:
		logger.Error().
			Stringer("strategy", strategy).
			Msg("policy classified the url with an unknown strategy")
		return FetchResult{}, outcomeInternalError
	}

	resp, err := f.attempt(ctx, req, false)
	if err == nil {
		adapted := Adapt(resp)
		if adapted == nil {
			return FetchResult{}, outcomeHTTPError
		}

		if strategy == StrategyApplication {
			policy.StoreCached(req.URL, adapted)
		}

		return FetchResult{Response: adapted}, outcomeOK
	}

	if errors.Is(err, ErrInvalidRequest) {
		logger.Error().Err(err).Msg("unable to build outbound request")
		return FetchResult{}, outcomeInternalError
	}

	logger.Warn().
		Err(err).
		Stringer("strategy", strategy).
		Msg("network failure, attempting offline fallback")

	if strategy == StrategyApplication {
		if cached := policy.LoadCached(req.URL); cached != nil {
			return FetchResult{Response: cached, Offline: true}, outcomeOfflineHit
		}
		return FetchResult{Offline: true}, outcomeOfflineMiss
	}

	// StrategyTransport: force a cache-only round so the HTTP cache can
	// answer with whatever it holds, stale included.
	resp, err = f.attempt(ctx, req, true)
	if err != nil {
		logger.Warn().Err(err).Msg("forced cache lookup failed")
		return FetchResult{Offline: true}, outcomeOfflineMiss
	}

	adapted := Adapt(resp)
	if adapted == nil {
		return FetchResult{Offline: true}, outcomeOfflineMiss
	}

	return FetchResult{Response: adapted, Offline: true}, outcomeOfflineHit
}

func (f *Fetcher) attempt(
	ctx context.Context,
	req ResourceRequest,
	cacheOnly bool,
) (*TransportResponse, error) {
	out, err := f.builder.Build(ctx, req, cacheOnly)
	if err != nil {
		return nil, err
	}

	return f.executor.Execute(out)
}
