package fetcher

import (
	"errors"
	"fmt"
)

var ErrUnknownStrategy = errors.New("unknown cache strategy")

// CacheStrategy determines, per URL, which caching layer a fetch goes
// through.
type CacheStrategy int

const (
	// StrategyNone skips the fetch entirely.
	StrategyNone CacheStrategy = iota
	// StrategyApplication fetches live and mirrors successes into the
	// application-managed cache, which also serves offline fallbacks.
	StrategyApplication
	// StrategyTransport fetches through the transport-managed HTTP cache,
	// retrying with a forced cache-only request when the network is down.
	StrategyTransport
)

func (s CacheStrategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyApplication:
		return "application"
	case StrategyTransport:
		return "transport"
	default:
		return fmt.Sprintf("CacheStrategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration string into a CacheStrategy.
func ParseStrategy(name string) (CacheStrategy, error) {
	switch name {
	case "none":
		return StrategyNone, nil
	case "application":
		return StrategyApplication, nil
	case "transport":
		return StrategyTransport, nil
	default:
		return StrategyNone, fmt.Errorf("%w: '%s'", ErrUnknownStrategy, name)
	}
}

// Policy decides how each URL is cached and owns the application-managed
// cache behind StrategyApplication.
type Policy interface {
	Classify(url string) CacheStrategy
	// LoadCached returns the stored response for the URL, or nil.
	LoadCached(url string) *AdaptedResponse
	// StoreCached persists the response for later offline use. Failures
	// must be handled internally, they never affect the fetch.
	StoreCached(url string, resp *AdaptedResponse)
}
