package provider

import (
	"net/http"

	"github.com/streamkit/ovp/internal/transport"
)

// Config holds construction-time options for a provider. The value is
// copied on construction; a provider's configuration never changes while
// resolutions are in flight.
type Config struct {
	// Executor sends built batches. If nil, a default HTTP executor is used.
	Executor transport.Executor

	// HTTPClient backs the default executor. Ignored when Executor is set.
	// If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// LogLevel configures the package logger on first use ("debug", "info", ...).
	LogLevel string
}

func (c Config) executor() transport.Executor {
	if c.Executor != nil {
		return c.Executor
	}
	return transport.NewHTTPExecutor(c.HTTPClient)
}
