package fluxdm

import (
	"net/http"
	"time"
)

// userAgent is sent on every request the engine issues, recommended
// but not mandated by spec.md §6.
const userAgent = "FluxDM/1.0"

// Client is an interface satisfied by an *http.Client, so callers can
// substitute a fake transport in tests.
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

// DefaultClient is what the engine uses for HEAD probes, range
// fetches, and the single-stream fallback unless overridden. It does
// no retrying of its own: every call site that needs retry (Probe,
// FetchRange, DownloadSingle) is driven through WithRetry
// (retrydriver.go) against the Coordinator's Config, so there is a
// single retry/backoff implementation instead of one per transport.
var DefaultClient Client = &http.Client{Timeout: 60 * time.Second}
