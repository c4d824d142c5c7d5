package fluxdm

import (
	"github.com/cognusion/go-timings"

	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

// ProbeResult is what Probe learns about a resource before any bytes
// are fetched.
type ProbeResult struct {
	TotalSize       uint64
	RangesSupported bool
}

// Probe issues a HEAD request for url and reports its total size and
// whether it advertises byte-range support. Any non-2xx status maps to
// *HTTPStatusError; a missing Content-Length maps to
// *MissingContentLengthError; transport failures map to *NetworkError.
func Probe(ctx context.Context, client Client, url string, out *log.Logger) (ProbeResult, error) {
	defer timings.Track("probe", time.Now(), out)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return ProbeResult{}, &InvalidURLError{Detail: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := client.Do(req)
	if err != nil {
		return ProbeResult{}, &NetworkError{Detail: "HEAD " + url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return ProbeResult{}, &HTTPStatusError{Code: res.StatusCode}
	}

	cl := res.Header.Get("Content-Length")
	if cl == "" {
		return ProbeResult{}, &MissingContentLengthError{}
	}
	totalSize, err := strconv.ParseUint(cl, 10, 64)
	if err != nil {
		return ProbeResult{}, &InternalError{Detail: fmt.Sprintf("Content-Length %q is not numeric", cl)}
	}

	rangesSupported := res.Header.Get("Accept-Ranges") == "bytes"

	return ProbeResult{TotalSize: totalSize, RangesSupported: rangesSupported}, nil
}
