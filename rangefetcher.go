package fluxdm

import (
	"github.com/cognusion/go-recyclable"
	"github.com/cognusion/go-timings"

	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// rPool supplies reusable scratch buffers for range-fetch attempts, so
// RetryDriver retrying the same Range doesn't allocate a fresh buffer
// on every attempt.
var rPool = recyclable.NewBufferPool()

// FetchRange executes one Range against url: issues the ranged GET,
// validates the response, seeks f to rng.ResumePosition(), streams the
// body in, and advances rng.Downloaded. It returns the number of bytes
// written on this call (not the Range's cumulative total).
//
// A complete Range is a no-op that returns (0, nil) immediately.
//
// Status 206 is always accepted. Status 200 is accepted only when
// rng.ResumePosition() == rng.Start (nothing had been downloaded yet);
// otherwise the server ignored the Range header and would overwrite
// bytes at the wrong offset, so it is rejected as
// *UnexpectedFullResponseError. Any other status is *HTTPStatusError.
func FetchRange(ctx context.Context, client Client, url string, rng *Range, f *os.File, out *log.Logger) (int64, error) {
	if rng.IsComplete() {
		return 0, nil
	}

	defer timings.Track(fmt.Sprintf("fetchRange %d-%d", rng.Start, rng.End), time.Now(), out)

	resumePos := rng.ResumePosition()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &InvalidURLError{Detail: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", resumePos, rng.End))

	res, err := client.Do(req)
	if err != nil {
		return 0, &NetworkError{Detail: fmt.Sprintf("GET range %d-%d", resumePos, rng.End), Err: err}
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusPartialContent:
		// expected.
	case http.StatusOK:
		if resumePos != rng.Start {
			return 0, &UnexpectedFullResponseError{ResumePosition: resumePos, Start: rng.Start}
		}
	default:
		return 0, &HTTPStatusError{Code: res.StatusCode}
	}

	if _, err := f.Seek(int64(resumePos), io.SeekStart); err != nil {
		return 0, &FileError{Detail: "seek", Err: err}
	}

	buf := rPool.Get()
	defer buf.Close()

	if _, err := io.Copy(buf, res.Body); err != nil {
		return 0, &NetworkError{Detail: "reading range body", Err: err}
	}

	n, err := io.Copy(f, buf)
	if err != nil {
		return 0, &FileError{Detail: "writing range", Err: err}
	}

	rng.Downloaded += uint64(n)
	out.Printf("fetched %d-%d: %d bytes\n", rng.Start, rng.End, n)
	return n, nil
}
