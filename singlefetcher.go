package fluxdm

import (
	"github.com/cognusion/go-recyclable"
	"github.com/cognusion/go-timings"

	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// DownloadSingle fetches url in a single, non-ranged stream, for
// servers that don't advertise byte-range support. Once the server
// answers with a 2xx status it creates or truncates path; on any other
// status path is left untouched. There is no resume on this path, and
// DownloadSingle has no retry loop of its own: Coordinator.Download
// drives it through WithRetry.
func DownloadSingle(ctx context.Context, client Client, url, path string, out *log.Logger) (int64, error) {
	defer timings.Track("downloadSingle", time.Now(), out)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &InvalidURLError{Detail: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := client.Do(req)
	if err != nil {
		return 0, &NetworkError{Detail: "GET " + url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return 0, &HTTPStatusError{Code: res.StatusCode}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, &FileError{Detail: "create " + path, Err: err}
	}
	defer f.Close()

	buf := rPool.Get()
	defer buf.Close()

	if _, err := io.Copy(buf, res.Body); err != nil {
		return 0, &NetworkError{Detail: "reading response body", Err: err}
	}

	n, err := io.Copy(f, buf)
	if err != nil {
		return 0, &FileError{Detail: "writing " + path, Err: err}
	}

	if err := f.Sync(); err != nil {
		return n, &FileError{Detail: "flush " + path, Err: err}
	}

	out.Printf("downloadSingle %s: %d bytes\n", url, n)
	return n, nil
}
