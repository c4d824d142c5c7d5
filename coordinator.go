package fluxdm

import (
	"github.com/cognusion/go-sequence"
	"github.com/cognusion/go-timings"
	"github.com/cognusion/semaphore"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

var seq = sequence.New(0)

// Coordinator orchestrates one download end to end: probe, resume
// scan, pre-size, concurrent fan-out over incomplete Ranges, join.
//
// A Coordinator may be reused across multiple Download calls; its
// Config is fixed at construction and never mutated by a running
// download, per spec.md's Data Model lifecycle rules.
type Coordinator struct {
	Config Config
	Client Client

	// TimingsOut and DebugOut receive timing/debug log lines.
	// Messages are discarded if nil.
	TimingsOut *log.Logger
	DebugOut   *log.Logger

	// Progress, if non-nil, first receives the total size reported by
	// the probe, then the number of bytes each Range (or the
	// single-stream fallback) wrote, sent once that Range finishes.
	Progress chan<- int64
}

// NewCoordinator returns a Coordinator using cfg and client. Logged
// messages are discarded; set TimingsOut/DebugOut afterward to observe
// them.
func NewCoordinator(cfg Config, client Client) *Coordinator {
	if client == nil {
		client = DefaultClient
	}
	return &Coordinator{
		Config:     cfg.normalized(),
		Client:     client,
		TimingsOut: log.New(io.Discard, "", 0),
		DebugOut:   log.New(io.Discard, "", 0),
	}
}

// Download fetches url to path, resuming any partial file already at
// path. It returns the number of bytes written during this call (not
// the resulting file's total size) — zero if the file was already
// complete. When the server does not advertise range support, the
// resource is fetched in full through DownloadSingle instead; that
// path does not resume and does not detect an already complete file.
func (c *Coordinator) Download(ctx context.Context, url, path string) (int64, error) {
	timingsOut, debugOut := c.loggers()
	dlid := seq.NextHashID()

	defer timings.Track(fmt.Sprintf("[%s] download", dlid), time.Now(), timingsOut)

	var probeResult ProbeResult
	_, err := WithRetry(ctx, c.Config, func(ctx context.Context) (int64, error) {
		pr, perr := Probe(ctx, c.Client, url, debugOut)
		if perr != nil {
			return 0, perr
		}
		probeResult = pr
		return int64(pr.TotalSize), nil
	})
	if err != nil {
		return 0, err
	}

	if !probeResult.RangesSupported {
		debugOut.Printf("[%s] ranges unsupported, falling back to single-stream download\n", dlid)
		if c.Progress != nil {
			c.Progress <- int64(probeResult.TotalSize)
		}
		n, err := WithRetry(ctx, c.Config, func(ctx context.Context) (int64, error) {
			return DownloadSingle(ctx, c.Client, url, path, debugOut)
		})
		if c.Progress != nil && err == nil {
			c.Progress <- n
		}
		return n, err
	}

	rangeSet, err := ScanForResume(path, probeResult.TotalSize, c.Config)
	if err != nil {
		return 0, err
	}

	if c.Progress != nil {
		c.Progress <- int64(probeResult.TotalSize)
	}

	if rangeSet.AllComplete() {
		debugOut.Printf("[%s] already complete\n", dlid)
		return 0, nil
	}

	if err := presize(path, probeResult.TotalSize); err != nil {
		return 0, err
	}

	incomplete := rangeSet.Incomplete()
	debugOut.Printf("[%s] ranges supported: %d total, %d incomplete\n", dlid, len(rangeSet), len(incomplete))

	return c.fanOut(ctx, dlid, url, path, incomplete, timingsOut, debugOut)
}

// fanOut spawns one RetryDriver-wrapped RangeFetcher per incomplete
// Range, bounded to Config.MaxConcurrent in-flight at once (0 means
// unbounded), and joins them. The first retry-exhausted failure
// cancels the shared context so siblings stop promptly; bytes already
// written to disk are left in place so a later Download call can
// resume.
func (c *Coordinator) fanOut(ctx context.Context, dlid, url, path string, ranges RangeSet, timingsOut, debugOut *log.Logger) (int64, error) {
	g, gctx := errgroup.WithContext(ctx)

	maxConcurrent := c.Config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = len(ranges)
	}
	sem := semaphore.NewSemaphore(maxConcurrent)

	var (
		written   atomic.Int64
		firstErr  atomic.Error
		progress  = c.Progress
	)

	for i := range ranges {
		rng := &ranges[i]
		g.Go(func() error {
			sem.Lock()
			defer sem.Unlock()

			f, ferr := os.OpenFile(path, os.O_WRONLY, 0o644)
			if ferr != nil {
				err := &FileError{Detail: "open " + path, Err: ferr}
				if firstErr.Load() == nil {
					firstErr.Store(err)
				}
				return err
			}
			defer f.Close()

			n, err := WithRetry(gctx, c.Config, func(ctx context.Context) (int64, error) {
				return FetchRange(ctx, c.Client, url, rng, f, debugOut)
			})
			if err != nil {
				debugOut.Printf("[%s] range %d-%d failed after retries: %s\n", dlid, rng.Start, rng.End, err)
				if firstErr.Load() == nil {
					firstErr.Store(err)
				}
				return err
			}

			written.Add(n)
			if progress != nil {
				progress <- n
			}
			return nil
		})
	}

	joinErr := g.Wait()
	if err := firstErr.Load(); err != nil {
		return written.Load(), err
	}
	if joinErr != nil {
		// A goroutine died without going through firstErr (a bug, or a
		// context cancellation raced past our own Store), surface it.
		return written.Load(), &InternalError{Detail: joinErr.Error()}
	}
	return written.Load(), nil
}

// presize ensures a writable file exists at path and is at least size
// bytes long, via a sparse length-set operation. An existing file is
// never truncated.
func presize(path string, size uint64) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &FileError{Detail: "create " + path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &FileError{Detail: "stat " + path, Err: err}
	}
	if uint64(info.Size()) < size {
		if err := f.Truncate(int64(size)); err != nil {
			return &FileError{Detail: "presize " + path, Err: err}
		}
	}
	return nil
}

func (c *Coordinator) loggers() (*log.Logger, *log.Logger) {
	timingsOut, debugOut := c.TimingsOut, c.DebugOut
	if timingsOut == nil {
		timingsOut = log.New(io.Discard, "", 0)
	}
	if debugOut == nil {
		debugOut = log.New(io.Discard, "", 0)
	}
	return timingsOut, debugOut
}
