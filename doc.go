// Package fluxdm implements a resumable, multi-connection HTTP
// download engine: given a remote resource URL and a destination file
// path, it fetches the resource via N concurrent byte-range requests,
// writes each range into its correct offset of a pre-sized destination
// file, survives transient network failures via bounded retry with
// backoff, and can resume an interrupted transfer by inspecting the
// partial file already on disk.
//
// Download is the entry point for most callers:
//
//	n, err := fluxdm.Download(ctx, "https://example.com/file.iso", "/tmp/file.iso")
//
// For control over chunk count, retry policy, or logging, construct a
// Coordinator directly with NewCoordinator.
package fluxdm

import "context"

// Download is a convenience wrapper around NewCoordinator(DefaultConfig(),
// nil).Download, for callers that don't need custom Config or logging.
func Download(ctx context.Context, url, path string) (int64, error) {
	return NewCoordinator(DefaultConfig(), nil).Download(ctx, url, path)
}
