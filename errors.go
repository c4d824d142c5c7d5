package fluxdm

import "fmt"

// NetworkError wraps a transport-level failure: DNS, connect, TLS,
// or a broken pipe mid-stream.
type NetworkError struct {
	Detail string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %s: %s", e.Detail, e.Err)
	}
	return fmt.Sprintf("network error: %s", e.Detail)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError is returned for any non-2xx status on a probe or
// range request.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d", e.Code)
}

// MissingContentLengthError is returned when a probe succeeds but the
// server gave no Content-Length, so the download cannot be partitioned.
type MissingContentLengthError struct{}

func (e *MissingContentLengthError) Error() string {
	return "probe response has no Content-Length"
}

// UnexpectedFullResponseError is returned when a resuming ranged GET
// (resumePosition > range.Start) is answered with a 200 instead of a
// 206: writing the full body at resumePosition would corrupt the file.
type UnexpectedFullResponseError struct {
	ResumePosition uint64
	Start          uint64
}

func (e *UnexpectedFullResponseError) Error() string {
	return fmt.Sprintf("server returned full response (200) to a resuming range request (resumePosition=%d, start=%d)", e.ResumePosition, e.Start)
}

// FileError wraps a local I/O failure: create, open, seek, write, or
// flush.
type FileError struct {
	Detail string
	Err    error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file error: %s: %s", e.Detail, e.Err)
	}
	return fmt.Sprintf("file error: %s", e.Detail)
}

func (e *FileError) Unwrap() error { return e.Err }

// InvalidURLError is returned when a URL is rejected pre-flight.
type InvalidURLError struct {
	Detail string
	Err    error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid URL: %s: %s", e.Detail, e.Err)
	}
	return fmt.Sprintf("invalid URL: %s", e.Detail)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// InternalError marks a task-runtime or invariant-violation failure,
// one that isn't expected to be meaningfully retriable.
type InternalError struct {
	Detail string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Detail)
}
