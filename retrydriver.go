package fluxdm

import (
	"github.com/eapache/go-resiliency/retrier"

	"context"
	"errors"
)

// fetchClassifier decides which FetchErrors are worth retrying. HTTP
// client errors (4xx) and invariant violations are not: retrying a
// 404 or a malformed URL just burns attempts. Everything else
// (transport failures, 5xx via *HTTPStatusError, local I/O hiccups) is
// retried.
type fetchClassifier struct{}

func (fetchClassifier) Classify(err error) retrier.Action {
	if err == nil {
		return retrier.Succeed
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retrier.Fail
	}
	switch e := err.(type) {
	case *HTTPStatusError:
		if e.Code >= 400 && e.Code < 500 {
			return retrier.Fail
		}
		return retrier.Retry
	case *UnexpectedFullResponseError, *InvalidURLError, *InternalError, *MissingContentLengthError:
		return retrier.Fail
	default:
		return retrier.Retry
	}
}

// WithRetry runs fn under spec.md §4.5's retry state machine: up to
// cfg.MaxRetries additional attempts beyond the first, with delay(k) =
// initialBackoff (constant mode) or initialBackoff*2^(k-1) (exponential
// mode) before the k-th retry, k counted from 1. The attempt index
// advances before the sleep, so the first retry always waits exactly
// cfg.InitialBackoff.
//
// fn is expected to mutate whatever Range it closes over as partial
// progress happens, so a retried attempt resumes from the new
// ResumePosition rather than re-fetching bytes already written — the
// retry loop itself carries no resume state of its own.
func WithRetry(ctx context.Context, cfg Config, fn func(ctx context.Context) (int64, error)) (int64, error) {
	r := retrier.New(cfg.backoffDelays(), fetchClassifier{})

	var (
		total int64
		lastN int64
	)
	try := func() error {
		n, err := fn(ctx)
		lastN = n
		if err != nil {
			return err
		}
		total = n
		return nil
	}

	if err := r.Run(try); err != nil {
		return lastN, err
	}
	return total, nil
}
