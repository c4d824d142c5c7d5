package fluxdm

import (
	. "github.com/smartystreets/goconvey/convey"
	"github.com/eapache/go-resiliency/retrier"
	"github.com/fortytw2/leaktest"

	"context"
	"testing"
	"time"
)

func Test_FetchClassifier(t *testing.T) {
	Convey("fetchClassifier sorts errors into fail-fast and retriable", t, func() {
		c := fetchClassifier{}

		So(c.Classify(nil), ShouldEqual, retrier.Succeed)

		So(c.Classify(context.Canceled), ShouldEqual, retrier.Fail)
		So(c.Classify(context.DeadlineExceeded), ShouldEqual, retrier.Fail)

		So(c.Classify(&HTTPStatusError{Code: 404}), ShouldEqual, retrier.Fail)
		So(c.Classify(&HTTPStatusError{Code: 429}), ShouldEqual, retrier.Fail)
		So(c.Classify(&HTTPStatusError{Code: 500}), ShouldEqual, retrier.Retry)
		So(c.Classify(&HTTPStatusError{Code: 503}), ShouldEqual, retrier.Retry)

		So(c.Classify(&UnexpectedFullResponseError{}), ShouldEqual, retrier.Fail)
		So(c.Classify(&InvalidURLError{}), ShouldEqual, retrier.Fail)
		So(c.Classify(&InternalError{}), ShouldEqual, retrier.Fail)
		So(c.Classify(&MissingContentLengthError{}), ShouldEqual, retrier.Fail)

		So(c.Classify(&NetworkError{Detail: "boom"}), ShouldEqual, retrier.Retry)
	})
}

func Test_WithRetry(t *testing.T) {
	Convey("Given a function that fails once then succeeds", t, func() {
		defer leaktest.Check(t)()

		attempts := 0
		cfg := Config{MaxRetries: 3, InitialBackoff: 5 * time.Millisecond, BackoffMode: BackoffConstant}

		start := time.Now()
		n, err := WithRetry(context.Background(), cfg, func(ctx context.Context) (int64, error) {
			attempts++
			if attempts == 1 {
				return 0, &NetworkError{Detail: "transient"}
			}
			return 42, nil
		})
		elapsed := time.Since(start)

		Convey("it retries exactly once and returns the eventual success", func() {
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 42)
			So(attempts, ShouldEqual, 2)
			So(elapsed, ShouldBeGreaterThanOrEqualTo, cfg.InitialBackoff)
		})
	})

	Convey("Given a function that always fails with a retriable error", t, func() {
		defer leaktest.Check(t)()

		attempts := 0
		cfg := Config{MaxRetries: 3, InitialBackoff: time.Millisecond, BackoffMode: BackoffExponential}

		_, err := WithRetry(context.Background(), cfg, func(ctx context.Context) (int64, error) {
			attempts++
			return 0, &NetworkError{Detail: "down"}
		})

		Convey("it exhausts MaxRetries+1 total attempts and returns the last error", func() {
			So(err, ShouldNotBeNil)
			So(attempts, ShouldEqual, cfg.MaxRetries+1)
		})
	})

	Convey("Given a function that fails with a non-retriable error", t, func() {
		defer leaktest.Check(t)()

		attempts := 0
		cfg := Config{MaxRetries: 5, InitialBackoff: time.Millisecond, BackoffMode: BackoffConstant}

		_, err := WithRetry(context.Background(), cfg, func(ctx context.Context) (int64, error) {
			attempts++
			return 0, &HTTPStatusError{Code: 404}
		})

		Convey("it fails on the first attempt without retrying", func() {
			So(err, ShouldNotBeNil)
			So(attempts, ShouldEqual, 1)
		})
	})

	Convey("Given a context that is already cancelled", t, func() {
		defer leaktest.Check(t)()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		attempts := 0
		cfg := Config{MaxRetries: 3, InitialBackoff: time.Millisecond, BackoffMode: BackoffConstant}

		_, err := WithRetry(ctx, cfg, func(ctx context.Context) (int64, error) {
			attempts++
			return 0, ctx.Err()
		})

		Convey("it fails immediately without burning retries", func() {
			So(err, ShouldNotBeNil)
			So(attempts, ShouldEqual, 1)
		})
	})
}
