package fluxdm

import (
	. "github.com/smartystreets/goconvey/convey"
	"github.com/fortytw2/leaktest"

	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
)

var discardLog = log.New(io.Discard, "", 0)

func Test_Probe(t *testing.T) {
	Convey("Given a server that answers HEAD with Content-Length and Accept-Ranges", t, func() {
		defer leaktest.Check(t)()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			So(r.Method, ShouldEqual, http.MethodHead)
			w.Header().Set("Content-Length", "12345")
			w.Header().Set("Accept-Ranges", "bytes")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		Convey("Probe reports the size and range support", func() {
			res, err := Probe(context.Background(), DefaultClient, srv.URL, discardLog)
			So(err, ShouldBeNil)
			So(res.TotalSize, ShouldEqual, 12345)
			So(res.RangesSupported, ShouldBeTrue)
		})
	})

	Convey("Given a server that omits Accept-Ranges", t, func() {
		defer leaktest.Check(t)()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "100")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		Convey("Probe reports ranges unsupported", func() {
			res, err := Probe(context.Background(), DefaultClient, srv.URL, discardLog)
			So(err, ShouldBeNil)
			So(res.RangesSupported, ShouldBeFalse)
		})
	})

	Convey("Given a server that omits Content-Length", t, func() {
		defer leaktest.Check(t)()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		Convey("Probe returns MissingContentLengthError", func() {
			_, err := Probe(context.Background(), DefaultClient, srv.URL, discardLog)
			So(err, ShouldHaveSameTypeAs, &MissingContentLengthError{})
		})
	})

	Convey("Given a server that answers with a non-2xx status", t, func() {
		defer leaktest.Check(t)()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		Convey("Probe returns HTTPStatusError", func() {
			_, err := Probe(context.Background(), DefaultClient, srv.URL, discardLog)
			So(err, ShouldHaveSameTypeAs, &HTTPStatusError{})
			So(err.(*HTTPStatusError).Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given an unreachable server", t, func() {
		Convey("Probe returns NetworkError", func() {
			_, err := Probe(context.Background(), DefaultClient, "http://127.0.0.1:1/does-not-exist", discardLog)
			So(err, ShouldHaveSameTypeAs, &NetworkError{})
		})
	})

	Convey("Given an invalid URL", t, func() {
		Convey("Probe returns InvalidURLError", func() {
			_, err := Probe(context.Background(), DefaultClient, "://bad-url", discardLog)
			So(err, ShouldHaveSameTypeAs, &InvalidURLError{})
		})
	})
}
