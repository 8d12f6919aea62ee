package restapi

import (
	"net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// loggingTransport logs every round trip to the task service at debug level.
type loggingTransport struct {
	next http.RoundTripper
	log  *log.Helper
}

func newLoggingTransport(next http.RoundTripper, logger log.Logger) *loggingTransport {
	return &loggingTransport{
		next: next,
		log:  log.NewHelper(log.With(logger, "module", "http")),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.log.Debugw("msg", "request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", duration,
			"error", err,
		)
		return nil, err
	}

	t.log.Debugw("msg", "request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", res.StatusCode,
		"duration", duration,
	)
	return res, nil
}
