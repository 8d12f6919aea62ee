// Package logging builds the structured logger shared by the CLI components.
package logging

import (
	"io"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// Name is the service name attached to every log line.
const Name = "tasktrack"

// New returns a logger writing key/value lines to w.
// When debug is false all output is discarded, so normal CLI output stays clean.
func New(w io.Writer, debug bool) log.Logger {
	if !debug {
		return log.NewStdLogger(io.Discard)
	}
	logger := log.With(log.NewStdLogger(w),
		"ts", log.Timestamp(time.DateTime),
		"service.name", Name,
	)
	return log.NewFilter(logger, log.FilterLevel(log.LevelDebug))
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() log.Logger {
	return log.NewStdLogger(io.Discard)
}
