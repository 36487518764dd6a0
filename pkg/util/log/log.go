// Package log builds the loggers used by the binaries.
package log

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
)

// NewLogger returns a logfmt logger writing to w, filtered to messages at or
// above lvl.
func NewLogger(w io.Writer, lvl dslog.Level) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	if lvl.Option != nil {
		logger = level.NewFilter(logger, lvl.Option)
	}
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.Caller(3))
}
