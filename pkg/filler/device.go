package filler

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Device represents the Kindle as reached through the MTP tools.
type Device interface {
	// Detect reports whether a Kindle is connected.
	Detect(ctx context.Context) (bool, error)
	// Send transfers the local file at path to the device as name, passing
	// its output to sink as it is produced. Failures are *TransferError.
	Send(ctx context.Context, path, name string, sink LineSink) error
	// List returns the device's file listing.
	List(ctx context.Context) (string, error)
}

// ProgressPrefix starts every progress line printed by the transfer tool.
const ProgressPrefix = "Progress:"

// IsProgress reports whether line is a progress update.
func IsProgress(line string) bool { return strings.HasPrefix(line, ProgressPrefix) }

// LineSink receives transfer output one line at a time.
type LineSink interface {
	// Progress receives a line that replaces the previous progress line.
	Progress(line string)
	// Line receives any other output.
	Line(line string)
	// Flush is called once the output stream has ended.
	Flush()
}

// logSink writes transfer output to a logger. It is used when no terminal
// sink was configured.
type logSink struct{ log zerolog.Logger }

func (s logSink) Progress(line string) { s.log.Debug().Msg(line) }
func (s logSink) Line(line string)     { s.log.Info().Msg(line) }
func (logSink) Flush()                 {}
