package filler

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type Option func(*Filler)

// Dir sets the directory filler files are staged in.
func Dir(p string) Option {
	return func(f *Filler) {
		f.dir = p
	}
}

func Prefix(p string) Option {
	return func(f *Filler) {
		f.prefix = p
	}
}

// Send controls whether files are transferred. When false, files are kept
// locally and the device is never contacted.
func Send(send bool) Option {
	return func(f *Filler) {
		f.send = send
	}
}

// Interval sets the delay between detection attempts.
func Interval(d time.Duration) Option {
	return func(f *Filler) {
		f.interval = d
	}
}

// MaxAttempts limits the number of detection attempts. Zero waits forever.
func MaxAttempts(n int) Option {
	return func(f *Filler) {
		f.attempts = n
	}
}

// Sleep replaces the function used to wait between detection attempts.
func Sleep(fn func(context.Context, time.Duration) error) Option {
	return func(f *Filler) {
		f.sleep = fn
	}
}

func Logger(log zerolog.Logger) Option {
	return func(f *Filler) {
		f.log = log
	}
}

// Output sets where the device listing is written.
func Output(w io.Writer) Option {
	return func(f *Filler) {
		f.out = w
	}
}

// Sink sets the receiver of transfer output.
func Sink(s LineSink) Option {
	return func(f *Filler) {
		f.sink = s
	}
}
