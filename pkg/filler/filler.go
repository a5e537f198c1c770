// Package filler creates placeholder files of requested sizes and pushes them
// to a Kindle, removing the local copies afterwards.
package filler

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Filler creates filler files and sends them to a Device.
type Filler struct {
	device   Device
	sink     LineSink
	log      zerolog.Logger
	out      io.Writer
	dir      string
	prefix   string
	send     bool
	interval time.Duration
	attempts int
	sleep    func(context.Context, time.Duration) error
}

// New will create a new Filler for device with some sensible defaults
// applied. It will then apply opts.
func New(device Device, opts ...Option) *Filler {
	f := &Filler{
		device:   device,
		log:      zerolog.Nop(),
		out:      io.Discard,
		dir:      ".",
		prefix:   "filler",
		send:     true,
		interval: 5 * time.Second,
		sleep:    sleep,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.sink == nil {
		f.sink = logSink{f.log}
	}
	return f
}

// Run creates one filler file per size token, in order. In send mode it first
// waits for the device, sends and removes every file, and finally lists the
// files on the device. Per-token failures are recorded in the report and do
// not stop the run; Run only returns an error when the device never showed up
// or the staging directory could not be created.
func (f *Filler) Run(ctx context.Context, sizes []string) (*Report, error) {
	r := &Report{Dir: f.dir}
	if f.send {
		if err := f.Wait(ctx); err != nil {
			return r, err
		}
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return r, fmt.Errorf("create %s: %w", f.dir, err)
	}
	for i, token := range sizes {
		r.Outcomes = append(r.Outcomes, f.fill(ctx, i+1, token))
	}
	if !f.send {
		f.log.Info().Str("dir", f.dir).Msg("Files created")
		return r, nil
	}
	f.log.Info().Msg("Verifying files on Kindle")
	listing, err := f.device.List(ctx)
	if err != nil {
		f.log.Error().Err(err).Msg("Could not list Kindle files")
		return r, nil
	}
	r.Listing = listing
	fmt.Fprintln(f.out, "Files on Kindle:")
	fmt.Fprint(f.out, listing)
	return r, nil
}

func (f *Filler) fill(ctx context.Context, index int, token string) Outcome {
	o := Outcome{Index: index, Token: token, Stage: StageParse}
	log := f.log.With().Int("index", index).Str("size", token).Logger()

	size, err := ParseSize(token)
	if err != nil {
		log.Error().Err(err).Msg("Could not parse size")
		o.Err = err
		return o
	}

	name := FileName(f.prefix, token, index)
	file := &File{Name: name, Path: filepath.Join(f.dir, name), Size: size}
	o.File, o.Stage = file, StageCreate
	log = log.With().Str("file", name).Logger()
	if f.send {
		defer f.cleanup(log, file)
	}

	log.Info().Str("bytes", humanize.IBytes(uint64(size))).Msg("Creating filler file")
	if err := CreateSparse(file.Path, size); err != nil {
		log.Error().Err(err).Msg("Could not create filler file")
		o.Err = err
		return o
	}

	if !f.send {
		log.Info().Msg("Created locally")
		o.Stage = StageDone
		return o
	}

	o.Stage = StageSend
	log.Info().Msg("Sending to Kindle")
	if err := f.device.Send(ctx, file.Path, name, f.sink); err != nil {
		log.Error().Err(err).Msg("Failed to transfer to Kindle")
		o.Err = err
		return o
	}
	log.Info().Msg("Transferred to Kindle")
	o.Stage = StageDone
	return o
}

func (f *Filler) cleanup(log zerolog.Logger, file *File) {
	removed, err := Remove(file.Path)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Could not clean up")
	case !removed:
		log.Warn().Msg("Not found for cleanup")
	default:
		log.Info().Msg("Cleaned up")
	}
}
