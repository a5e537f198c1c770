package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/uhthomas/kindlefill/internal/logging"
	"github.com/uhthomas/kindlefill/internal/mtp"
	"github.com/uhthomas/kindlefill/pkg/filler"
	"gopkg.in/alecthomas/kingpin.v2"
)

var version = "dev"

type config struct {
	sizes  []string
	prefix string
	send   bool
	dir    string

	interval time.Duration
	timeout  time.Duration
	attempts int
	markers  []string

	detect, files, sendfile string

	logLevel, logFormat string
}

func newApp(c *config) *kingpin.Application {
	app := kingpin.New("kindlefill", "Create filler files and send them to a Kindle over MTP.")
	app.Version(version)

	app.
		Arg("sizes", "File sizes to create (e.g. 4.78gb 1.5gb 100mb).").
		Required().
		StringsVar(&c.sizes)
	app.
		Flag("prefix", "Prefix for file names.").
		Envar("KINDLEFILL_PREFIX").
		Default("filler").
		StringVar(&c.prefix)
	app.
		Flag("send", "Send files to the Kindle. With --no-send files are created and kept locally.").
		Default("true").
		BoolVar(&c.send)
	app.
		Flag("dir", "Directory for filler files. Defaults to the directory of the executable.").
		Envar("KINDLEFILL_DIR").
		PlaceHolder("PATH").
		StringVar(&c.dir)
	app.
		Flag("poll-interval", "Delay between device detection attempts.").
		Default("5s").
		DurationVar(&c.interval)
	app.
		Flag("detect-timeout", "Timeout for a single device detection attempt.").
		Default("10s").
		DurationVar(&c.timeout)
	app.
		Flag("max-attempts", "Give up after this many detection attempts. 0 waits forever.").
		Default("0").
		IntVar(&c.attempts)
	app.
		Flag("marker", "Text in the mtp-detect output that identifies the device.").
		Default(mtp.DefaultMarkers...).
		StringsVar(&c.markers)
	app.
		Flag("mtp-detect", "Device detection tool.").
		Default(mtp.Detect).
		StringVar(&c.detect)
	app.
		Flag("mtp-files", "Device file listing tool.").
		Default(mtp.Files).
		StringVar(&c.files)
	app.
		Flag("mtp-sendfile", "File transfer tool.").
		Default(mtp.SendFile).
		StringVar(&c.sendfile)
	app.
		Flag("log-level", "Log level.").
		Envar("KINDLEFILL_LOG_LEVEL").
		Default("info").
		EnumVar(&c.logLevel, "trace", "debug", "info", "warn", "error")
	app.
		Flag("log-format", "Log format.").
		Envar("KINDLEFILL_LOG_FORMAT").
		Default("console").
		EnumVar(&c.logFormat, "console", "json")
	return app
}

// executableDir returns the directory holding the running binary.
func executableDir() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", err
	}
	if p, err = filepath.EvalSymlinks(p); err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}

// run executes the configured fill and returns the process exit code.
func run(ctx context.Context, c config, stdout, stderr io.Writer) int {
	cfg := logging.DefaultConfig()
	cfg.Format = c.logFormat
	if lvl, err := zerolog.ParseLevel(c.logLevel); err == nil {
		cfg.Level = lvl
	}
	log := logging.New(cfg, stderr)

	dir := c.dir
	if dir == "" {
		d, err := executableDir()
		if err != nil {
			log.Error().Err(err).Msg("Could not locate executable, use --dir")
			return 1
		}
		dir = d
	}

	device := mtp.New(
		mtp.Programs(c.detect, c.files, c.sendfile),
		mtp.Markers(c.markers...),
		mtp.DetectTimeout(c.timeout),
	)
	f := filler.New(device,
		filler.Dir(dir),
		filler.Prefix(c.prefix),
		filler.Send(c.send),
		filler.Interval(c.interval),
		filler.MaxAttempts(c.attempts),
		filler.Logger(log),
		filler.Output(stdout),
		filler.Sink(logging.NewProgress(stderr, log)),
	)

	r, err := f.Run(ctx, c.sizes)
	if err != nil {
		log.Error().Err(err).Msg("Failed to detect Kindle, exiting")
		return 1
	}
	if failed := r.Failed(); len(failed) > 0 {
		log.Warn().
			Int("failed", len(failed)).
			Int("total", len(r.Outcomes)).
			Msg("Some files were not created or transferred")
		return 1
	}
	return 0
}

func main() {
	var c config
	app := newApp(&c)
	if _, err := app.Parse(os.Args[1:]); err != nil {
		app.Fatalf("%s, try --help", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, c, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
