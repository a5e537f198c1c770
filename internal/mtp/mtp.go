// Package mtp implements filler.Device on top of the libmtp command line
// tools.
package mtp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Default tool names, looked up on PATH.
const (
	Detect   = "mtp-detect"
	Files    = "mtp-files"
	SendFile = "mtp-sendfile"
)

// DefaultMarkers identify a Kindle in the output of mtp-detect.
var DefaultMarkers = []string{"Amazon", "Kindle"}

// waitDelay bounds how long a killed tool may hold its output pipes open.
const waitDelay = time.Second

type Client struct {
	detect, files, sendfile string
	markers                 []string
	timeout                 time.Duration
}

type Option func(*Client)

// Programs overrides the tools used for detection, listing and sending.
// Empty names keep the defaults.
func Programs(detect, files, sendfile string) Option {
	return func(c *Client) {
		if detect != "" {
			c.detect = detect
		}
		if files != "" {
			c.files = files
		}
		if sendfile != "" {
			c.sendfile = sendfile
		}
	}
}

// Markers sets the substrings that identify the device in mtp-detect output.
func Markers(m ...string) Option {
	return func(c *Client) {
		c.markers = m
	}
}

// DetectTimeout bounds a single detection attempt.
func DetectTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		detect:   Detect,
		files:    Files,
		sendfile: SendFile,
		markers:  DefaultMarkers,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Detect runs mtp-detect and reports whether its output mentions one of the
// markers. The exit status of mtp-detect is ignored; it is the output that
// counts.
func (c *Client) Detect(ctx context.Context) (bool, error) {
	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(tctx, c.detect)
	cmd.WaitDelay = waitDelay
	out, err := cmd.Output()
	if ctx.Err() == nil && errors.Is(tctx.Err(), context.DeadlineExceeded) {
		return false, fmt.Errorf("%s: timed out after %s", c.detect, c.timeout)
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return false, fmt.Errorf("%s: %w", c.detect, err)
	}
	for _, m := range c.markers {
		if strings.Contains(string(out), m) {
			return true, nil
		}
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", c.detect, err)
	}
	return false, nil
}

// List runs mtp-files to completion and returns its standard output.
func (c *Client) List(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.files)
	cmd.WaitDelay = waitDelay
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.files, err)
	}
	return string(out), nil
}
