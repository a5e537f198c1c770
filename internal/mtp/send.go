package mtp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/uhthomas/kindlefill/pkg/filler"
)

// Send runs mtp-sendfile for the file at path, streaming its combined output
// to sink line by line while it runs. Only a zero exit status is success.
func (c *Client) Send(ctx context.Context, path, name string, sink filler.LineSink) error {
	pr, pw, err := os.Pipe()
	if err != nil {
		return &filler.TransferError{Name: name, ExitCode: -1, Err: err}
	}
	defer pr.Close()

	cmd := exec.CommandContext(ctx, c.sendfile, path, name)
	cmd.Stdout = pw
	cmd.Stderr = pw
	cmd.WaitDelay = waitDelay
	err = cmd.Start()
	// The child holds its own copy of the write end; closing ours lets the
	// reader see EOF when the child exits.
	pw.Close()
	if err != nil {
		return &filler.TransferError{Name: name, ExitCode: -1, Err: err}
	}

	s := bufio.NewScanner(pr)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	s.Split(scanLines)
	for s.Scan() {
		line := strings.TrimRight(s.Text(), " \t")
		if line == "" {
			continue
		}
		if filler.IsProgress(line) {
			sink.Progress(line)
		} else {
			sink.Line(line)
		}
	}
	sink.Flush()
	scanErr := s.Err()
	if scanErr != nil {
		// Keep draining so the child never blocks on a full pipe.
		io.Copy(io.Discard, pr)
	}

	if err := cmd.Wait(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &filler.TransferError{Name: name, ExitCode: code, Err: err}
	}
	if scanErr != nil {
		return &filler.TransferError{Name: name, ExitCode: -1, Err: scanErr}
	}
	return nil
}

// scanLines is bufio.ScanLines that also ends a line at a bare carriage
// return, which mtp-sendfile uses to redraw its progress. A "\r\n" pair
// yields an extra empty line.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
