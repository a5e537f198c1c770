package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Progress renders transfer progress in place on a terminal and sends every
// other line to a logger. It implements filler.LineSink.
type Progress struct {
	w   io.Writer
	log zerolog.Logger
	// width of the progress line currently on screen, 0 when there is none.
	width int
}

func NewProgress(w io.Writer, log zerolog.Logger) *Progress {
	return &Progress{w: w, log: log}
}

// Progress overwrites the current progress line with line.
func (p *Progress) Progress(line string) {
	pad := ""
	if n := p.width - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(p.w, "\r%s%s", line, pad)
	p.width = len(line)
}

// Line ends any progress line and logs line.
func (p *Progress) Line(line string) {
	p.Flush()
	p.log.Info().Msg(line)
}

// Flush moves the cursor past the progress line, if any.
func (p *Progress) Flush() {
	if p.width == 0 {
		return
	}
	fmt.Fprintln(p.w)
	p.width = 0
}
