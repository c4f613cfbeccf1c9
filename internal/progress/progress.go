// Package progress renders the console progress bar for folder uploads.
package progress

import (
	"fmt"
	"io"
	"strings"
)

// barWidth is the number of cells in the bar. Each cell is 5%.
const barWidth = 20

// Bar is a ProgressTracker that redraws a single console line.
type Bar struct {
	w       io.Writer
	drawn   bool
	stopped bool
}

// NewBar creates a Bar writing to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

// Render returns the bar line for completed out of total, without the leading carriage return.
// A total of zero renders as 100%.
func Render(completed, total int) string {
	pct := 100
	if total > 0 {
		pct = completed * 100 / total
	}
	pct = max(0, min(pct, 100))

	filled := pct / 5
	return fmt.Sprintf("[%s%s] %d/%d (%d%%)",
		strings.Repeat("=", filled),
		strings.Repeat(" ", barWidth-filled),
		completed, total, pct)
}

// Update redraws the bar.
func (b *Bar) Update(completed, total int) {
	if b.stopped {
		return
	}
	_, _ = fmt.Fprintf(b.w, "\r%s", Render(completed, total))
	b.drawn = true
}

// Complete ends the bar line.
func (b *Bar) Complete() {
	b.finish()
}

// Error ends the bar line so the error report starts on a fresh line.
func (b *Bar) Error(_ error) {
	b.finish()
}

func (b *Bar) finish() {
	if b.drawn && !b.stopped {
		_, _ = fmt.Fprintln(b.w)
	}
	b.stopped = true
}
