package domain

import (
	"fmt"
	"io"
	"time"
)

// progressInterval is the minimum time between progress markers during
// a recursive scan.
const progressInterval = 200 * time.Millisecond

// progressMarker is the single character emitted per interval.
const progressMarker = "."

// ScanProgress is the run-scoped state of one tree scan: when the last
// progress marker was written, whether a line break is owed before the
// next regular log line, and the running totals for the summary. It is
// created per run and threaded through the traversal call chain; it is
// never shared across scans.
type ScanProgress struct {
	FilesVisited int
	FilesChanged int
	Failures     int

	out          io.Writer
	lastEmission time.Time
	owesNewline  bool
}

// NewScanProgress creates the progress state for a scan starting now,
// writing markers to out.
func NewScanProgress(out io.Writer) *ScanProgress {
	return &ScanProgress{out: out, lastEmission: time.Now()}
}

// Tick emits a progress marker when more than progressInterval has
// elapsed since the last emission, and records that a line break is
// owed before the next regular log line.
func (p *ScanProgress) Tick() {
	if time.Since(p.lastEmission) < progressInterval {
		return
	}
	fmt.Fprint(p.out, progressMarker)
	p.lastEmission = time.Now()
	p.owesNewline = true
}

// FlushNewline terminates a pending run of progress markers so the next
// log line starts on its own line. It is a no-op when nothing is owed.
func (p *ScanProgress) FlushNewline() {
	if !p.owesNewline {
		return
	}
	fmt.Fprintln(p.out)
	p.owesNewline = false
}
