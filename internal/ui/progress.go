// Package ui reports the progress of a generation run on the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Phase is one stage of a generation run
type Phase string

const (
	PhaseParsing     Phase = "Parsing"
	PhaseDocumenting Phase = "Documenting"
	PhaseWriting     Phase = "Writing"
)

// GeneratePhases is the phase order of one generation run
var GeneratePhases = []Phase{PhaseParsing, PhaseDocumenting, PhaseWriting}

// Unit names what a phase counts
func (p Phase) Unit() string {
	switch p {
	case PhaseParsing:
		return "files"
	case PhaseDocumenting:
		return "classes"
	case PhaseWriting:
		return "formats"
	}
	return "items"
}

// ProgressBar tracks one phase. Increment is safe for concurrent use since
// files are parsed on several goroutines.
type ProgressBar struct {
	bar      *progressbar.ProgressBar
	phase    Phase
	done     atomic.Int64
	finished atomic.Bool
}

// newProgressBar draws a bar for phase on w. A negative total means the
// amount of work is not known up front and a spinner is shown instead.
func newProgressBar(phase Phase, total int, w io.Writer) *ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65 * time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	}
	if total < 0 {
		opts = append(opts, progressbar.OptionSpinnerType(14))
	}
	return &ProgressBar{bar: progressbar.NewOptions(total, opts...), phase: phase}
}

// Increment records one processed item
func (pb *ProgressBar) Increment() error {
	pb.done.Add(1)
	return pb.bar.Add(1)
}

// Count returns the number of processed items
func (pb *ProgressBar) Count() int {
	return int(pb.done.Load())
}

// Finish clears the bar. Calling it again does nothing.
func (pb *ProgressBar) Finish() error {
	if pb.finished.Swap(true) {
		return nil
	}
	return pb.bar.Finish()
}

// Pipeline runs the phases of a generation run in order, one bar at a time
type Pipeline struct {
	phases []Phase
	bars   []*ProgressBar
	output io.Writer
}

// NewPipeline creates a pipeline drawing on output
func NewPipeline(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{phases: phases, output: output}
}

// Disable hides the bars. Counts are still kept for Summary.
func (p *Pipeline) Disable() {
	p.output = io.Discard
}

// NextPhase finishes the running phase and starts the next one. It returns
// nil once every phase has been started.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	p.Finish()
	if len(p.bars) >= len(p.phases) {
		return nil
	}
	bar := newProgressBar(p.phases[len(p.bars)], total, p.output)
	p.bars = append(p.bars, bar)
	return bar
}

// Current returns the running phase, or "" before the first one
func (p *Pipeline) Current() Phase {
	if len(p.bars) == 0 {
		return ""
	}
	return p.bars[len(p.bars)-1].phase
}

// Finish finishes the running phase
func (p *Pipeline) Finish() {
	if len(p.bars) > 0 {
		_ = p.bars[len(p.bars)-1].Finish()
	}
}

// Summary lists what every started phase processed, e.g.
// "Parsing 12 files, Documenting 4 classes, Writing 2 formats"
func (p *Pipeline) Summary() string {
	parts := make([]string, 0, len(p.bars))
	for _, bar := range p.bars {
		parts = append(parts, fmt.Sprintf("%s %d %s", bar.phase, bar.Count(), bar.phase.Unit()))
	}
	return strings.Join(parts, ", ")
}
