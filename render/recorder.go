package render

import (
	"sync"

	"github.com/lixenwraith/aquatype/grid"
)

// Frame is one recorded Render call
type Frame struct {
	Fg, Bg Color
	Offset grid.Point
	Lines  []string
}

// Recorder keeps every frame in memory; used by headless runs and tests
type Recorder struct {
	mu      sync.Mutex
	frames  []Frame
	flushes int
	flushed chan int
}

// NewRecorder creates a recorder whose Flushed channel buffers up to backlog notifications
func NewRecorder(backlog int) *Recorder {
	return &Recorder{flushed: make(chan int, backlog)}
}

// Render stores a copy of g
func (r *Recorder) Render(fg, bg Color, g *grid.Grid, offset grid.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{Fg: fg, Bg: bg, Offset: offset, Lines: g.Lines()})
}

// Flush counts the flush and notifies listeners without blocking
func (r *Recorder) Flush() error {
	r.mu.Lock()
	r.flushes++
	n := r.flushes
	r.mu.Unlock()

	select {
	case r.flushed <- n:
	default:
	}
	return nil
}

// Flushed delivers the running flush count after each flush
func (r *Recorder) Flushed() <-chan int {
	return r.flushed
}

// Frames returns a snapshot of recorded frames
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Last returns the most recent frame
func (r *Recorder) Last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Flushes returns the number of Flush calls
func (r *Recorder) Flushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushes
}
