// Package server runs the dispatch loop that owns the stage.
//
// One goroutine applies queued commands in arrival order and renders one frame
// each time a full tick interval passes with no command arriving.
package server

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/aquatype/audio"
	"github.com/lixenwraith/aquatype/command"
	"github.com/lixenwraith/aquatype/grid"
	"github.com/lixenwraith/aquatype/render"
	"github.com/lixenwraith/aquatype/stage"
)

// Colors selects the frame palette; Info is used while a typed character is shown
type Colors struct {
	Normal render.Pair
	Info   render.Pair
}

// Config configures the loop
type Config struct {
	Framerate int
	Colors    Colors
	// Announce speaks sprite names on appear and disappear
	Announce bool
	Lang     string
}

// Timer is the subset of time.Timer the loop uses
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

type stdTimer struct {
	t *time.Timer
}

func (s stdTimer) C() <-chan time.Time { return s.t.C }
func (s stdTimer) Stop() bool          { return s.t.Stop() }

// NewStdTimer wraps time.NewTimer
func NewStdTimer(d time.Duration) Timer {
	return stdTimer{t: time.NewTimer(d)}
}

// Option customizes a Server
type Option func(*Server)

// WithSpeaker sets the speech output
func WithSpeaker(sp audio.Speaker) Option {
	return func(s *Server) { s.speaker = sp }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithTimer replaces the timer factory, used by tests to drive ticks by hand
func WithTimer(fn func(time.Duration) Timer) Option {
	return func(s *Server) { s.newTimer = fn }
}

// Server owns the stage; nothing else may touch it while Run is active
type Server struct {
	cfg      Config
	stage    *stage.Stage
	queue    *command.Queue
	renderer render.Renderer
	speaker  audio.Speaker
	newTimer func(time.Duration) Timer
	log      *log.Logger

	ticks    atomic.Uint64
	commands atomic.Uint64
}

// New wires a server; call Run to start dispatching
func New(cfg Config, st *stage.Stage, q *command.Queue, r render.Renderer, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		stage:    st,
		queue:    q,
		renderer: r,
		speaker:  audio.Nop{},
		newTimer: NewStdTimer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	return s
}

// MinInterval bounds the idle time for framerates above 1000
const MinInterval = time.Millisecond

// Interval is the idle time between renders
func (s *Server) Interval() time.Duration {
	if s.cfg.Framerate <= 0 {
		return time.Second
	}
	d := time.Duration(1000/s.cfg.Framerate) * time.Millisecond
	if d < MinInterval {
		return MinInterval
	}
	return d
}

// Stats returns rendered ticks and applied commands
func (s *Server) Stats() (ticks, commands uint64) {
	return s.ticks.Load(), s.commands.Load()
}

// Run dispatches until the queue is closed and drained or ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	interval := s.Interval()
	s.log.Info("dispatch loop started", "interval", interval)
	defer s.log.Info("dispatch loop stopped", "ticks", s.ticks.Load(), "commands", s.commands.Load())

	for {
		if cmd, ok := s.queue.Pop(); ok {
			s.apply(cmd)
			continue
		}
		if s.queue.Drained() {
			return nil
		}

		// Fresh deadline after every command
		timer := s.newTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-s.queue.Ready():
			timer.Stop()
		case <-s.queue.Done():
			timer.Stop()
		case <-timer.C():
			// Commands that raced the deadline land in this frame
			for {
				cmd, ok := s.queue.Pop()
				if !ok {
					break
				}
				s.apply(cmd)
			}
			s.tick()
		}
	}
}

// tick renders exactly one frame
func (s *Server) tick() {
	colors := s.cfg.Colors.Normal
	if s.stage.HasTypedChar() {
		colors = s.cfg.Colors.Info
	}
	s.stage.UpdatePict()
	s.renderer.Render(colors.Fg, colors.Bg, s.stage.Frame(), grid.Point{})
	if err := s.renderer.Flush(); err != nil {
		s.log.Error("flush failed", "err", err)
	}
	s.ticks.Add(1)
}

func (s *Server) apply(c command.Command) {
	s.commands.Add(1)
	s.log.Debug("command", "kind", c.Kind(), "id", c.ID())

	switch c := c.(type) {
	case command.Appear:
		if c.Filename != "" {
			s.stage.Appear(c.Filename)
		}
		s.announce(c.Name)
	case command.Disappear:
		s.stage.Disappear()
		s.announce(c.Name)
	case command.Caption:
		s.stage.UpdateCaption(c.Text, c.Pos)
	case command.SubCaption:
		s.stage.UpdateSubCaption(c.Text, c.Pos)
	case command.Title:
		if c.Filename != "" {
			s.stage.Title(c.Filename)
		}
	case command.Speech:
		s.speak(c.Text, c.Lang)
	case command.Character:
		if c.Char == 0 {
			return
		}
		s.stage.TypeCharacter(c.Char)
		if cl, ok := s.speaker.(audio.Clicker); ok {
			cl.Click()
		}
	default:
		s.log.Warn("unhandled command", "kind", c.Kind())
	}
}

func (s *Server) announce(name string) {
	if s.cfg.Announce && name != "" {
		s.speak(name, s.cfg.Lang)
	}
}

func (s *Server) speak(text, lang string) {
	if text == "" {
		return
	}
	if err := s.speaker.Speak(text, lang); err != nil {
		s.log.Warn("speech failed", "err", err)
	}
}
