// Package controller turns key presses into stage commands: a title screen and a
// typing session that walks through catalog pictures.
package controller

import (
	"io"
	"math/rand/v2"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/leonelquinteros/gotext"

	"github.com/lixenwraith/aquatype/catalog"
)

// Defaults for a session
const (
	DefaultTargets  = 10
	DefaultIdle     = 3 * time.Second
	DefaultInterval = 100 * time.Millisecond
)

// Commander is the command producer the controller drives
type Commander interface {
	Appear(filename, name string) error
	Disappear(name string) error
	Caption(text string, pos int) error
	SubCaption(text string, pos int) error
	Title(filename string) error
	Speech(text, lang string) error
	Character(ch rune) error
}

// Mode is the active screen
type Mode int

const (
	ModeTitle Mode = iota
	ModeTyping
)

func (m Mode) String() string {
	if m == ModeTyping {
		return "typing"
	}
	return "title"
}

// Config tunes a session
type Config struct {
	Targets int
	Random  bool
	// Idle is the pause between a finished word and the next picture
	Idle    time.Duration
	TitleID string
	// Lang is passed to speech for the finished word; empty disables speech
	Lang    string
}

// Result records one finished word
type Result struct {
	Path    string
	Words   string
	Elapsed time.Duration
	Typos   int
}

// Option customizes a Controller
type Option func(*Controller)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRand sets the source for random target order
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.log = l }
}

type typingStatus int

const (
	statusTyping typingStatus = iota
	statusIdle
)

type typing struct {
	pict   catalog.Pict
	path   string
	words  []rune
	pos    int
	start  time.Time
	typos  int
	status typingStatus
}

// Controller is driven from a single goroutine
type Controller struct {
	cfg  Config
	cat  *catalog.Catalog
	cmd  Commander
	now  func() time.Time
	rng  *rand.Rand
	log  *log.Logger
	mode Mode

	series  []int
	current *typing
	results []Result
}

// New creates a controller and shows the title screen
func New(cat *catalog.Catalog, cmd Commander, cfg Config, opts ...Option) *Controller {
	if cfg.Targets <= 0 {
		cfg.Targets = DefaultTargets
	}
	if cfg.Idle <= 0 {
		cfg.Idle = DefaultIdle
	}
	if cfg.TitleID == "" {
		cfg.TitleID = catalog.DefaultTitleID
	}
	c := &Controller{cfg: cfg, cat: cat, cmd: cmd, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}
	c.enterTitle()
	return c
}

// Mode returns the active screen
func (c *Controller) Mode() Mode {
	return c.mode
}

// Results returns finished words of the current or last session
func (c *Controller) Results() []Result {
	return append([]Result(nil), c.results...)
}

// Next returns the key the session expects, ok is false while nothing is typeable
func (c *Controller) Next() (rune, bool) {
	if c.mode == ModeTitle {
		return ' ', true
	}
	cur := c.current
	if cur == nil || cur.status != statusTyping || cur.pos >= len(cur.words) {
		return 0, false
	}
	return cur.words[cur.pos], true
}

// HandleKey processes one typed rune
func (c *Controller) HandleKey(r rune) {
	switch c.mode {
	case ModeTitle:
		if r == ' ' {
			c.enterTyping()
		}
	case ModeTyping:
		c.handleTyped(r)
	}
}

// Tick advances timers; call every DefaultInterval
func (c *Controller) Tick() {
	if c.mode != ModeTyping {
		return
	}
	if c.current == nil || (c.current.status == statusIdle && c.now().Sub(c.current.start) > c.cfg.Idle) {
		if !c.load() {
			c.enterTitle()
		}
	}
}

func (c *Controller) enterTitle() {
	c.mode = ModeTitle
	c.current = nil

	if t, err := c.cat.Title(c.cfg.TitleID); err != nil {
		c.log.Warn("title art missing", "id", c.cfg.TitleID, "err", err)
	} else {
		c.send(c.cmd.Title(c.cat.Path(t)))
	}
	c.send(c.cmd.Caption(gotext.Get("PRESS SPACE KEY"), 0))

	summary := ""
	if len(c.results) > 0 {
		var total time.Duration
		typos := 0
		for _, r := range c.results {
			total += r.Elapsed
			typos += r.Typos
		}
		summary = gotext.Get("%d words %.1f sec miss %d", len(c.results), total.Seconds(), typos)
	}
	c.send(c.cmd.SubCaption(summary, 0))
}

func (c *Controller) enterTyping() {
	c.mode = ModeTyping
	c.results = nil
	c.current = nil

	n := c.cat.Len()
	if c.cfg.Random {
		c.series = catalog.RandomIndexSeries(c.rng, n, c.cfg.Targets)
	} else {
		c.series = catalog.IndexSeries(n, c.cfg.Targets)
	}
	c.send(c.cmd.Caption("", 0))
	c.send(c.cmd.SubCaption("", 0))
}

// load shows the next target, false when the series is exhausted
func (c *Controller) load() bool {
	if len(c.series) == 0 {
		return false
	}
	i := c.series[0]
	c.series = c.series[1:]

	p, ok := c.cat.Pict(i)
	if !ok {
		return false
	}
	path := c.cat.Path(p)
	c.current = &typing{
		pict:  p,
		path:  path,
		words: []rune(p.En),
		start: c.now(),
	}
	c.send(c.cmd.Appear(path, p.En))
	c.send(c.cmd.Caption(p.En, 0))
	c.send(c.cmd.SubCaption(p.Romaji, 0))
	return true
}

func (c *Controller) handleTyped(r rune) {
	cur := c.current
	if cur == nil || cur.status != statusTyping || cur.pos >= len(cur.words) {
		return
	}
	if unicode.ToLower(cur.words[cur.pos]) != unicode.ToLower(r) {
		cur.typos++
		return
	}

	cur.pos++
	c.send(c.cmd.Caption(string(cur.words), cur.pos))
	c.send(c.cmd.Character(r))
	if cur.pos >= len(cur.words) {
		c.unload()
	}
}

func (c *Controller) unload() {
	cur := c.current
	now := c.now()
	res := Result{
		Path:    cur.path,
		Words:   string(cur.words),
		Elapsed: now.Sub(cur.start),
		Typos:   cur.typos,
	}
	c.results = append(c.results, res)

	c.send(c.cmd.Disappear(cur.pict.Ja))
	c.send(c.cmd.SubCaption(gotext.Get("%.1f sec miss %d", res.Elapsed.Seconds(), res.Typos), 0))
	if c.cfg.Lang != "" {
		c.send(c.cmd.Speech(res.Words, c.cfg.Lang))
	}

	cur.status = statusIdle
	cur.start = now
}

func (c *Controller) send(err error) {
	if err != nil {
		c.log.Warn("command rejected", "err", err)
	}
}
