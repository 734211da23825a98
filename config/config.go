// Package config loads runtime settings: defaults, then an optional TOML file,
// then AQUATYPE_* environment overrides. Flags are applied by the caller last.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/term"

	"github.com/lixenwraith/aquatype/effect"
	"github.com/lixenwraith/aquatype/render"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid")

// Fallback terminal size when stdout is not a terminal
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// MaxFramerate is the highest framerate with a whole-millisecond interval
const MaxFramerate = 1000

const envPrefix = "AQUATYPE_"

// Stage geometry; zero width or height means the terminal size
type Stage struct {
	Width       int `toml:"width"`
	Height      int `toml:"height"`
	SpriteWidth int `toml:"sprite_width"`
	Framerate   int `toml:"framerate"`

	// FadeDirection is up, down, left or right; empty picks one per sprite
	FadeDirection string `toml:"fade_direction"`
}

// Fade returns the fixed fade direction, ok is false when fades are random
func (s Stage) Fade() (d effect.Direction, ok bool, err error) {
	if s.FadeDirection == "" {
		return 0, false, nil
	}
	d, err = effect.ParseDirection(strings.ToLower(strings.TrimSpace(s.FadeDirection)))
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", err, ErrInvalid)
	}
	return d, true, nil
}

// Colors of the two palettes
type Colors struct {
	Normal   render.Color `toml:"normal"`
	NormalBg render.Color `toml:"normal_bg"`
	Info     render.Color `toml:"info"`
	InfoBg   render.Color `toml:"info_bg"`
}

type Assets struct {
	PictDir  string `toml:"pict_dir"`
	FontPath string `toml:"font_path"`
}

type Audio struct {
	Enabled      bool    `toml:"enabled"`
	VoiceCommand string  `toml:"voice_command"`
	MasterVolume float64 `toml:"master_volume"`
	// Announce speaks picture names as they appear and disappear
	Announce     bool    `toml:"announce"`
}

type Game struct {
	Targets   int    `toml:"targets"`
	Random    bool   `toml:"random"`
	Lang      string `toml:"lang"`
	LocaleDir string `toml:"locale_dir"`
}

// Config is the root document
type Config struct {
	Stage  Stage  `toml:"stage"`
	Colors Colors `toml:"colors"`
	Assets Assets `toml:"assets"`
	Audio  Audio  `toml:"audio"`
	Game   Game   `toml:"game"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Stage: Stage{
			SpriteWidth: 40,
			Framerate:   10,
		},
		Colors: Colors{
			Normal:   render.White,
			NormalBg: render.Black,
			Info:     render.Black,
			InfoBg:   render.Cyan,
		},
		Assets: Assets{PictDir: "picts"},
		Audio: Audio{
			Enabled:      true,
			MasterVolume: 0.7,
		},
		Game: Game{
			Targets:   10,
			LocaleDir: "locales",
		},
	}
}

// Load layers the file at path (optional when empty or missing) and the environment over Default
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML text over Default, without environment overrides
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from AQUATYPE_* variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"FRAMERATE", &c.Stage.Framerate},
		{"STAGE_WIDTH", &c.Stage.Width},
		{"STAGE_HEIGHT", &c.Stage.Height},
		{"SPRITE_WIDTH", &c.Stage.SpriteWidth},
	}
	for _, e := range ints {
		v, ok := lookup(envPrefix + e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s=%q: %w", envPrefix, e.key, v, ErrInvalid)
		}
		*e.dst = n
	}

	if v, ok := lookup(envPrefix + "AUDIO_ENABLED"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sAUDIO_ENABLED=%q: %w", envPrefix, v, ErrInvalid)
		}
		c.Audio.Enabled = b
	}
	if v, ok := lookup(envPrefix + "FADE_DIRECTION"); ok {
		c.Stage.FadeDirection = v
	}
	if v, ok := lookup(envPrefix + "LANG"); ok {
		c.Game.Lang = v
	}
	return nil
}

// Validate checks values the stage cannot run with
func (c Config) Validate() error {
	switch {
	case c.Stage.Framerate <= 0 || c.Stage.Framerate > MaxFramerate:
		return fmt.Errorf("framerate %d: %w", c.Stage.Framerate, ErrInvalid)
	case c.Stage.Width < 0 || (c.Stage.Height != 0 && c.Stage.Height < 3):
		return fmt.Errorf("stage %dx%d: %w", c.Stage.Width, c.Stage.Height, ErrInvalid)
	case c.Stage.SpriteWidth <= 0:
		return fmt.Errorf("sprite width %d: %w", c.Stage.SpriteWidth, ErrInvalid)
	case c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1:
		return fmt.Errorf("master volume %.2f: %w", c.Audio.MasterVolume, ErrInvalid)
	case c.Game.Targets < 0:
		return fmt.Errorf("targets %d: %w", c.Game.Targets, ErrInvalid)
	}
	if _, _, err := c.Stage.Fade(); err != nil {
		return err
	}
	return nil
}

// Resolve fills a zero stage size from the terminal on fd
func (c *Config) Resolve(fd int) {
	if c.Stage.Width > 0 && c.Stage.Height > 0 {
		return
	}
	w, h := TerminalSize(fd)
	if c.Stage.Width == 0 {
		c.Stage.Width = w
	}
	if c.Stage.Height == 0 {
		c.Stage.Height = h
	}
}

// TerminalSize reports the size of fd, or the fallback when fd is not a terminal
func TerminalSize(fd int) (width, height int) {
	if !term.IsTerminal(fd) {
		return FallbackWidth, FallbackHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return FallbackWidth, FallbackHeight
	}
	return w, h
}
