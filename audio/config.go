package audio

import (
	"github.com/charmbracelet/log"
)

// Config selects which speakers are active
type Config struct {
	Enabled      bool
	VoiceCommand string
	MasterVolume float64
}

// DefaultConfig enables audio with autodetected speech at 70% volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.7,
	}
}

// Closer is implemented by speakers holding OS resources
type Closer interface {
	Close()
}

// New assembles the speaker stack for cfg
// Speech uses a TTS command when one is found, otherwise chimes; device failures
// degrade to silence rather than failing startup
func New(cfg Config, logger *log.Logger) (Speaker, func()) {
	if !cfg.Enabled {
		return Nop{}, func() {}
	}

	var speakers Multi
	cue := NewCueSpeaker(max(min(cfg.MasterVolume, 1), 0))
	if err := cue.Initialize(); err != nil {
		logger.Warn("audio device unavailable", "err", err)
		cue = nil
	}

	if voice, err := ResolveVoice(cfg.VoiceCommand); err == nil {
		logger.Info("speech backend", "cmd", voice.Name)
		speakers = append(speakers, NewVoiceSpeaker(voice, logger))
		// Typing clicks still come from the device
		if cue != nil {
			speakers = append(speakers, clickOnly{cue})
		}
	} else if cue != nil {
		logger.Info("no speech backend, using chimes", "err", err)
		speakers = append(speakers, cue)
	}

	closeAll := func() {
		for _, s := range speakers {
			if c, ok := s.(Closer); ok {
				c.Close()
			}
		}
	}
	if len(speakers) == 0 {
		return Nop{}, closeAll
	}
	return speakers, closeAll
}

// clickOnly exposes only the click of a cue speaker
type clickOnly struct {
	cue *CueSpeaker
}

func (c clickOnly) Speak(string, string) error { return nil }
func (c clickOnly) Click()                     { c.cue.Click() }
func (c clickOnly) Close()                     { c.cue.Close() }
