package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// CueSpeaker renders speech requests as chimes through the sound card
type CueSpeaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewCueSpeaker creates an uninitialized cue speaker
func NewCueSpeaker(volume float64) *CueSpeaker {
	return &CueSpeaker{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the audio device
func (c *CueSpeaker) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Speak plays a chime shaped by text
func (c *CueSpeaker) Speak(text, _ string) error {
	if text == "" {
		return nil
	}
	c.play(CreateChime(text, c.volume, sampleRate))
	return nil
}

// Click plays a short tick
func (c *CueSpeaker) Click() {
	c.play(CreateClick(c.volume, sampleRate))
}

func (c *CueSpeaker) play(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	// The mixer is read by the speaker goroutine
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Close silences pending sounds and releases the device
func (c *CueSpeaker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}
