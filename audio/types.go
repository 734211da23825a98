package audio

import (
	"errors"
)

// Speaker reads text aloud; implementations must not block the caller for the
// length of the utterance
type Speaker interface {
	Speak(text, lang string) error
}

// Clicker plays a short feedback sound
type Clicker interface {
	Click()
}

// VoiceType identifies a text-to-speech command
type VoiceType int

const (
	VoiceSay VoiceType = iota
	VoiceEspeakNG
	VoiceEspeak
	VoiceSpdSay
	VoiceCustom
)

// VoiceConfig describes a CLI speech backend
type VoiceConfig struct {
	Type VoiceType
	Name string
	Path string
}

// Sentinel errors
var (
	ErrNoVoiceBackend = errors.New("no text-to-speech command found")
	ErrClosed         = errors.New("speaker closed")
)

// Nop discards everything
type Nop struct{}

// Speak does nothing
func (Nop) Speak(string, string) error { return nil }

// Click does nothing
func (Nop) Click() {}

// Multi fans out to several speakers, returning the first error
type Multi []Speaker

// Speak forwards to every speaker
func (m Multi) Speak(text, lang string) error {
	var first error
	for _, s := range m {
		if err := s.Speak(text, lang); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Click forwards to every speaker that can click
func (m Multi) Click() {
	for _, s := range m {
		if c, ok := s.(Clicker); ok {
			c.Click()
		}
	}
}
