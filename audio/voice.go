package audio

import (
	"fmt"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/aquatype/core"
)

// process is the subset of exec.Cmd the voice speaker drives
type process interface {
	Start() error
	Wait() error
	Kill() error
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Start() error { return p.cmd.Start() }
func (p *execProcess) Wait() error  { return p.cmd.Wait() }
func (p *execProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// VoiceSpeaker runs a text-to-speech command per utterance
// A new utterance interrupts the previous one
type VoiceSpeaker struct {
	mu      sync.Mutex
	cfg     *VoiceConfig
	current process
	closed  bool
	spawn   func(path string, args ...string) process
	log     *log.Logger
}

// NewVoiceSpeaker uses the command described by cfg
func NewVoiceSpeaker(cfg *VoiceConfig, logger *log.Logger) *VoiceSpeaker {
	return &VoiceSpeaker{
		cfg: cfg,
		log: logger,
		spawn: func(path string, args ...string) process {
			return &execProcess{cmd: exec.Command(path, args...)}
		},
	}
}

// Speak starts the command and returns without waiting for it to finish
func (v *VoiceSpeaker) Speak(text, lang string) error {
	if text == "" {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if v.current != nil {
		v.current.Kill()
	}

	p := v.spawn(v.cfg.Path, v.cfg.Args(text, lang)...)
	if err := p.Start(); err != nil {
		return fmt.Errorf("%s: %w", v.cfg.Name, err)
	}
	v.current = p

	core.Go(func() {
		err := p.Wait()
		v.mu.Lock()
		if v.current == p {
			v.current = nil
		}
		v.mu.Unlock()
		if err != nil && v.log != nil {
			v.log.Debug("speech ended", "cmd", v.cfg.Name, "err", err)
		}
	})
	return nil
}

// Close interrupts any running utterance and rejects further ones
func (v *VoiceSpeaker) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.current != nil {
		v.current.Kill()
		v.current = nil
	}
}
