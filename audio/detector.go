package audio

import (
	"os/exec"
	"path/filepath"
)

// DetectVoice searches for an available speech command
// Priority: say > espeak-ng > espeak > spd-say
func DetectVoice() (*VoiceConfig, error) {
	candidates := []struct {
		typ  VoiceType
		name string
	}{
		{VoiceSay, "say"},
		{VoiceEspeakNG, "espeak-ng"},
		{VoiceEspeak, "espeak"},
		{VoiceSpdSay, "spd-say"},
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c.name); err == nil {
			return &VoiceConfig{Type: c.typ, Name: c.name, Path: path}, nil
		}
	}
	return nil, ErrNoVoiceBackend
}

// ResolveVoice looks up a configured command, detecting one when empty
func ResolveVoice(command string) (*VoiceConfig, error) {
	if command == "" {
		return DetectVoice()
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, err
	}
	cfg := &VoiceConfig{Type: VoiceCustom, Name: filepath.Base(command), Path: path}
	switch cfg.Name {
	case "say":
		cfg.Type = VoiceSay
	case "espeak-ng":
		cfg.Type = VoiceEspeakNG
	case "espeak":
		cfg.Type = VoiceEspeak
	case "spd-say":
		cfg.Type = VoiceSpdSay
	}
	return cfg, nil
}

// Args builds the argument list for speaking text in lang
func (v *VoiceConfig) Args(text, lang string) []string {
	switch v.Type {
	case VoiceSay:
		if lang == "ja" {
			return []string{"-v", "Otoya", text}
		}
		return []string{text}
	case VoiceEspeakNG, VoiceEspeak:
		if lang != "" {
			return []string{"-v", lang, text}
		}
		return []string{text}
	case VoiceSpdSay:
		if lang != "" {
			return []string{"-l", lang, text}
		}
		return []string{text}
	}
	return []string{text}
}
