package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// constant streams full-scale samples forever
type constant struct{}

func (constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
}

func (constant) Err() error { return nil }

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if a := abs(buf[i][0]); a > peak {
				peak = a
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestOscillatorShapes(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveTriangle} {
		osc := NewOscillator(440.0, 100*time.Millisecond, wave, rate)

		samples := make([][2]float64, 100)
		n, ok := osc.Stream(samples)
		if !ok || n != 100 {
			t.Fatalf("wave %d: expected 100 samples, got %d ok=%v", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
				t.Errorf("wave %d: sample %d out of range: %f", wave, i, samples[i][0])
			}
			if samples[i][0] != samples[i][1] {
				t.Errorf("wave %d: sample %d channels differ", wave, i)
			}
		}
		if osc.Err() != nil {
			t.Errorf("Expected no error, got: %v", osc.Err())
		}
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 10 * time.Millisecond
	expectedSamples := rate.N(duration)

	osc := NewOscillator(440.0, duration, WaveSine, rate)

	samples := make([][2]float64, expectedSamples*2)
	n, ok := osc.Stream(samples)
	if !ok || n != expectedSamples {
		t.Errorf("Expected %d samples, got %d ok=%v", expectedSamples, n, ok)
	}

	n2, ok2 := osc.Stream(make([][2]float64, 10))
	if ok2 || n2 != 0 {
		t.Errorf("Expected exhausted oscillator, got n=%d ok=%v", n2, ok2)
	}
}

func TestEnvelopeAttackPhase(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond
	attack := 50 * time.Millisecond

	env := NewEnvelope(constant{}, duration, attack, 10*time.Millisecond, rate)

	samples := make([][2]float64, rate.N(attack))
	n, ok := env.Stream(samples)
	if !ok {
		t.Fatal("Expected envelope to stream successfully")
	}

	firstAmp := abs(samples[0][0])
	lastAmp := abs(samples[n-1][0])
	if firstAmp >= lastAmp {
		t.Errorf("Expected attack phase to ramp up, but first=%f >= last=%f", firstAmp, lastAmp)
	}
}

func TestEnvelopeReleaseEndsSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 40 * time.Millisecond
	env := NewEnvelope(constant{}, duration, 0, 20*time.Millisecond, rate)

	samples := make([][2]float64, rate.N(duration))
	n, _ := env.Stream(samples)
	if n != len(samples) {
		t.Fatalf("Expected %d samples, got %d", len(samples), n)
	}
	if abs(samples[0][0]) != 1 {
		t.Errorf("Expected full amplitude without attack, got %f", samples[0][0])
	}
	if last := abs(samples[n-1][0]); last > 0.01 {
		t.Errorf("Expected release to fade out, last=%f", last)
	}
}

func TestCreateChimeLength(t *testing.T) {
	rate := beep.SampleRate(48000)
	note := rate.N(chimeNote)

	tests := []struct {
		text  string
		notes int
	}{
		{"a", 1},
		{"eel", 3},
		{"megamouth shark", 8},
	}
	for _, tt := range tests {
		total, peak := drain(CreateChime(tt.text, 1.0, rate))
		if total != tt.notes*note {
			t.Errorf("%q: expected %d samples, got %d", tt.text, tt.notes*note, total)
		}
		if peak == 0 {
			t.Errorf("%q: expected audible chime", tt.text)
		}
	}
}

func TestCreateClick(t *testing.T) {
	rate := beep.SampleRate(48000)
	total, peak := drain(CreateClick(1.0, rate))
	if total != rate.N(clickLength) {
		t.Errorf("Expected %d samples, got %d", rate.N(clickLength), total)
	}
	if peak == 0 || peak > 0.5+1e-9 {
		t.Errorf("Expected click peak in (0, 0.5], got %f", peak)
	}
}

func TestNewVolumeZero(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 50*time.Millisecond, WaveSine, rate)

	_, peak := drain(newVolume(osc, 0.0))
	if peak != 0 {
		t.Errorf("Expected silence for zero volume, got peak %f", peak)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
