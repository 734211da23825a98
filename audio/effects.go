package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
)

// Cue timings
const (
	chimeNote    = 120 * time.Millisecond
	chimeAttack  = 5 * time.Millisecond
	chimeRelease = 80 * time.Millisecond
	clickLength  = 25 * time.Millisecond
	clickRelease = 20 * time.Millisecond
)

// Pentatonic steps above the base note, picked per character of the spoken text
var chimeScale = [...]float64{1, 9.0 / 8, 5.0 / 4, 3.0 / 2, 5.0 / 3, 2}

const chimeBase = 523.25 // C5

// oscillator generates a fixed-length periodic wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer producing duration worth of samples at freq
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

// NewEnvelope shapes s over duration with the given attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = max(float64(e.total-e.position)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or negative volume is silent
// math.Log2(0) is -Inf, so silence is flagged explicitly
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateChime builds a short melody derived from text, used when no speech engine exists
// At most eight notes are played
func CreateChime(text string, volume float64, rate beep.SampleRate) beep.Streamer {
	var notes []beep.Streamer
	for i, r := range []rune(text) {
		if i == 8 {
			break
		}
		freq := chimeBase * chimeScale[int(r)%len(chimeScale)]
		osc := NewOscillator(freq, chimeNote, WaveSine, rate)
		notes = append(notes, NewEnvelope(osc, chimeNote, chimeAttack, chimeRelease, rate))
	}
	return newVolume(beep.Seq(notes...), volume)
}

// CreateClick builds a short tick for typed characters
func CreateClick(volume float64, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(2000, clickLength, WaveTriangle, rate)
	shaped := NewEnvelope(osc, clickLength, 0, clickRelease, rate)
	return newVolume(shaped, volume*0.5)
}
