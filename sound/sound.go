// Package sound plays short synthesized cues through a persistent mixer.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// WaveType defines tone wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// Player mixes one-shot tones into a speaker stream. A player that was not
// initialized, or whose initialization failed, stays silent; Beep on it is
// a no-op.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a silent player. Call Init to open the speaker.
func NewPlayer() *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: 0.5,
	}
}

// Init opens the speaker and starts the mixer stream.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences the player. Clearing the mixer stops all queued tones
// without tearing down the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Beep queues a short shaped tone. Safe to call from the update loop; the
// speaker mixes asynchronously.
func (p *Player) Beep(freq float64, duration time.Duration, wave WaveType) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	t := newTone(freq, duration, wave, sampleRate)
	speaker.Lock()
	p.mixer.Add(newVolume(t, p.volume))
	speaker.Unlock()
}

// tone generates one shaped wave burst
type tone struct {
	freq     float64
	phase    float64
	position int
	total    int
	ramp     int
	wave     WaveType
	rate     beep.SampleRate
}

// newTone builds a one-shot tone. A short linear ramp on both ends avoids
// clicks when the tone starts and stops.
func newTone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	ramp := rate.N(5 * time.Millisecond)
	if ramp*2 > total {
		ramp = total / 2
	}
	return &tone{
		freq:  freq,
		total: total,
		ramp:  ramp,
		wave:  wave,
		rate:  rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, false
		}

		var val float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}

		// Linear attack and release
		if t.ramp > 0 {
			if t.position < t.ramp {
				val *= float64(t.position) / float64(t.ramp)
			} else if remaining := t.total - t.position; remaining < t.ramp {
				val *= float64(remaining) / float64(t.ramp)
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		t.phase += t.freq / float64(t.rate)
		t.phase = t.phase - math.Floor(t.phase) // Keep in [0, 1)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
