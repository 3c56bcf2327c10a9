package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const (
	shotDuration      = 90 * time.Millisecond
	explosionDuration = 450 * time.Millisecond
	hitNoteDuration   = 120 * time.Millisecond
)

// oscillator generates a wave whose frequency slides linearly from freq to
// endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator that glides from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewPCG(uint64(freq), uint64(duration))),
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
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential tail to a stream.
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
	decay         float64
}

// NewEnvelope shapes s over duration: a linear ramp up for attack, then an
// exponential decay whose rate is given in 1/seconds.
func NewEnvelope(s beep.Streamer, duration, attack time.Duration, decay float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:      s,
		attackSamples: rate.N(attack),
		totalSamples:  rate.N(duration),
		decay:         decay / float64(rate),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		var vol float64
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else {
			vol = math.Exp(-float64(e.position-e.attackSamples) * e.decay)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateShotSound is a short falling zap.
func CreateShotSound(rate beep.SampleRate, volume float64) beep.Streamer {
	osc := NewSweep(1400, 500, shotDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, shotDuration, 2*time.Millisecond, 25, rate)
	return newVolume(shaped, 0.25*volume)
}

// CreateExplosionSound is noise over a falling low rumble.
func CreateExplosionSound(rate beep.SampleRate, volume float64) beep.Streamer {
	noise := NewOscillator(0, explosionDuration, WaveNoise, rate)
	rumble := NewSweep(90, 40, explosionDuration, WaveSine, rate)
	mixed := beep.Mix(
		newVolume(noise, 0.6),
		newVolume(rumble, 0.4),
	)
	shaped := NewEnvelope(mixed, explosionDuration, 5*time.Millisecond, 8, rate)
	return newVolume(shaped, 0.5*volume)
}

// CreateHitSound is a two-note descending buzz for losing a life.
func CreateHitSound(rate beep.SampleRate, volume float64) beep.Streamer {
	n1 := NewEnvelope(NewOscillator(330, hitNoteDuration, WaveSaw, rate), hitNoteDuration, 5*time.Millisecond, 6, rate)
	n2 := NewEnvelope(NewOscillator(220, hitNoteDuration, WaveSaw, rate), hitNoteDuration, 5*time.Millisecond, 6, rate)
	return newVolume(beep.Seq(n1, n2), 0.3*volume)
}
