package synth

import "io"
import "math"
import "os"

import "github.com/faiface/beep"
import "github.com/faiface/beep/wav"
import "github.com/mjibson/go-dsp/window"
import "github.com/neurlang/midipng/notes"

// Synth represents the configuration of the note renderer.
type Synth struct {
	SampleRate int
	// relative amplitude of the fundamental and its overtones
	Harmonics  []float64
	Gain       float64
	// Attack and Release are ramp lengths in seconds, Decay is the
	// exponential time constant of a held note.
	Attack  float64
	Release float64
	Decay   float64

	SkipDrums bool

	// the rendering is zero padded up to this many samples
	MinSamples int
}

// NewSynth creates a new Synth instance with default values.
func NewSynth() *Synth {
	return &Synth{
		SampleRate: 22050,
		Harmonics:  []float64{1, 0.5, 0.25},
		Gain:       0.2,
		Attack:     0.005,
		Release:    0.05,
		Decay:      1.5,
		SkipDrums:  true,
	}
}

func ramp(seconds float64, sr int) []float64 {
	var n = int(seconds * float64(sr))
	if n < 1 {
		n = 1
	}
	return window.Hann(2*n + 1)
}

// Render mixes the notes into a mono sample vector.
func (s *Synth) Render(ns []notes.Note) []float64 {
	var sr = float64(s.SampleRate)
	var attack = ramp(s.Attack, s.SampleRate)
	var release = ramp(s.Release, s.SampleRate)
	var attackN, releaseN = len(attack) / 2, len(release) / 2

	var total = int(math.Ceil(notes.Span(ns)*sr)) + releaseN
	if total < s.MinSamples {
		total = s.MinSamples
	}
	if total < 1 {
		total = 1
	}
	out := make([]float64, total)

	for _, n := range ns {
		if s.SkipDrums && n.IsDrum() {
			continue
		}
		var amp = s.Gain * float64(n.Velocity) / 127
		var freq = notes.KeyToHz(float64(n.Key))
		var begin = int(math.Round(n.Start * sr))
		var stop = int(math.Round(n.End * sr))

		for i := begin; i < stop+releaseN && i < total; i++ {
			var t = float64(i-begin) / sr
			var env = amp
			if s.Decay > 0 {
				env *= math.Exp(-t / s.Decay)
			}
			if i-begin < attackN {
				env *= attack[i-begin]
			}
			if i >= stop {
				env *= release[releaseN+i-stop]
			}

			var v float64
			for h, weight := range s.Harmonics {
				var f = freq * float64(h+1)
				if f >= sr/2 {
					break
				}
				v += weight * math.Sin(2*math.Pi*f*t)
			}
			out[i] += env * v
		}
	}

	return out
}

type streamer struct {
	samples []float64
	pos     int
}

func (s *streamer) Stream(buf [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for n < len(buf) && s.pos < len(s.samples) {
		v := math.Max(-1, math.Min(1, s.samples[s.pos]))
		buf[n] = [2]float64{v, v}
		n++
		s.pos++
	}
	return n, true
}

func (s *streamer) Err() error {
	return nil
}

// Streamer plays back a mono sample vector.
func Streamer(samples []float64) beep.Streamer {
	return &streamer{samples: samples}
}

// WriteWav encodes samples as 16 bit mono WAV.
func (s *Synth) WriteWav(w io.WriteSeeker, samples []float64) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(s.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	return wav.Encode(w, Streamer(samples), format)
}

// SaveWav saves mono wav file from sample vector
func (s *Synth) SaveWav(path string, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := s.WriteWav(f, samples); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
