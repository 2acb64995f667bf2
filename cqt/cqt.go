package cqt

import "errors"
import "math"
import "math/cmplx"

import "github.com/neurlang/midipng/notes"
import "github.com/r9y9/gossp/stft"
import "gonum.org/v1/gonum/mat"

// CQT represents the configuration of the pitch keyed transform.
type CQT struct {
	SampleRate int
	Hop        int
	FrameLen   int

	// NoteStart is the MIDI key of the lowest bin.
	NoteStart   int
	NumNotes    int
	BinsPerNote int

	LogScale bool
}

// NewCQT creates a new CQT instance with default values.
func NewCQT() *CQT {
	return &CQT{
		SampleRate:  22050,
		Hop:         512,
		FrameLen:    8192,
		NoteStart:   36,
		NumNotes:    48,
		BinsPerNote: 1,
		LogScale:    true,
	}
}

var ErrNoFrames = errors.New("cqtNoFrames")

// Bins returns the number of rows of a transform result.
func (c *CQT) Bins() int {
	return c.NumNotes * c.BinsPerNote
}

// CenterHz returns the center frequency of a bin.
func (c *CQT) CenterHz(bin int) float64 {
	return notes.KeyToHz(float64(c.NoteStart) + float64(bin)/float64(c.BinsPerNote))
}

// Frames returns the number of columns a transform of n samples has.
func (c *CQT) Frames(n int) int {
	return n/c.Hop + 1
}

type band struct {
	lo      int
	weights []float64
}

// kernel maps every pitch bin to a triangular window over the STFT bins that
// lie within one bin distance on a log frequency axis.
func (c *CQT) kernel() []band {
	var half = c.FrameLen / 2
	var hzPerBin = float64(c.SampleRate) / float64(c.FrameLen)
	var perOctave = float64(12 * c.BinsPerNote)

	bands := make([]band, c.Bins())
	for b := range bands {
		var fc = c.CenterHz(b)
		var lo = -1
		var ws []float64
		for k := 1; k <= half; k++ {
			var d = math.Abs(perOctave * math.Log2(float64(k)*hzPerBin/fc))
			if d >= 1 {
				if lo >= 0 {
					break
				}
				continue
			}
			if lo < 0 {
				lo = k
			}
			ws = append(ws, 1-d)
		}
		if lo < 0 {
			var nearest = int(math.Round(fc / hzPerBin))
			if nearest < 1 {
				nearest = 1
			}
			if nearest > half {
				nearest = half
			}
			lo, ws = nearest, []float64{1}
		}

		var sum float64
		for _, w := range ws {
			sum += w
		}
		for i := range ws {
			ws[i] /= sum
		}
		bands[b] = band{lo: lo, weights: ws}
	}
	return bands
}

// Transform analyses a mono sample vector and returns the magnitude matrix,
// rows are pitch bins from low to high, columns are frames.
func (c *CQT) Transform(samples []float64) (*mat.Dense, error) {

	// center the frames like the first frame starts half a window early
	var half = c.FrameLen / 2
	var padded = make([]float64, len(samples)+2*half)
	copy(padded[half:], samples)

	s := stft.New(c.Hop, c.FrameLen)

	spectrum := s.STFT(padded)
	if len(spectrum) == 0 {
		return nil, ErrNoFrames
	}

	bands := c.kernel()

	out := mat.NewDense(len(bands), len(spectrum), nil)
	for j, frame := range spectrum {
		for b, bd := range bands {
			var total float64
			for i, w := range bd.weights {
				if bd.lo+i < len(frame) {
					total += w * cmplx.Abs(frame[bd.lo+i])
				}
			}
			if c.LogScale {
				if total < 1e-5 {
					total = 1e-5
				}
				total = math.Log(total)
			}
			out.Set(b, j, total)
		}
	}

	return out, nil
}
