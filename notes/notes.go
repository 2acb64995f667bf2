package notes

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// DrumChannel is the zero based General MIDI percussion channel.
const DrumChannel = 9

// Note is a single sounding note.
type Note struct {
	Channel  uint8
	Key      uint8
	Velocity uint8
	// Start and End are absolute times in seconds.
	Start    float64
	End      float64
}

// Duration returns the length of the note in seconds.
func (n Note) Duration() float64 {
	return n.End - n.Start
}

// IsDrum reports whether the note sits on the percussion channel.
func (n Note) IsDrum() bool {
	return n.Channel == DrumChannel
}

// KeyToHz returns the equal tempered frequency of a MIDI key, A4 = 440 Hz.
// Fractional keys address pitches between semitones.
func KeyToHz(key float64) float64 {
	return 440 * math.Pow(2, (key-69)/12)
}

// Span returns the time the last note stops sounding.
func Span(notes []Note) (end float64) {
	for _, n := range notes {
		if n.End > end {
			end = n.End
		}
	}
	return
}

type voice struct {
	track   int
	channel uint8
	key     uint8
}

// Read decodes a Standard MIDI File from r.
func Read(r io.Reader) (out []Note, err error) {
	// the smf reader panics on some malformed input
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("malformed midi: %v", rec)
		}
	}()

	var sounding = make(map[voice][]Note)
	var last float64

	rd := smf.ReadTracksFrom(r)
	rd.Do(func(ev smf.TrackEvent) {
		var now = float64(ev.AbsMicroSeconds) / 1e6
		if now > last {
			last = now
		}

		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteStart(&ch, &key, &vel):
			v := voice{ev.TrackNo, ch, key}
			sounding[v] = append(sounding[v], Note{Channel: ch, Key: key, Velocity: vel, Start: now})
		case ev.Message.GetNoteEnd(&ch, &key):
			v := voice{ev.TrackNo, ch, key}
			open := sounding[v]
			if len(open) == 0 {
				return
			}
			n := open[0]
			sounding[v] = open[1:]
			n.End = now
			out = append(out, n)
		}
	})
	if err := rd.Error(); err != nil {
		return nil, fmt.Errorf("malformed midi: %w", err)
	}

	// notes left hanging end with the file
	for _, open := range sounding {
		for _, n := range open {
			n.End = last
			out = append(out, n)
		}
	}

	var kept = out[:0]
	for _, n := range out {
		if n.Duration() > 0 {
			kept = append(kept, n)
		}
	}
	out = kept

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Key < out[j].Key
	})

	return out, nil
}

// ReadFile decodes the Standard MIDI File at path.
func ReadFile(path string) ([]Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	defer f.Close()

	out, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file %s: %w", path, err)
	}
	return out, nil
}

// Decoder decodes MIDI files from disk.
type Decoder struct{}

// Decode implements the converter's decode step.
func (Decoder) Decode(path string) ([]Note, error) {
	return ReadFile(path)
}
