package convert

import (
	"context"
	"fmt"

	"github.com/neurlang/midipng/cqt"
	"github.com/neurlang/midipng/notes"
	"github.com/neurlang/midipng/synth"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Decoder reads the notes of a MIDI file.
type Decoder interface {
	Decode(path string) ([]notes.Note, error)
}

// Transformer turns notes into a matrix, rows are frequency bins and columns
// are time frames.
type Transformer interface {
	Transform(ns []notes.Note) (*mat.Dense, error)
}

// Previewer is a Transformer that can also save the audio it analysed.
type Previewer interface {
	TransformPreview(ns []notes.Note, wavPath string) (*mat.Dense, error)
}

// NoteCQT renders notes to audio and runs the constant-Q transform on it.
type NoteCQT struct {
	Synth *synth.Synth
	CQT   *cqt.CQT
}

// NewNoteCQT creates a NoteCQT with matching default synth and transform.
func NewNoteCQT() *NoteCQT {
	s := synth.NewSynth()
	c := cqt.NewCQT()
	s.SampleRate = c.SampleRate
	return &NoteCQT{Synth: s, CQT: c}
}

func (p *NoteCQT) Transform(ns []notes.Note) (*mat.Dense, error) {
	return p.CQT.Transform(p.Synth.Render(ns))
}

func (p *NoteCQT) TransformPreview(ns []notes.Note, wavPath string) (*mat.Dense, error) {
	samples := p.Synth.Render(ns)
	if err := p.Synth.SaveWav(wavPath, samples); err != nil {
		return nil, err
	}
	return p.CQT.Transform(samples)
}

// Converter runs the batch.
type Converter struct {
	Config      Config
	Decoder     Decoder
	Transformer Transformer
	Encoder     Encoder
	Logger      *zap.Logger
}

// NewConverter creates a Converter using the MIDI decoder, the note CQT and
// the PNG encoder. A nil logger discards log output.
func NewConverter(cfg Config, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		Config:      cfg,
		Decoder:     notes.Decoder{},
		Transformer: NewNoteCQT(),
		Encoder:     PNGEncoder{},
		Logger:      log,
	}
}

// Run converts every MIDI file of the input folder and returns how many
// images were written. It stops at the first error.
func (c *Converter) Run(ctx context.Context) (int, error) {
	dir := TrimSeparators(c.Config.InputDir)
	c.Logger.Info("input folder", zap.String("dir", dir))

	files, err := ListMidi(dir)
	if err != nil {
		return 0, err
	}
	c.Logger.Debug("found midi files", zap.Int("count", len(files)))

	var written int
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		c.Logger.Info("converting",
			zap.String("file", path),
			zap.Int("n", i+1),
			zap.Int("of", len(files)))

		if err := c.ConvertFile(path); err != nil {
			return written, fmt.Errorf("%s: %w", path, err)
		}
		written++
	}

	return written, nil
}

// ConvertFile writes the image, and the optional sidecars, for one MIDI file.
func (c *Converter) ConvertFile(path string) error {
	ns, err := c.Decoder.Decode(path)
	if err != nil {
		return err
	}

	var m *mat.Dense
	if p, ok := c.Transformer.(Previewer); ok && c.Config.WavPreview {
		m, err = p.TransformPreview(ns, Sibling(path, "wav"))
	} else {
		m, err = c.Transformer.Transform(ns)
	}
	if err != nil {
		return err
	}

	norm, degenerate := Normalize(m)
	if degenerate {
		c.Logger.Warn("constant matrix, writing a blank image", zap.String("file", path))
	}

	out := OutputName(path)
	img := Gray(norm)
	if err := dumpimage(out, c.Encoder, img); err != nil {
		return err
	}
	c.Logger.Debug("wrote image",
		zap.String("file", out),
		zap.Int("notes", len(ns)),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))

	if c.Config.Float16 {
		if err := dumpfloat16(Sibling(path, "f16"), Float16(norm)); err != nil {
			return err
		}
	}

	return nil
}
