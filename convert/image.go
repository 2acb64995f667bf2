package convert

import (
	"bufio"
	"encoding/binary"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"
)

// Floor subtracts the global minimum, so the smallest element becomes 0.
func Floor(m *mat.Dense) *mat.Dense {
	var lo = mat.Min(m)
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 {
		return v - lo
	}, m)
	return &out
}

// Rotate turns the matrix a quarter turn counter-clockwise: the last column
// becomes the first row.
func Rotate(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(cols, rows, nil)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			out.Set(i, j, m.At(j, cols-1-i))
		}
	}
	return out
}

// Normalize maps the matrix onto [0,255] and rotates it. A constant matrix has
// no range to stretch and comes out all zero, reported as degenerate.
func Normalize(m *mat.Dense) (out *mat.Dense, degenerate bool) {
	floored := Floor(m)
	var hi = mat.Max(floored)
	if hi == 0 {
		floored.Zero()
		return Rotate(floored), true
	}
	floored.Apply(func(_, _ int, v float64) float64 {
		return v / hi * 255
	}, floored)
	return Rotate(floored), false
}

// Gray converts a matrix with values in [0,255] into an image, rows become
// image rows.
func Gray(m *mat.Dense) *image.Gray {
	rows, cols := m.Dims()
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var v = m.At(y, x)
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			img.Pix[y*img.Stride+x] = uint8(int(v))
		}
	}
	return img
}

// Float16 converts a matrix with values in [0,255] into IEEE half floats in
// [0,1], row major.
func Float16(m *mat.Dense) []uint16 {
	rows, cols := m.Dims()
	out := make([]uint16, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out = append(out, float16.Fromfloat32(float32(m.At(y, x)/255)).Bits())
		}
	}
	return out
}

// Encoder writes an image.
type Encoder interface {
	Encode(w io.Writer, img *image.Gray) error
}

// PNGEncoder writes 8 bit greyscale PNG.
type PNGEncoder struct {
	CompressionLevel png.CompressionLevel
}

func (p PNGEncoder) Encode(w io.Writer, img *image.Gray) error {
	enc := png.Encoder{CompressionLevel: p.CompressionLevel}
	return enc.Encode(w, img)
}

func dumpimage(name string, enc Encoder, img *image.Gray) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func dumpfloat16(name string, buf []uint16) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
