package convert

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"
)

func TestFloorStartsAtZero(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{-4, 2, 7, 1, -1.5, 3})
	f := Floor(m)
	assert.Equal(t, 0.0, mat.Min(f))
	assert.Equal(t, 11.0, mat.Max(f))
	assert.Equal(t, 7.0, m.At(0, 2), "input untouched")
}

func TestRotateCounterClockwise(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	want := mat.NewDense(3, 2, []float64{
		3, 6,
		2, 5,
		1, 4,
	})
	assert.True(t, mat.Equal(want, Rotate(m)))
}

func TestNormalizeRange(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{-3, -1, 0, 5})
	out, degenerate := Normalize(m)
	assert.False(t, degenerate)
	assert.Equal(t, 0.0, mat.Min(out))
	assert.InDelta(t, 255.0, mat.Max(out), 1e-9)
	// -1 sits at a quarter of the range
	assert.InDelta(t, 255.0/4, out.At(0, 0), 1e-9)
}

func TestNormalizeConstantIsBlank(t *testing.T) {
	for _, v := range []float64{0, 3.5, -2} {
		m := mat.NewDense(3, 2, nil)
		m.Apply(func(_, _ int, _ float64) float64 { return v }, m)

		out, degenerate := Normalize(m)
		assert.True(t, degenerate)
		assert.Equal(t, 0.0, mat.Max(out))
		assert.Equal(t, 0.0, mat.Min(out))
		r, c := out.Dims()
		assert.Equal(t, []int{2, 3}, []int{r, c})
	}
}

func TestGrayPixels(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{0, 127.9, 255, 300, -1, 64})
	img := Gray(m)
	assert.Equal(t, 3, img.Rect.Dx())
	assert.Equal(t, 2, img.Rect.Dy())
	assert.Equal(t, []uint8{0, 127, 255, 255, 0, 64}, img.Pix)
}

func TestPNGEncoderIsGrey8(t *testing.T) {
	img := Gray(mat.NewDense(4, 5, []float64{
		0, 10, 20, 30, 40,
		50, 60, 70, 80, 90,
		100, 110, 120, 130, 140,
		150, 160, 170, 180, 255,
	}))

	var buf bytes.Buffer
	require.NoError(t, PNGEncoder{}.Encode(&buf, img))

	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, color.GrayModel, cfg.ColorModel)
	assert.Equal(t, 5, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}

func TestFloat16(t *testing.T) {
	got := Float16(mat.NewDense(1, 3, []float64{0, 127.5, 255}))
	require.Len(t, got, 3)
	assert.Equal(t, float32(0), float16.Frombits(got[0]).Float32())
	assert.Equal(t, float32(0.5), float16.Frombits(got[1]).Float32())
	assert.Equal(t, float32(1), float16.Frombits(got[2]).Float32())
}
