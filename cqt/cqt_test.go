package cqt

import (
	"math"
	"testing"

	"github.com/neurlang/midipng/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func sine(hz float64, sr, n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = 0.5 * math.Sin(2*math.Pi*hz*float64(i)/float64(sr))
	}
	return buf
}

func TestCenterHz(t *testing.T) {
	c := NewCQT()
	assert.InDelta(t, notes.KeyToHz(36), c.CenterHz(0), 1e-9)
	assert.InDelta(t, notes.KeyToHz(83), c.CenterHz(c.Bins()-1), 1e-9)

	c.BinsPerNote = 2
	assert.Equal(t, 96, c.Bins())
	assert.InDelta(t, notes.KeyToHz(36.5), c.CenterHz(1), 1e-9)
}

func TestKernelWeightsSumToOne(t *testing.T) {
	c := NewCQT()
	for b, bd := range c.kernel() {
		assert.GreaterOrEqual(t, bd.lo, 1, "bin %d", b)
		assert.InDelta(t, 1.0, floats.Sum(bd.weights), 1e-9, "bin %d", b)
	}
}

func TestTransformShape(t *testing.T) {
	c := NewCQT()
	samples := make([]float64, c.SampleRate)
	m, err := c.Transform(samples)
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, c.Bins(), rows)
	assert.InDelta(t, c.Frames(len(samples)), cols, 1)
}

func TestTransformShortInputHasAFrame(t *testing.T) {
	c := NewCQT()
	m, err := c.Transform(nil)
	require.NoError(t, err)
	_, cols := m.Dims()
	assert.GreaterOrEqual(t, cols, 1)
}

func TestTransformFindsThePitch(t *testing.T) {
	c := NewCQT()
	for _, key := range []float64{45, 60, 72} {
		m, err := c.Transform(sine(notes.KeyToHz(key), c.SampleRate, c.SampleRate))
		require.NoError(t, err)

		_, cols := m.Dims()
		col := mat.Col(nil, cols/2, m)
		assert.Equal(t, int(key)-c.NoteStart, floats.MaxIdx(col), "key %v", key)
	}
}

func TestTransformLogScaleFloor(t *testing.T) {
	c := NewCQT()
	m, err := c.Transform(make([]float64, 2048))
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1e-5), mat.Max(m), 1e-9)
	assert.InDelta(t, math.Log(1e-5), mat.Min(m), 1e-9)

	c.LogScale = false
	m, err = c.Transform(make([]float64, 2048))
	require.NoError(t, err)
	assert.Zero(t, mat.Max(m))
}
