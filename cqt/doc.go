// Package cqt provides a constant-Q style time-frequency transform.
//
// The transform folds a short-time Fourier magnitude spectrum into frequency bins
// that are spaced geometrically, one (or more) per equal tempered semitone, so
// each row of the result follows a musical pitch. It supports:
//   - Configurable pitch range (lowest MIDI key, number of keys, bins per key)
//   - Configurable hop and frame length of the underlying STFT
//   - Optional log magnitude scaling
package cqt
