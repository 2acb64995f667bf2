// Package synth renders decoded MIDI notes into a mono audio sample vector.
//
// The renderer is a small additive synthesizer: every note is a handful of
// harmonic sines with a decaying envelope. It exists so that a note list can be
// analysed with ordinary audio tooling; it makes no attempt to sound like a
// real instrument. Rendered audio can be saved as WAV for listening.
package synth
