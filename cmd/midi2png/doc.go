// Command midi2png converts a folder of MIDI files to greyscale spectrogram images (PNG).
//
// Every *.mid file directly inside the input folder is rendered to audio and analysed
// with a constant-Q style transform keyed to note pitches. The result is scaled to
// 0..255, rotated so time runs down the image and pitch rises to the right, and
// saved as an 8 bit greyscale PNG.
//
// Usage:
//
//	midi2png -i <input_folder> [-o <output_file>]
//
// The output PNG file for <name>.mid is <name>.png in the same folder. The -o flag is
// accepted but unused. Optional flags: --wav also writes the rendered audio,
// --f16 also writes the scaled matrix as little endian half floats, --verbose logs
// debug output.
//
// Exit status is 2 on bad usage and 1 when a conversion fails.
package main
