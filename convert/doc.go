// Package convert turns folders of MIDI files into greyscale PNG images.
//
// Every *.mid file directly inside the input folder is decoded, rendered,
// analysed into a pitch by time matrix, scaled to [0,255], rotated a quarter turn
// counter-clockwise and written next to the source as an 8 bit greyscale PNG with
// the same base name. Files are processed one at a time and the first failure
// stops the batch.
package convert
