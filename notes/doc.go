// Package notes decodes Standard MIDI Files into timed note events.
//
// Each note-on is paired with the next note-off (or zero velocity note-on) of the
// same channel and key. Times are absolute seconds, tempo changes included.
package notes
