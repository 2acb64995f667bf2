package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MidiExt is the suffix of the files picked up from the input folder.
const MidiExt = ".mid"

var ErrNotDirectory = errors.New("inputNotDirectory")

// Config holds the command line options of a batch run.
type Config struct {
	InputDir   string
	// OutputFile is accepted for compatibility and not used: images are
	// always written next to their source.
	OutputFile string

	// WavPreview also writes the rendered audio as <base>.wav.
	WavPreview bool
	// Float16 also writes the normalized matrix as <base>.f16.
	Float16    bool
}

// TrimSeparators strips trailing path separators. A path made of separators
// only is reduced to a single one.
func TrimSeparators(path string) string {
	for len(path) > 1 && (path[len(path)-1] == '/' || path[len(path)-1] == os.PathSeparator) {
		path = path[:len(path)-1]
	}
	return path
}

// ListMidi returns the regular *.mid files directly inside dir, in directory
// listing order.
func ListMidi(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), MidiExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Stat follows symlinks, a link to a regular file counts
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		out = append(out, path)
	}
	return out, nil
}

// Sibling replaces the last three characters of a *.mid path with ext.
func Sibling(path, ext string) string {
	return path[:len(path)-3] + ext
}

// OutputName returns the image path written for a MIDI file.
func OutputName(path string) string {
	return Sibling(path, "png")
}
