// Package audio fetches, caches and plays pronunciation audio for subjects.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tcolgate/mp3"
)

// Handle refers to a playable MP3 asset for one subject. Handles are
// immutable once created.
type Handle struct {
	SubjectID int
	Path      string
	Duration  time.Duration
}

func (h *Handle) String() string {
	return fmt.Sprintf("audio for subject %d (%s, %s)", h.SubjectID, h.Path, h.Duration.Round(time.Millisecond))
}

// OpenHandle creates a handle for an MP3 file already on disk.
func OpenHandle(subjectID int, path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	d, err := Duration(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &Handle{SubjectID: subjectID, Path: path, Duration: d}, nil
}

// ErrNoFrames is returned by Duration when the stream holds no MP3 frames.
var ErrNoFrames = errors.New("no mp3 frames")

// Duration sums the frame durations of an MP3 stream.
func Duration(r io.Reader) (time.Duration, error) {
	var (
		total   time.Duration
		frames  int
		dec     = mp3.NewDecoder(r)
		frame   mp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return 0, err
		}
		total += frame.Duration()
		frames++
	}

	if frames == 0 {
		return 0, ErrNoFrames
	}
	return total, nil
}
