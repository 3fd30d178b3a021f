package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/younwookim/raykin/internal/application/system"
)

// Replayer handles input playback from recorded data.
type Replayer struct {
	data  ReplayData
	frame int
	held  bool
}

// NewReplayer creates a new replayer from replay data.
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file.
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Decode reads replay data from r.
func Decode(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("replay version %q, want %q", data.Version, FormatVersion)
	}
	return &data, nil
}

// Next returns the input for the current frame and advances.
func (r *Replayer) Next() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	if fi.JD {
		r.held = true
	}
	if fi.JU {
		r.held = false
	}

	return system.InputState{
		Horizontal:   fi.X,
		Vertical:     fi.Y,
		Jump:         r.held,
		JumpPressed:  fi.JD,
		JumpReleased: fi.JU,
	}, true
}

// CurrentFrame returns the current frame number.
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames.
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Stage returns the stage the replay was recorded on.
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning.
func (r *Replayer) Reset() {
	r.frame = 0
	r.held = false
}
