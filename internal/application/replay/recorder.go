package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/raykin/internal/application/system"
)

// Recorder handles input recording for replay.
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for a stage.
func NewRecorder(stage string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   FormatVersion,
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // about a minute at 60 ticks
		},
		recording: true,
	}
}

// RecordFrame records a single tick's input.
func (r *Recorder) RecordFrame(input system.InputState) {
	if !r.recording {
		return
	}

	axis := input.Axis()
	r.data.Frames = append(r.data.Frames, FrameInput{
		F:  r.frame,
		X:  axis.X,
		Y:  axis.Y,
		JD: input.JumpPressed,
		JU: input.JumpReleased,
	})
	r.frame++
}

// Save writes the replay data to a file.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrEmptyRecording
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames.
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded replay data.
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time.
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
