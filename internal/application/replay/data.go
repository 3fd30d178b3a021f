package replay

import "errors"

// FormatVersion is written into every recording.
const FormatVersion = "1.0"

// ErrEmptyRecording is returned when saving a recording with no frames.
var ErrEmptyRecording = errors.New("no frames recorded")

// FrameInput records input state for a single tick.
type FrameInput struct {
	F  int     `json:"f"`            // Tick number
	X  float64 `json:"x,omitempty"`  // Horizontal axis
	Y  float64 `json:"y,omitempty"`  // Vertical axis
	JD bool    `json:"jd,omitempty"` // Jump pressed this tick
	JU bool    `json:"ju,omitempty"` // Jump released this tick
}

// ReplayData contains all data needed to replay a session.
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
