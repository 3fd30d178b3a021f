package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// ErrWaypoints is returned for a path that cannot be travelled.
var ErrWaypoints = errors.New("invalid waypoint path")

// PlatformPhase is the waypoint state machine phase.
type PlatformPhase int

const (
	PhaseMoving PlatformPhase = iota
	PhaseWaiting
)

// String returns the string representation of the phase.
func (p PlatformPhase) String() string {
	switch p {
	case PhaseMoving:
		return "Moving"
	case PhaseWaiting:
		return "Waiting"
	default:
		return "Unknown"
	}
}

// PlatformPath describes how a platform travels between waypoints.
type PlatformPath struct {
	Waypoints  []cp.Vector // local to the platform's start position
	Speed      float64     // units per second
	EaseAmount float64     // 0 is linear, 1-2 eases in and out
	WaitTime   float64     // seconds to rest on each waypoint
	Cyclic     bool
}

// Platform is a kinematic body that travels a waypoint path and
// carries or pushes actors.
type Platform struct {
	*Actor

	Waypoints  []cp.Vector // world space
	Speed      float64
	EaseAmount float64
	WaitTime   float64
	Cyclic     bool

	FromIndex    int
	Percent      float64 // progress between FromIndex and the next waypoint
	NextMoveTime float64
	Clock        float64
	Phase        PlatformPhase
}

// NewPlatform converts a local path to world space around the actor's
// current position. Consecutive waypoints must not coincide.
func NewPlatform(actor *Actor, path PlatformPath) (*Platform, error) {
	if len(path.Waypoints) < 2 {
		return nil, fmt.Errorf("platform %d has %d waypoints: %w", actor.ID, len(path.Waypoints), ErrWaypoints)
	}
	if path.Speed <= 0 {
		return nil, fmt.Errorf("platform %d speed %v: %w", actor.ID, path.Speed, ErrWaypoints)
	}

	global := make([]cp.Vector, len(path.Waypoints))
	for i, wp := range path.Waypoints {
		global[i] = wp.Add(actor.Position())
	}

	n := len(global)
	for i := 0; i < n; i++ {
		if !path.Cyclic && i == n-1 {
			break
		}
		if global[i].Distance(global[(i+1)%n]) == 0 {
			return nil, fmt.Errorf("platform %d waypoints %d and %d coincide: %w", actor.ID, i, (i+1)%n, ErrWaypoints)
		}
	}

	return &Platform{
		Actor:      actor,
		Waypoints:  global,
		Speed:      path.Speed,
		EaseAmount: path.EaseAmount,
		WaitTime:   path.WaitTime,
		Cyclic:     path.Cyclic,
		Phase:      PhaseMoving,
	}, nil
}

// PassengerMovement is a displacement forced on an actor by a platform
// during a single tick.
type PassengerMovement struct {
	Passenger          EntityID
	Displacement       cp.Vector
	StandingOnPlatform bool
	MoveBeforePlatform bool
}
