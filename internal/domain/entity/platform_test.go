package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPlatformActor(t *testing.T, center cp.Vector) *Actor {
	t.Helper()
	a, err := NewActor(7, NewBox(center, cp.Vector{X: 2, Y: 0.5}), LayerPlatform, LayerActor, testSkin, testSpacing)
	require.NoError(t, err)
	return a
}

func TestNewPlatform(t *testing.T) {
	actor := createTestPlatformActor(t, cp.Vector{X: 5, Y: 2})

	p, err := NewPlatform(actor, PlatformPath{
		Waypoints: []cp.Vector{{X: 0, Y: 0}, {X: 3, Y: 0}},
		Speed:     2,
		WaitTime:  0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, []cp.Vector{{X: 5, Y: 2}, {X: 8, Y: 2}}, p.Waypoints, "waypoints are converted to world space")
	assert.Equal(t, PhaseMoving, p.Phase)
	assert.Equal(t, 0, p.FromIndex)
	assert.Equal(t, 0.5, p.WaitTime)
}

func TestNewPlatform_Invalid(t *testing.T) {
	tests := []struct {
		name string
		path PlatformPath
	}{
		{"single waypoint", PlatformPath{Waypoints: []cp.Vector{{}}, Speed: 1}},
		{"no waypoints", PlatformPath{Speed: 1}},
		{"zero speed", PlatformPath{Waypoints: []cp.Vector{{}, {X: 1}}, Speed: 0}},
		{"coincident", PlatformPath{Waypoints: []cp.Vector{{}, {X: 1}, {X: 1}}, Speed: 1}},
		{"cyclic wraps onto itself", PlatformPath{Waypoints: []cp.Vector{{}, {X: 1}, {}}, Speed: 1, Cyclic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlatform(createTestPlatformActor(t, cp.Vector{}), tt.path)
			assert.ErrorIs(t, err, ErrWaypoints)
		})
	}
}

func TestNewPlatform_NonCyclicMayReturnToStart(t *testing.T) {
	_, err := NewPlatform(createTestPlatformActor(t, cp.Vector{}), PlatformPath{
		Waypoints: []cp.Vector{{}, {X: 1}, {}},
		Speed:     1,
	})
	assert.NoError(t, err)
}

func TestPlatformPhase_String(t *testing.T) {
	assert.Equal(t, "Moving", PhaseMoving.String())
	assert.Equal(t, "Waiting", PhaseWaiting.String())
	assert.Equal(t, "Unknown", PlatformPhase(9).String())
}
