package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/raykin/internal/application/replay"
	"github.com/younwookim/raykin/internal/application/system"
	"github.com/younwookim/raykin/internal/infrastructure/config"
)

// createTestConfig loads the embedded tuning and demo stage.
func createTestConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	loader, err := newLoader("")
	require.NoError(t, err)
	cfg, err := loader.LoadAll("demo")
	require.NoError(t, err)
	return cfg
}

// createReplayData records the given inputs through a Recorder.
func createReplayData(inputs []system.InputState) replay.ReplayData {
	rec := replay.NewRecorder("demo")
	for _, in := range inputs {
		rec.RecordFrame(in)
	}
	return rec.Data()
}

func repeatInput(in system.InputState, n int) []system.InputState {
	out := make([]system.InputState, n)
	for i := range out {
		out[i] = in
	}
	return out
}

func TestEmbeddedConfigs(t *testing.T) {
	cfg := createTestConfig(t)

	assert.Equal(t, "demo", cfg.Stage.ID)
	assert.Equal(t, 60, cfg.Physics.Simulation.TickRate)
	assert.Len(t, cfg.Stage.Platforms, 2)
	assert.Equal(t, config.BackendShapes, cfg.Physics.World.Backend)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, o options)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, o options) {
				assert.Equal(t, "demo", o.stage)
				assert.False(t, o.headless)
			},
		},
		{
			name: "headless replay",
			args: []string{"-replay", "run.json", "-headless"},
			check: func(t *testing.T, o options) {
				assert.Equal(t, "run.json", o.replayFile)
				assert.True(t, o.headless)
			},
		},
		{name: "headless without replay", args: []string{"-headless"}, wantErr: true},
		{name: "record and replay", args: []string{"-record", "a.json", "-replay", "b.json"}, wantErr: true},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parseFlags(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, o)
		})
	}
}

func TestReplayIdlePlayer_StaysGrounded(t *testing.T) {
	cfg := createTestConfig(t)
	data := createReplayData(repeatInput(system.InputState{}, 120))

	snap, err := simulateReplay(cfg, data)
	require.NoError(t, err)

	assert.Equal(t, 120, snap.Tick)
	assert.True(t, snap.Collisions.Below)
	assert.Equal(t, 0.0, snap.Velocity.Y)
	assert.InDelta(t, 3.5, snap.Position.X, 1e-9, "idle player does not drift")
}

func TestReplayDeterminism(t *testing.T) {
	cfg := createTestConfig(t)

	inputs := repeatInput(system.InputState{Horizontal: 1}, 40)
	inputs = append(inputs, system.InputState{Horizontal: 1, Jump: true, JumpPressed: true})
	inputs = append(inputs, repeatInput(system.InputState{Horizontal: 1, Jump: true}, 20)...)
	inputs = append(inputs, system.InputState{JumpReleased: true})
	inputs = append(inputs, repeatInput(system.InputState{Horizontal: -1}, 60)...)
	data := createReplayData(inputs)

	first, err := simulateReplay(cfg, data)
	require.NoError(t, err)
	second, err := simulateReplay(cfg, data)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same inputs must produce the same state")
}

func TestReplayWithMovement(t *testing.T) {
	cfg := createTestConfig(t)
	data := createReplayData(repeatInput(system.InputState{Horizontal: 1}, 30))

	snap, err := simulateReplay(cfg, data)
	require.NoError(t, err)

	assert.Greater(t, snap.Position.X, 3.5)
	assert.True(t, snap.Collisions.Below)
}

func TestRunHeadless(t *testing.T) {
	cfg := createTestConfig(t)

	rec := replay.NewRecorder("demo")
	for _, in := range repeatInput(system.InputState{Horizontal: 1}, 10) {
		rec.RecordFrame(in)
	}
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, rec.Save(path))

	var out bytes.Buffer
	require.NoError(t, runHeadless(&out, cfg, path))
	assert.Contains(t, out.String(), "ticks=10")
	assert.Contains(t, out.String(), "below=true")
}

func TestRunHeadless_MissingFile(t *testing.T) {
	cfg := createTestConfig(t)

	var out bytes.Buffer
	err := runHeadless(&out, cfg, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
