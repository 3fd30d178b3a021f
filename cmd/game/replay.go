package main

import (
	"fmt"
	"io"

	"github.com/younwookim/raykin/internal/application/replay"
	"github.com/younwookim/raykin/internal/application/sim"
	"github.com/younwookim/raykin/internal/infrastructure/config"
	"github.com/younwookim/raykin/internal/logger"
	"go.uber.org/zap"
)

// simulateReplay runs every recorded frame through a fresh simulation.
func simulateReplay(cfg *config.GameConfig, data replay.ReplayData) (sim.PlayerSnapshot, error) {
	s, err := sim.New(cfg.Physics, cfg.Stage)
	if err != nil {
		return sim.PlayerSnapshot{}, err
	}

	r := replay.NewReplayer(data)
	snap := s.Snapshot()
	for {
		input, ok := r.Next()
		if !ok {
			break
		}
		snap = s.Step(input)
	}
	return snap, nil
}

func runHeadless(w io.Writer, cfg *config.GameConfig, path string) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return err
	}
	if data.Stage != "" && data.Stage != cfg.Stage.ID {
		logger.Warn("replay recorded on another stage",
			zap.String("recorded", data.Stage),
			zap.String("loaded", cfg.Stage.ID))
	}

	snap, err := simulateReplay(cfg, *data)
	if err != nil {
		return err
	}

	c := snap.Collisions
	_, err = fmt.Fprintf(w, "ticks=%d pos=(%.4f, %.4f) vel=(%.4f, %.4f) below=%v above=%v left=%v right=%v slope=%.2f\n",
		snap.Tick, snap.Position.X, snap.Position.Y, snap.Velocity.X, snap.Velocity.Y,
		c.Below, c.Above, c.Left, c.Right, c.SlopeAngle)
	return err
}
