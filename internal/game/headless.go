package game

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/glide/internal/config"
	"github.com/san-kum/glide/internal/input"
	"github.com/san-kum/glide/internal/kinematics"
	"github.com/san-kum/glide/internal/metrics"
	"github.com/san-kum/glide/internal/sim"
	"github.com/san-kum/glide/internal/trace"
)

type Result struct {
	Trace   *trace.Recorder
	Stats   sim.Stats
	Metrics map[string]float64
	// Reason is set when the script quit before the time budget ran out.
	Reason string
}

// Simulate replays script from its start against cfg on a virtual clock. Nothing sleeps,
// so a run is deterministic and finishes as fast as the steps compute.
// Without an explicit loop duration the run lasts until one step past the
// end of the script, which lets a trailing quit fire.
func Simulate(ctx context.Context, cfg *config.Config, script *input.Script, log logrus.FieldLogger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entity, err := kinematics.New(cfg.Start(), cfg.EntityParams())
	if err != nil {
		return nil, err
	}

	lc := cfg.LoopConfig()
	if lc.Duration == 0 {
		lc.Duration = script.Duration() + lc.Dt
	}
	loop, err := sim.NewLoop(lc)
	if err != nil {
		return nil, err
	}
	script.Reset()
	loop.SetTimer(sim.NewVirtualTimer(time.Unix(0, 0)))
	loop.SetLogger(log)

	rec := trace.NewRecorder(entity.Snapshot())
	ctrl := NewController(entity, script, 0, log)
	ctrl.AddObserver(rec)
	set := metrics.Standard(cfg.EntityParams(), cfg.World.Width, cfg.World.Height)
	ctrl.AddObserver(set)

	noRender := sim.RenderFunc(func(int) error { return nil })
	err = loop.Run(ctx, ctrl, noRender)
	res := &Result{
		Trace:   rec,
		Stats:   loop.Stats(),
		Metrics: set.Values(),
		Reason:  ctrl.QuitReason(),
	}
	if err != nil && !sim.IsQuit(err) {
		return res, err
	}
	return res, nil
}
