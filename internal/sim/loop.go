package sim

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Loop struct {
	cfg   Config
	timer Timer
	log   logrus.FieldLogger
	clock *Clock
	stats Stats
}

func NewLoop(cfg Config) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loop{
		cfg:   cfg,
		timer: SystemTimer{},
		log:   logrus.StandardLogger(),
	}, nil
}

func (l *Loop) SetTimer(t Timer)                 { l.timer = t }
func (l *Loop) SetLogger(log logrus.FieldLogger) { l.log = log }

// Clock returns the bookkeeping of the current or last run.
func (l *Loop) Clock() *Clock { return l.clock }
func (l *Loop) Stats() Stats  { return l.stats }

// Run drives stepper and renderer until one of them returns an error, the
// context is canceled, or the configured duration or frame budget is spent.
// Hitting a budget returns nil.
func (l *Loop) Run(ctx context.Context, stepper PhysicsStepper, renderer FrameRenderer) error {
	interval := l.cfg.FrameInterval()
	prev := l.timer.Now()

	l.clock = NewClock(l.cfg.Dt, prev)
	l.clock.Limit = l.cfg.StepLimit()
	l.stats = Stats{}

	l.log.WithFields(logrus.Fields{
		"dt":       l.cfg.Dt,
		"fps":      l.cfg.FPS,
		"duration": l.cfg.Duration,
	}).Debug("loop started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := l.timer.Now()
		l.clock.Accumulate(start.Sub(prev).Seconds())
		prev = start

		if fs, ok := stepper.(FrameStarter); ok {
			fs.BeginFrame()
		}
		n, err := l.clock.Drain(stepper.Step)
		l.stats.Steps += uint64(n)
		if n > l.stats.MaxCatchUp {
			l.stats.MaxCatchUp = n
		}
		if err != nil {
			return l.fail(PhaseStep, err)
		}
		if n > 2 {
			l.log.WithFields(logrus.Fields{"frame": l.stats.Frames, "steps": n}).Debug("catching up")
		}

		if err := renderer.Render(l.clock.FPS()); err != nil {
			return l.fail(PhaseRender, err)
		}
		l.stats.Frames++

		before := l.clock.FPS()
		if fps := l.clock.Tick(start); fps != before {
			l.log.WithField("fps", fps).Trace("fps sample")
		}

		if l.clock.Done() || (l.cfg.MaxFrames > 0 && l.stats.Frames >= l.cfg.MaxFrames) {
			l.log.WithFields(logrus.Fields{
				"frames": l.stats.Frames,
				"steps":  l.stats.Steps,
			}).Debug("loop budget spent")
			return nil
		}

		if wait := interval - l.timer.Now().Sub(start); wait > 0 {
			l.timer.Sleep(wait)
		}
	}
}

func (l *Loop) fail(phase Phase, err error) error {
	lerr := &LoopError{
		Phase:   phase,
		Frame:   l.stats.Frames,
		SimTime: l.clock.SimTime,
		Err:     err,
	}
	entry := l.log.WithFields(logrus.Fields{"phase": phase, "frame": lerr.Frame})
	if IsQuit(err) {
		entry.Info("loop terminated")
	} else {
		entry.WithError(err).Error("loop aborted")
	}
	return lerr
}
