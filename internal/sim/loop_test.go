package sim_test

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/san-kum/glide/internal/kinematics"
	"github.com/san-kum/glide/internal/sim"
)

// frameCounter records how many steps each frame's batch held.
type frameCounter struct {
	batches []int
}

func (f *frameCounter) BeginFrame() { f.batches = append(f.batches, 0) }

func (f *frameCounter) Step(t, dt float64) error {
	f.batches[len(f.batches)-1]++
	return nil
}

var _ = Describe("Loop", func() {
	var (
		timer *sim.VirtualTimer
		hook  *test.Hook
		start = time.Unix(1700000000, 0)
	)

	newLoop := func(cfg sim.Config) *sim.Loop {
		loop, err := sim.NewLoop(cfg)
		Expect(err).NotTo(HaveOccurred())

		logger, h := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		hook = h

		loop.SetTimer(timer)
		loop.SetLogger(logger)
		return loop
	}

	noopStep := sim.StepFunc(func(t, dt float64) error { return nil })

	BeforeEach(func() {
		timer = sim.NewVirtualTimer(start)
	})

	It("announces each frame's batch of steps before draining it", func() {
		cfg := sim.DefaultConfig()
		cfg.MaxFrames = 30
		loop := newLoop(cfg)
		counter := &frameCounter{}

		err := loop.Run(context.Background(), counter, sim.RenderFunc(func(int) error { return nil }))
		Expect(err).NotTo(HaveOccurred())

		Expect(counter.batches).To(HaveLen(30))
		total := 0
		for _, n := range counter.batches {
			Expect(n).To(BeNumerically("<=", 2))
			total += n
		}
		Expect(uint64(total)).To(Equal(loop.Stats().Steps))
	})

	It("rejects unschedulable configs", func() {
		for _, cfg := range []sim.Config{
			{Dt: 0, FPS: 60},
			{Dt: -0.01, FPS: 60},
			{Dt: math.NaN(), FPS: 60},
			{Dt: 0.01, FPS: 0},
			{Dt: 0.01, FPS: 60, Duration: -1},
		} {
			_, err := sim.NewLoop(cfg)
			Expect(err).To(MatchError(sim.ErrInvalidConfig))
		}
	})

	It("runs physics steps in increasing simulated time with a fixed dt", func() {
		cfg := sim.DefaultConfig()
		cfg.Duration = 1.0
		loop := newLoop(cfg)

		var times []float64
		step := sim.StepFunc(func(t, dt float64) error {
			Expect(dt).To(Equal(cfg.Dt))
			times = append(times, t)
			return nil
		})
		render := sim.RenderFunc(func(int) error { return nil })

		Expect(loop.Run(context.Background(), step, render)).To(Succeed())

		Expect(times).To(HaveLen(100))
		for i := 1; i < len(times); i++ {
			Expect(times[i]).To(BeNumerically(">", times[i-1]))
		}
		Expect(loop.Stats().Steps).To(BeEquivalentTo(100))
	})

	It("renders exactly once per frame and paces frames to the target rate", func() {
		cfg := sim.DefaultConfig()
		cfg.MaxFrames = 120
		loop := newLoop(cfg)

		renders := 0
		render := sim.RenderFunc(func(int) error {
			renders++
			return nil
		})

		Expect(loop.Run(context.Background(), noopStep, render)).To(Succeed())

		Expect(renders).To(Equal(120))
		elapsed := timer.Now().Sub(start)
		Expect(elapsed).To(BeNumerically("~", 119*cfg.FrameInterval(), time.Millisecond))
	})

	It("catches up after a stalled frame and keeps the accumulator bounded", func() {
		cfg := sim.DefaultConfig()
		cfg.MaxFrames = 30
		loop := newLoop(cfg)

		frame := 0
		render := sim.RenderFunc(func(int) error {
			c := loop.Clock()
			Expect(c.Accumulator).To(BeNumerically(">=", 0))
			Expect(c.Accumulator).To(BeNumerically("<", cfg.Dt))

			frame++
			if frame == 5 || frame == 12 {
				timer.Advance(250 * time.Millisecond)
			}
			return nil
		})

		Expect(loop.Run(context.Background(), noopStep, render)).To(Succeed())

		Expect(loop.Stats().MaxCatchUp).To(BeNumerically(">=", 25))
		elapsed := timer.Now().Sub(start).Seconds()
		c := loop.Clock()
		Expect(c.SimTime + c.Accumulator).To(BeNumerically("~", elapsed, 1e-9))
		Expect(c.SimTime).To(BeNumerically("~", float64(c.Steps)*cfg.Dt, 1e-9))

		Expect(hook.AllEntries()).To(ContainElement(HaveField("Message", "catching up")))
	})

	It("stops without rendering when a step requests quit", func() {
		loop := newLoop(sim.DefaultConfig())

		quitRaised := false
		step := sim.StepFunc(func(t, dt float64) error {
			if t >= 0.1-1e-9 {
				quitRaised = true
				return sim.ErrQuit
			}
			return nil
		})
		renders := 0
		render := sim.RenderFunc(func(int) error {
			Expect(quitRaised).To(BeFalse(), "render called for the quitting frame")
			renders++
			return nil
		})

		err := loop.Run(context.Background(), step, render)

		Expect(err).To(MatchError(sim.ErrQuit))
		Expect(sim.IsQuit(err)).To(BeTrue())

		var lerr *sim.LoopError
		Expect(errors.As(err, &lerr)).To(BeTrue())
		Expect(lerr.Phase).To(Equal(sim.PhaseStep))
		Expect(lerr.Frame).To(BeEquivalentTo(renders))
		Expect(lerr.SimTime).To(BeNumerically("~", 0.1, 1e-9))
		Expect(hook.LastEntry().Message).To(Equal("loop terminated"))
	})

	It("propagates presentation failures", func() {
		loop := newLoop(sim.DefaultConfig())
		broken := errors.New("texture creation failed")

		frames := 0
		render := sim.RenderFunc(func(int) error {
			frames++
			if frames == 3 {
				return broken
			}
			return nil
		})

		err := loop.Run(context.Background(), noopStep, render)

		Expect(err).To(MatchError(broken))
		Expect(sim.IsQuit(err)).To(BeFalse())
		var lerr *sim.LoopError
		Expect(errors.As(err, &lerr)).To(BeTrue())
		Expect(lerr.Phase).To(Equal(sim.PhaseRender))
		Expect(hook.LastEntry().Level).To(Equal(logrus.ErrorLevel))
	})

	It("returns the context error when canceled", func() {
		loop := newLoop(sim.DefaultConfig())
		ctx, cancel := context.WithCancel(context.Background())

		frames := 0
		render := sim.RenderFunc(func(int) error {
			frames++
			if frames == 10 {
				cancel()
			}
			return nil
		})

		Expect(loop.Run(ctx, noopStep, render)).To(MatchError(context.Canceled))
		Expect(frames).To(Equal(10))
	})

	It("reports an fps estimate close to the target", func() {
		cfg := sim.DefaultConfig()
		cfg.Duration = 3.0
		loop := newLoop(cfg)

		var seen []int
		render := sim.RenderFunc(func(fps int) error {
			seen = append(seen, fps)
			return nil
		})

		Expect(loop.Run(context.Background(), noopStep, render)).To(Succeed())

		Expect(seen[0]).To(Equal(0))
		Expect(seen[len(seen)-1]).To(BeNumerically("~", cfg.FPS, 2))
	})

	It("moves a held-east entity to the closed-form position in 0.5s", func() {
		cfg := sim.DefaultConfig()
		cfg.Duration = 0.5
		loop := newLoop(cfg)

		e, err := kinematics.New(mgl64.Vec2{0, 0}, kinematics.DefaultParams())
		Expect(err).NotTo(HaveOccurred())

		steps := 0
		step := sim.StepFunc(func(t, dt float64) error {
			e.Advance(kinematics.East, dt)
			steps++
			if steps >= 8 {
				Expect(e.Velocity()[0]).To(Equal(1.5))
			} else {
				Expect(e.Velocity()[0]).To(BeNumerically("<", 1.5))
			}
			return nil
		})
		render := sim.RenderFunc(func(int) error {
			pos := e.Position()
			Expect(pos[1]).To(BeZero())
			return nil
		})

		Expect(loop.Run(context.Background(), step, render)).To(Succeed())

		Expect(steps).To(Equal(50))
		Expect(e.Position()[0]).To(BeNumerically("~", 701, 1e-6))
	})
})
