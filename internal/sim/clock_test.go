package sim_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glide/internal/sim"
)

var _ = Describe("Clock", func() {
	const dt = 0.01
	var clock *sim.Clock
	start := time.Unix(0, 0)

	BeforeEach(func() {
		clock = sim.NewClock(dt, start)
	})

	DescribeTable("keeps the accumulator in [0, dt) after draining",
		func(frames []float64) {
			total := 0.0
			for _, ft := range frames {
				clock.Accumulate(ft)
				total += math.Max(ft, 0)

				_, err := clock.Drain(func(t, dt float64) error { return nil })
				Expect(err).NotTo(HaveOccurred())
				Expect(clock.Accumulator).To(BeNumerically(">=", 0))
				Expect(clock.Accumulator).To(BeNumerically("<", dt))
			}
			Expect(clock.SimTime + clock.Accumulator).To(BeNumerically("~", total, 1e-9))
		},
		Entry("steady 60 Hz", []float64{1.0 / 60, 1.0 / 60, 1.0 / 60, 1.0 / 60}),
		Entry("faster than dt", []float64{0.003, 0.004, 0.002, 0.001, 0.005}),
		Entry("exact multiples", []float64{0.01, 0.02, 0.03}),
		Entry("stalls", []float64{0.016, 0.25, 0.016, 1.3, 0.0001}),
		Entry("zero and negative deltas", []float64{0, -0.5, 0.011}),
	)

	It("runs several steps to catch up after a stall instead of skipping time", func() {
		clock.Accumulate(0.137)

		var times []float64
		n, err := clock.Drain(func(t, _ float64) error {
			times = append(times, t)
			return nil
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(13))
		Expect(times).To(HaveLen(13))
		for i := 1; i < len(times); i++ {
			Expect(times[i]).To(BeNumerically(">", times[i-1]))
		}
		Expect(clock.SimTime).To(BeNumerically("~", 0.13, 1e-9))
	})

	It("keeps the failing slice when a step errors", func() {
		boom := errors.New("boom")
		clock.Accumulate(0.035)

		calls := 0
		n, err := clock.Drain(func(t, _ float64) error {
			calls++
			if calls == 2 {
				return boom
			}
			return nil
		})

		Expect(err).To(MatchError(boom))
		Expect(n).To(Equal(1))
		Expect(clock.Steps).To(BeEquivalentTo(1))
		Expect(clock.Accumulator).To(BeNumerically("~", 0.025, 1e-9))
	})

	It("stops draining at the step limit", func() {
		clock.Limit = 3
		clock.Accumulate(0.1)

		n, err := clock.Drain(func(t, _ float64) error { return nil })

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))
		Expect(clock.Done()).To(BeTrue())
	})

	It("samples fps once per wall second", func() {
		now := start
		for i := 0; i < 30; i++ {
			now = now.Add(20 * time.Millisecond)
			Expect(clock.Tick(now)).To(Equal(0))
		}

		for i := 0; i < 20; i++ {
			now = now.Add(20 * time.Millisecond)
			clock.Tick(now)
		}
		Expect(clock.FPS()).To(Equal(50))

		now = now.Add(500 * time.Millisecond)
		Expect(clock.Tick(now)).To(Equal(50))
	})
})
