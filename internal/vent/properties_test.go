package vent_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ventsim/internal/vent"
)

var _ = Describe("Simulator", func() {
	var cfg vent.Config

	BeforeEach(func() {
		cfg = vent.DefaultConfig()
	})

	Describe("reference room", func() {
		var result *vent.Result

		BeforeEach(func() {
			var err error
			result, err = vent.Run(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("starts at the ambient-equilibrium mass", func() {
			Expect(cfg.InitialMass()).To(BeNumerically("~", 60.2, 0.15))
			Expect(result.Masses[0]).To(Equal(cfg.InitialMass()))
			Expect(result.Pressures[0]).To(BeNumerically("~", cfg.AmbientPressure, 1e-6))
		})

		It("keeps the series parallel", func() {
			Expect(result.Times).To(HaveLen(len(result.Pressures)))
			Expect(result.Masses).To(HaveLen(len(result.Pressures)))
			Expect(result.Steps).To(Equal(len(result.Pressures)))
			Expect(result.Steps).To(BeNumerically(">=", cfg.Steps()))
		})

		It("rises through the injection window and decays afterwards", func() {
			injectionSteps := int(cfg.InjectionDuration / cfg.Dt)
			for i := 1; i <= injectionSteps; i++ {
				Expect(result.Pressures[i]).To(BeNumerically(">", result.Pressures[i-1]))
			}
			for i := injectionSteps + 3; i < len(result.Pressures); i++ {
				Expect(result.Pressures[i]).To(BeNumerically("<=", result.Pressures[i-1]))
			}
			Expect(result.PeakTime).To(BeNumerically("~", cfg.InjectionDuration, 3*cfg.Dt))
		})

		It("peaks above ambient", func() {
			Expect(result.PeakPressure).To(BeNumerically(">", cfg.AmbientPressure))
			Expect(result.Overpressure(cfg.AmbientPressure)).To(BeNumerically(">", 8000))
		})

		It("reports the peak as the max of the series and ambient", func() {
			want := cfg.AmbientPressure
			for _, p := range result.Pressures {
				want = math.Max(want, p)
			}
			Expect(result.PeakPressure).To(Equal(want))
		})

		It("does not clamp at a microsecond step", func() {
			Expect(result.ClampedSteps).To(BeZero())
		})
	})

	It("never records negative mass or pressure", func() {
		cfg.VentArea = 500
		cfg.InjectedMass = 50
		cfg.Dt = 1e-3
		cfg.InjectionDuration = 2e-3
		cfg.Duration = 0.1

		result, err := vent.Run(cfg)
		Expect(err).NotTo(HaveOccurred())
		for i := range result.Pressures {
			Expect(result.Pressures[i]).To(BeNumerically(">=", 0))
			Expect(result.Masses[i]).To(BeNumerically(">=", 0))
		}
		Expect(result.ClampedSteps).To(BeNumerically(">", 0))
	})

	It("holds ambient pressure when nothing is injected", func() {
		cfg.InjectedMass = 0

		result, err := vent.Run(cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, p := range result.Pressures {
			Expect(p).To(BeNumerically("~", cfg.AmbientPressure, cfg.AmbientPressure*1e-9))
		}
		Expect(result.VentedMass).To(BeNumerically("<", 1e-6))
	})

	It("conserves mass without a vent", func() {
		cfg.VentArea = 0

		var outflows []float64
		err := vent.New().RunWithCallback(context.Background(), cfg, func(s vent.State) bool {
			outflows = append(outflows, s.Outflow)
			return true
		})
		Expect(err).NotTo(HaveOccurred())
		for _, q := range outflows {
			Expect(q).To(BeZero())
		}

		result, err := vent.Run(cfg)
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < len(result.Masses); i++ {
			Expect(result.Masses[i]).To(BeNumerically(">=", result.Masses[i-1]))
			if result.Times[i-1] > cfg.InjectionDuration {
				Expect(result.Masses[i]).To(Equal(result.Masses[i-1]))
			}
		}
		Expect(result.VentedMass).To(BeZero())
	})

	It("injects at most one increment beyond the total", func() {
		increment := cfg.MassRate() * cfg.Dt
		result, err := vent.Run(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.InjectedMass).To(BeNumerically("<=", cfg.InjectedMass+increment+1e-9))
		Expect(result.InjectedMass).To(BeNumerically(">=", cfg.InjectedMass-1e-9))
	})

	It("keeps the running peak non-decreasing", func() {
		var peaks []float64
		err := vent.New().RunWithCallback(context.Background(), cfg, func(s vent.State) bool {
			peaks = append(peaks, s.PeakPressure)
			return true
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(peaks[0]).To(BeNumerically(">=", cfg.AmbientPressure))
		for i := 1; i < len(peaks); i++ {
			Expect(peaks[i]).To(BeNumerically(">=", peaks[i-1]))
		}
	})

	DescribeTable("doubling the vent area never raises the peak",
		func(area float64) {
			small := cfg
			small.VentArea = area
			large := cfg
			large.VentArea = 2 * area

			a, err := vent.Run(small)
			Expect(err).NotTo(HaveOccurred())
			b, err := vent.Run(large)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.PeakPressure).To(BeNumerically("<=", a.PeakPressure))
		},
		Entry("closed", 0.0),
		Entry("small vent", 0.01),
		Entry("medium vent", 0.1),
		Entry("large vent", 1.0),
		Entry("open wall", 5.0),
	)

	Describe("injected-only closure", func() {
		It("starts empty and below ambient", func() {
			cfg.Closure = vent.InjectedOnly
			result, err := vent.Run(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Masses[0]).To(BeZero())
			Expect(result.Pressures[0]).To(BeZero())
			Expect(result.PeakPressure).To(BeNumerically(">=", cfg.AmbientPressure))
		})

		It("gives a different peak from the total-gas closure", func() {
			total, err := vent.Run(cfg)
			Expect(err).NotTo(HaveOccurred())
			cfg.Closure = vent.InjectedOnly
			injected, err := vent.Run(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(injected.PeakPressure).NotTo(BeNumerically("~", total.PeakPressure, 1))
		})
	})

	Describe("blow-down from an initial overpressure", func() {
		var result *vent.Result

		BeforeEach(func() {
			cfg.Volume = 50
			cfg.VentArea = 0.5
			cfg.InjectedMass = 0
			cfg.InitialPressure = 2 * cfg.AmbientPressure
			cfg.GasConstant = 8.314 / 29e-3
			cfg.Temperature = 300
			cfg.Dt = 1e-4
			cfg.Duration = 2

			var err error
			result, err = vent.Run(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("peaks at the starting pressure", func() {
			Expect(result.Pressures[0]).To(BeNumerically("~", 2*cfg.AmbientPressure, 1e-6))
			Expect(result.PeakPressure).To(Equal(result.Pressures[0]))
			Expect(result.PeakTime).To(BeZero())
		})

		It("relaxes monotonically to ambient", func() {
			for i := 1; i < len(result.Pressures); i++ {
				Expect(result.Pressures[i]).To(BeNumerically("<=", result.Pressures[i-1]))
			}
			Expect(result.FinalPressure()).To(BeNumerically("~", cfg.AmbientPressure, 10))
		})
	})

	Describe("configuration errors", func() {
		DescribeTable("are rejected before stepping",
			func(mutate func(*vent.Config)) {
				mutate(&cfg)
				observed := 0
				s := vent.New()
				s.AddObserver(observerFunc(func(vent.State) { observed++ }))

				result, err := s.Run(context.Background(), cfg)
				Expect(err).To(MatchError(vent.ErrInvalidConfig))
				Expect(result).To(BeNil())
				Expect(observed).To(BeZero())
			},
			Entry("zero injection duration", func(c *vent.Config) { c.InjectionDuration = 0 }),
			Entry("negative volume", func(c *vent.Config) { c.Volume = -1 }),
			Entry("zero volume", func(c *vent.Config) { c.Volume = 0 }),
			Entry("negative dt", func(c *vent.Config) { c.Dt = -1e-6 }),
			Entry("negative duration", func(c *vent.Config) { c.Duration = -1 }),
			Entry("negative discharge coefficient", func(c *vent.Config) { c.DischargeCoefficient = -0.7 }),
			Entry("NaN temperature", func(c *vent.Config) { c.Temperature = math.NaN() }),
		)
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := vent.New().Run(ctx, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result).NotTo(BeNil())
		Expect(result.Pressures).To(BeEmpty())
	})
})

type observerFunc func(vent.State)

func (f observerFunc) OnStep(s vent.State) { f(s) }
