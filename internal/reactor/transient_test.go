package reactor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/safety"
)

const dt = 0.1

var _ = Describe("Unit transients", func() {
	var u *reactor.Unit

	BeforeEach(func() {
		u = reactor.New("A", "UNIT-1 (PWR)")
	})

	Context("rods fully withdrawn with interlocks enabled", func() {
		var (
			scramStep   int
			peakTemp    float64
			peakFlux    float64
			sawHighTemp bool
			rods        []float64
			temps       []float64
			fluxes      []float64
		)

		BeforeEach(func() {
			Expect(u.SetControls(reactor.Controls{
				RodsPos:       0,
				PumpSpeed:     100,
				CoolingEff:    100,
				SafetyEnabled: true,
			})).To(Succeed())

			scramStep = -1
			peakTemp, peakFlux = 0, 0
			sawHighTemp = false
			rods, temps, fluxes = nil, nil, nil

			for i := 0; i < 600; i++ {
				u.Tick(dt)
				tel := u.Telemetry()
				if tel.Scram && scramStep < 0 {
					scramStep = i
				}
				if safety.HasTrip(tel.Trips, safety.HighTemperature) {
					sawHighTemp = true
				}
				if tel.Temp > peakTemp {
					peakTemp = tel.Temp
				}
				if tel.Flux > peakFlux {
					peakFlux = tel.Flux
				}
				rods = append(rods, u.Controls().RodsPos)
				temps = append(temps, tel.Temp)
				fluxes = append(fluxes, tel.Flux)
			}
		})

		It("heats past the temperature setpoint and scrams", func() {
			Expect(scramStep).To(BeNumerically(">=", 0))
			Expect(peakTemp).To(BeNumerically(">", safety.MaxTemp))
			Expect(sawHighTemp).To(BeTrue())
			Expect(u.Telemetry().Scram).To(BeTrue())
			Expect(u.SafetyState()).To(Equal(safety.Scrammed))
		})

		It("drives the rods in monotonically once scrammed", func() {
			for i := scramStep + 1; i < len(rods); i++ {
				Expect(rods[i]).To(BeNumerically(">=", rods[i-1]), "step %d", i)
			}
			Expect(rods[len(rods)-1]).To(Equal(100.0))
		})

		It("reverses flux and temperature growth", func() {
			last := len(temps) - 1
			Expect(fluxes[last]).To(BeNumerically("<", peakFlux/10))
			Expect(temps[last]).To(BeNumerically("<", peakTemp))
			Expect(temps[last]).To(BeNumerically("<", temps[last-1]))
			Expect(fluxes[last]).To(BeNumerically("<", fluxes[last-1]))
		})

		It("records the scram in the event log", func() {
			events := u.Events()
			Expect(events).NotTo(BeEmpty())

			kinds := make([]reactor.EventKind, 0, len(events))
			for _, e := range events {
				kinds = append(kinds, e.Kind)
			}
			Expect(kinds).To(ContainElement(reactor.EventScram))
			Expect(kinds).To(ContainElement(reactor.EventStatus))
		})
	})

	Context("loss of coolant flow at power", func() {
		It("trips on loss of flow", func() {
			Expect(u.SetControls(reactor.Controls{
				RodsPos: 0, PumpSpeed: 100, CoolingEff: 100, SafetyEnabled: true,
			})).To(Succeed())
			for u.Telemetry().Flux <= 0.2 {
				u.Tick(dt)
			}
			Expect(u.Telemetry().Scram).To(BeFalse())

			Expect(u.UpdateControls(func(c *reactor.Controls) { c.PumpSpeed = 5 })).To(Succeed())
			u.Tick(dt)

			tel := u.Telemetry()
			Expect(tel.Scram).To(BeTrue())
			Expect(tel.Trips).To(ContainElement(safety.Trip{Kind: safety.LossOfFlow, Value: 5}))
		})

		It("does not trip a cold unit with pumps off", func() {
			Expect(u.UpdateControls(func(c *reactor.Controls) {
				c.PumpSpeed = 0
				c.RodsPos = 100
			})).To(Succeed())
			for i := 0; i < 100; i++ {
				u.Tick(dt)
			}
			Expect(u.Telemetry().Scram).To(BeFalse())
		})
	})

	Context("steady operation at the neutral rod position", func() {
		It("stays below the trip setpoints and reports nominal", func() {
			for i := 0; i < 3000; i++ {
				u.Tick(dt)
			}
			tel := u.Telemetry()
			Expect(tel.Scram).To(BeFalse())
			Expect(tel.Status).To(Equal(physics.Nominal))
			Expect(u.History()).To(HaveLen(reactor.HistoryCapacity))
		})
	})
})
