package physics

import (
	"fmt"
	"math"
)

const (
	// RatedPowerMW is the thermal power at unity flux.
	RatedPowerMW = 2000.0
	// CoolingCapacityMW is the heat removal at full pump speed and cooling efficiency.
	CoolingCapacityMW = 2500.0
	// CoolingRefTemp normalizes the temperature-driven heat removal.
	CoolingRefTemp = 600.0
	// ThermalMass converts net MW into °C per second.
	ThermalMass = 0.05
	// AmbientTemp is the floor the core cools toward.
	AmbientTemp = 25.0
	// AmbientLoss is the fraction of the excess over AmbientTemp lost per second.
	AmbientLoss = 0.001

	// InitialCoreTemp is the core temperature of a new unit.
	InitialCoreTemp = 300.0

	// MeltdownTemp is the temperature above which the core is in Meltdown.
	MeltdownTemp = 600.0
	// CriticalTemp is the temperature above which the core is Critical.
	CriticalTemp = 450.0
	// UnstableTemp is the temperature above which the core is Unstable.
	UnstableTemp = 350.0
)

// Status is the advisory condition of the core derived from its temperature.
type Status int

const (
	Nominal Status = iota
	Unstable
	Critical
	Meltdown
)

func (s Status) String() string {
	switch s {
	case Nominal:
		return "Nominal"
	case Unstable:
		return "Unstable"
	case Critical:
		return "Critical"
	case Meltdown:
		return "Meltdown"
	default:
		return "Unknown"
	}
}

// StatusFor classifies a core temperature.
func StatusFor(temp float64) Status {
	switch {
	case temp > MeltdownTemp:
		return Meltdown
	case temp > CriticalTemp:
		return Critical
	case temp > UnstableTemp:
		return Unstable
	default:
		return Nominal
	}
}

// Thermal is a lumped heat balance of the core.
type Thermal struct {
	CoreTemp float64
	Status   Status
}

func NewThermal() *Thermal {
	return &Thermal{
		CoreTemp: InitialCoreTemp,
		Status:   Nominal,
	}
}

// PowerMW converts relative flux to thermal power.
func PowerMW(flux float64) float64 {
	return flux * RatedPowerMW
}

// HeatRemovalMW is the cooling capacity for the given pump speed and cooling
// efficiency, both in percent.
func HeatRemovalMW(pumpSpeed, coolingEff float64) float64 {
	return Clamp(pumpSpeed, 0, 100) / 100.0 * Clamp(coolingEff, 0, 100) / 100.0 * CoolingCapacityMW
}

// Update advances the core temperature by dt seconds and returns it.
func (th *Thermal) Update(flux, pumpSpeed, coolingEff, dt float64) float64 {
	power := PowerMW(flux)
	removal := HeatRemovalMW(pumpSpeed, coolingEff)

	net := power - removal*(th.CoreTemp/CoolingRefTemp)
	th.CoreTemp += net * ThermalMass * dt

	th.CoreTemp -= (th.CoreTemp - AmbientTemp) * AmbientLoss * dt
	th.CoreTemp = math.Max(AmbientTemp, th.CoreTemp)

	th.Status = StatusFor(th.CoreTemp)

	return th.CoreTemp
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, v := range []Status{Nominal, Unstable, Critical, Meltdown} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("physics: unknown status %q", text)
}
