// Package moon implements a low-precision periodic model of the Moon.
//
// Each observable is driven by one mean orbital cycle (synodic, anomalistic,
// draconic, sidereal), described by a period in days and a Julian date at
// which that cycle restarts. A handful of sine/cosine terms couple the
// cycles. The model is good for display purposes, not for ephemeris work.
package moon

import "github.com/thurmanmarka/moonglide/internal/timeutil"

const (
	// SynodicPeriod is the mean time between new moons, in days.
	SynodicPeriod = 29.530588853
	// SynodicEpoch is a reference new moon (2000-01-06 ~18:14 UTC) as a Julian date.
	SynodicEpoch = 2451550.26

	// AnomalisticPeriod is the mean time between perigees, in days.
	AnomalisticPeriod = 27.55454988
	AnomalisticEpoch  = 2451562.2

	// DraconicPeriod is the mean time between ascending node crossings, in days.
	DraconicPeriod = 27.212220817
	DraconicEpoch  = 2451565.2

	// SiderealPeriod is the mean time to return to the same fixed-star longitude.
	SiderealPeriod = 27.321582241
	SiderealEpoch  = 2451555.8
)

// Cycle is one mean periodic oscillation of the lunar orbit.
type Cycle struct {
	Period float64 // days
	Epoch  float64 // Julian date where the cycle is at 0
}

// At returns how far through the cycle jd lies, in [0,1).
//
// Dates before Epoch count backwards from the previous cycle start, so the
// result never goes negative.
func (c Cycle) At(jd float64) float64 {
	return timeutil.Fract((jd - c.Epoch) / c.Period)
}

var (
	synodic     = Cycle{Period: SynodicPeriod, Epoch: SynodicEpoch}
	anomalistic = Cycle{Period: AnomalisticPeriod, Epoch: AnomalisticEpoch}
	draconic    = Cycle{Period: DraconicPeriod, Epoch: DraconicEpoch}
	sidereal    = Cycle{Period: SiderealPeriod, Epoch: SiderealEpoch}
)

