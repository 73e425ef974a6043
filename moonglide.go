// Package moonglide computes where the Moon is in its cycles for any instant:
// synodic phase, age, illuminated fraction, distance, ecliptic latitude and
// longitude, plus a phase name and the zodiac constellation it sits in.
//
// The model is a handful of mean periodic terms (see internal/moon). It is
// meant for displays, reports and schedulers, not for precise ephemerides:
// there is no observer location, no perturbation series, and no nutation or
// aberration correction.
//
// Every function here is pure and safe for concurrent use.
package moonglide

import (
	"time"

	"github.com/thurmanmarka/moonglide/internal/moon"
	"github.com/thurmanmarka/moonglide/internal/timeutil"
	"github.com/thurmanmarka/moonglide/internal/zodiac"
)

// SynodicPeriod is the mean length of a lunar cycle (new moon to new moon)
// in days. Snapshot.Age is always below it.
const SynodicPeriod = moon.SynodicPeriod

// EarthRadiusKm is the equatorial Earth radius used by Snapshot.DistanceKm.
const EarthRadiusKm = 6378.14

// Snapshot describes the Moon at a single instant.
type Snapshot struct {
	Time       time.Time // the instant this snapshot is evaluated at, UTC
	JulianDate float64   // Time as a Julian date
	Phase      float64   // synodic phase [0..1), 0=new, 0.5=full
	Age        float64   // days since the last new moon [0..SynodicPeriod)
	Fraction   float64   // illuminated fraction [0..1], 0=dark, 1=fully lit
	Distance   float64   // Earth-Moon distance in Earth radii
	Latitude   float64   // ecliptic latitude, degrees
	Longitude  float64   // ecliptic longitude, degrees [0..360)
	PhaseName  string    // "New", "Waxing Crescent", ..., "Waning Crescent"
	ZodiacName string    // constellation along the ecliptic, e.g. "Aries"
}

// Waxing reports whether illumination is increasing (first half of the cycle).
func (s Snapshot) Waxing() bool {
	return s.Phase < 0.5
}

// DistanceKm returns Distance converted to kilometres.
func (s Snapshot) DistanceKm() float64 {
	return s.Distance * EarthRadiusKm
}

// SnapshotAt computes the Moon's state at t. Phase is a global property, so
// the time zone of t does not matter; the returned Time is t in UTC.
func SnapshotAt(t time.Time) Snapshot {
	snap := fromJulian(timeutil.JulianDate(t))
	snap.Time = t.UTC()
	return snap
}

// SnapshotAtJulian computes the Moon's state at the Julian date jd.
func SnapshotAtJulian(jd float64) Snapshot {
	snap := fromJulian(jd)
	snap.Time = timeutil.TimeFromJulian(jd)
	return snap
}

func fromJulian(jd float64) Snapshot {
	ph := moon.PhaseAt(jd)
	pos := moon.PositionAt(jd, ph.Phase)

	return Snapshot{
		JulianDate: jd,
		Phase:      ph.Phase,
		Age:        ph.Age,
		Fraction:   ph.Fraction,
		Distance:   pos.Distance,
		Latitude:   pos.Latitude,
		Longitude:  pos.Longitude,
		PhaseName:  ph.Name,
		ZodiacName: zodiac.Constellation(pos.Longitude),
	}
}

// Series returns n snapshots starting at start and spaced step apart.
// It returns nil when n <= 0.
func Series(start time.Time, step time.Duration, n int) []Snapshot {
	if n <= 0 {
		return nil
	}
	out := make([]Snapshot, n)
	for i := range out {
		out[i] = SnapshotAt(start.Add(time.Duration(i) * step))
	}
	return out
}

// PhaseNames returns the eight phase names in cycle order, starting at "New".
func PhaseNames() []string {
	return moon.PhaseNames()
}

// ZodiacNames returns the twelve constellation names in ecliptic order,
// starting at Pisces.
func ZodiacNames() []string {
	return zodiac.Names()
}
