package moon

import (
	"math"

	"github.com/thurmanmarka/moonglide/internal/timeutil"
)

// Position is the Moon's approximate geocentric ecliptic position.
type Position struct {
	Distance  float64 // Earth radii
	Latitude  float64 // ecliptic latitude, degrees (±5.1)
	Longitude float64 // ecliptic longitude, degrees [0,360)
}

// angles holds the arguments shared by the distance and longitude series.
//
//	a = anomalistic angle (mean anomaly)
//	b = twice the synodic angle (twice the mean elongation)
//	d = b - a (evection argument)
type angles struct {
	a, b, d float64
}

func anglesAt(jd, phase float64) angles {
	a := 2 * math.Pi * anomalistic.At(jd)
	b := 2 * 2 * math.Pi * phase
	return angles{a: a, b: b, d: b - a}
}

// PositionAt returns the Moon's distance, ecliptic latitude and ecliptic
// longitude at Julian date jd. phase must be the synodic phase for the same
// jd (see PhaseAt); it is passed in so callers do not compute it twice.
func PositionAt(jd, phase float64) Position {
	ang := anglesAt(jd, phase)
	return Position{
		Distance:  distance(ang),
		Latitude:  latitude(jd),
		Longitude: longitude(jd, ang),
	}
}

// distance in Earth radii. The mean is 60.4 with the elliptic term (a),
// evection (d) and variation (b) subtracted.
func distance(ang angles) float64 {
	return 60.4 -
		3.3*math.Cos(ang.a) -
		0.6*math.Cos(ang.d) -
		0.5*math.Cos(ang.b)
}

// latitude follows the nodal cycle with the 5.1° orbital inclination.
func latitude(jd float64) float64 {
	return 5.1 * math.Sin(2*math.Pi*draconic.At(jd))
}

// longitude is the mean sidereal longitude plus the equation of center,
// evection and variation.
func longitude(jd float64, ang angles) float64 {
	lon := 360*sidereal.At(jd) +
		6.3*math.Sin(ang.a) +
		1.3*math.Sin(ang.d) +
		0.7*math.Sin(ang.b)
	return timeutil.Normalize360(lon)
}
