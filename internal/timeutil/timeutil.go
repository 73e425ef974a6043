package timeutil

import (
	"math"
	"time"
)

const (
	// UnixEpochJulianDate is the Julian date of 1970-01-01T00:00:00 UTC.
	UnixEpochJulianDate = 2440587.5

	// SecondsPerDay ignores leap seconds, same as time.Time.
	SecondsPerDay = 86400.0
)

// -----------------------------
// Julian dates
// -----------------------------

// JulianDate returns the Julian date for t as a continuous day count.
//
// Instants before 1970 produce a negative offset from the Unix epoch, and the
// nanosecond part is kept so the result has sub-second resolution.
func JulianDate(t time.Time) float64 {
	// Unix() floors toward -inf and Nanosecond() is always non-negative, so
	// the sum is correct on both sides of the epoch.
	secs := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return secs/SecondsPerDay + UnixEpochJulianDate
}

// TimeFromJulian is the inverse of JulianDate. The result is in UTC and
// rounded to the nearest microsecond, which is about the resolution a
// float64 Julian date carries in the current era.
func TimeFromJulian(jd float64) time.Time {
	secs := (jd - UnixEpochJulianDate) * SecondsPerDay
	whole := math.Floor(secs)
	nanos := math.Round((secs-whole)*1e6) * 1e3
	return time.Unix(int64(whole), int64(nanos)).UTC()
}

// -----------------------------
// Cycle and angle normalization
// -----------------------------

// Fract returns the fractional part of x using floor semantics, so the result
// is always in [0,1) even for negative x (Fract(-0.25) == 0.75).
func Fract(x float64) float64 {
	f := x - math.Floor(x)
	// x slightly below an integer can round up to exactly 1.
	if f >= 1 {
		return 0
	}
	return f
}

// Normalize360 wraps d into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	if d >= 360.0 {
		return 0
	}
	return d
}
