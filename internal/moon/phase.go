package moon

import "math"

// Phase is the illumination state of the Moon at one instant.
type Phase struct {
	Phase    float64 // [0,1): 0 = new, 0.5 = full
	Age      float64 // days since the last new moon
	Fraction float64 // illuminated fraction of the disk [0,1]
	Name     string  // one of PhaseNames
}

var phaseNames = [8]string{
	"New",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// PhaseNames returns the eight phase names in cycle order, starting at "New".
func PhaseNames() []string {
	out := make([]string, len(phaseNames))
	copy(out, phaseNames[:])
	return out
}

// PhaseAt computes the synodic phase for the Julian date jd.
func PhaseAt(jd float64) Phase {
	p := synodic.At(jd)
	return Phase{
		Phase:    p,
		Age:      p * SynodicPeriod,
		Fraction: IlluminatedFraction(p),
		Name:     PhaseName(p),
	}
}

// IlluminatedFraction maps a synodic phase to the lit fraction of the disk:
// 0 at new moon, 1 at full moon.
func IlluminatedFraction(phase float64) float64 {
	return (1 - math.Cos(2*math.Pi*phase)) / 2
}

// PhaseName returns the nearest of the eight named phases. Each name covers
// one eighth of the cycle centred on its nominal phase, so "New" spans both
// ends of the cycle.
func PhaseName(phase float64) string {
	// math.Round rounds half away from zero. Phase 1.0 (or anything that
	// rounds to 8) folds back onto "New".
	idx := int(math.Round(phase*8)) % len(phaseNames)
	if idx < 0 {
		idx += len(phaseNames)
	}
	return phaseNames[idx]
}
