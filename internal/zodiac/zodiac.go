// Package zodiac maps an ecliptic longitude to the zodiac constellation the
// Moon is in front of.
package zodiac

// boundary is the exclusive upper ecliptic longitude (degrees) of a
// constellation's span along the ecliptic.
type boundary struct {
	upper float64
	name  string
}

// The constellations are unequal in width, so these are not the 30° signs.
// Ordered by ascending upper bound; Pisces also covers [348.58, 360).
var boundaries = [12]boundary{
	{33.18, "Pisces"},
	{51.16, "Aries"},
	{93.44, "Taurus"},
	{119.48, "Gemini"},
	{135.30, "Cancer"},
	{173.34, "Leo"},
	{224.17, "Virgo"},
	{242.57, "Libra"},
	{271.26, "Scorpio"},
	{302.49, "Sagittarius"},
	{311.72, "Capricorn"},
	{348.58, "Aquarius"},
}

// Constellation returns the name of the first table entry whose upper bound
// is strictly greater than longitude. Longitudes past the last bound wrap
// around to Pisces.
//
// longitude is expected in [0, 360).
func Constellation(longitude float64) string {
	for _, b := range boundaries {
		if longitude < b.upper {
			return b.name
		}
	}
	return boundaries[0].name
}

// Names returns the twelve constellation names in table order.
func Names() []string {
	out := make([]string, len(boundaries))
	for i, b := range boundaries {
		out[i] = b.name
	}
	return out
}
