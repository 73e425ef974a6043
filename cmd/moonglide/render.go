package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/thurmanmarka/moonglide"
)

// renderer holds the lipgloss styles for human-readable output.
type renderer struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	accent lipgloss.Style
	dim    lipgloss.Style
}

// newRenderer builds styles bound to out. mode is "auto" (colour only when
// out is a terminal), "always" or "never".
func newRenderer(out *os.File, mode string) (*renderer, error) {
	lr := lipgloss.NewRenderer(out)

	switch mode {
	case "auto":
		if !term.IsTerminal(int(out.Fd())) {
			lr.SetColorProfile(termenv.Ascii)
		}
	case "always":
		lr.SetColorProfile(termenv.ANSI256)
	case "never":
		lr.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("unknown color mode %q (use auto, always or never)", mode)
	}

	return &renderer{
		header: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label:  lr.NewStyle().Foreground(lipgloss.Color("244")),
		value:  lr.NewStyle().Foreground(lipgloss.Color("252")),
		accent: lr.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true),
		dim:    lr.NewStyle().Foreground(lipgloss.Color("240")),
	}, nil
}

func (r *renderer) row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", r.label.Render(fmt.Sprintf("%-12s:", label)), r.value.Render(value))
}

// writeHuman prints one snapshot as labelled lines, with times shown in loc.
func writeHuman(w io.Writer, r *renderer, s moonglide.Snapshot, loc *time.Location) {
	fmt.Fprintln(w, r.header.Render(fmt.Sprintf("Moon at %s (%s)", s.Time.In(loc).Format(time.RFC3339), loc)))

	trend := "waning"
	if s.Waxing() {
		trend = "waxing"
	}

	r.row(w, "Phase", fmt.Sprintf("%s (%.3f, %s)", r.accent.Render(s.PhaseName), s.Phase, trend))
	r.row(w, "Age", fmt.Sprintf("%.2f days", s.Age))
	r.row(w, "Illuminated", fmt.Sprintf("%.1f%%", s.Fraction*100))
	r.row(w, "Distance", fmt.Sprintf("%.2f Earth radii (%.0f km)", s.Distance, s.DistanceKm()))
	r.row(w, "Latitude", fmt.Sprintf("%+.2f°", s.Latitude))
	r.row(w, "Longitude", fmt.Sprintf("%.2f° in %s", s.Longitude, r.accent.Render(s.ZodiacName)))
	r.row(w, "Julian date", r.dim.Render(fmt.Sprintf("%.6f", s.JulianDate)))
}

// writeTable prints one line per snapshot.
func writeTable(w io.Writer, r *renderer, snaps []moonglide.Snapshot, loc *time.Location) {
	header := fmt.Sprintf("%-16s  %-16s %7s %6s %7s %8s  %s",
		"time", "phase", "lit", "age", "dist", "lon", "zodiac")
	fmt.Fprintln(w, r.header.Render(header))

	for _, s := range snaps {
		// Pad before styling so escape codes do not break alignment.
		name := r.accent.Render(fmt.Sprintf("%-16s", s.PhaseName))
		fmt.Fprintf(w, "%s  %s %6.1f%% %6.2f %7.2f %8.2f  %s\n",
			r.dim.Render(s.Time.In(loc).Format("2006-01-02 15:04")),
			name,
			s.Fraction*100,
			s.Age,
			s.Distance,
			s.Longitude,
			s.ZodiacName,
		)
	}
}

// jsonSnapshot is the JSON form of a snapshot; keys are snake_case.
type jsonSnapshot struct {
	Time                string  `json:"time"` // RFC3339 in the requested zone
	JulianDate          float64 `json:"julian_date"`
	Phase               float64 `json:"phase"`
	Age                 float64 `json:"age"`
	IlluminatedFraction float64 `json:"illuminated_fraction"`
	Distance            float64 `json:"distance"`
	DistanceKm          float64 `json:"distance_km"`
	EclipticLatitude    float64 `json:"ecliptic_latitude"`
	EclipticLongitude   float64 `json:"ecliptic_longitude"`
	PhaseName           string  `json:"phase_name"`
	ZodiacName          string  `json:"zodiac_name"`
	Waxing              bool    `json:"waxing"`
}

func toJSON(s moonglide.Snapshot, loc *time.Location) jsonSnapshot {
	return jsonSnapshot{
		Time:                s.Time.In(loc).Format(time.RFC3339),
		JulianDate:          s.JulianDate,
		Phase:               s.Phase,
		Age:                 s.Age,
		IlluminatedFraction: s.Fraction,
		Distance:            s.Distance,
		DistanceKm:          s.DistanceKm(),
		EclipticLatitude:    s.Latitude,
		EclipticLongitude:   s.Longitude,
		PhaseName:           s.PhaseName,
		ZodiacName:          s.ZodiacName,
		Waxing:              s.Waxing(),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
