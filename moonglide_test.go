package moonglide

import (
	"math"
	"testing"
	"time"
)

// referenceNewMoon is the instant whose Julian date is exactly the synodic
// epoch (JD 2451550.26).
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 24, 0, time.UTC)

func TestSnapshotAt_ReferenceNewMoon(t *testing.T) {
	s := SnapshotAt(referenceNewMoon)

	if s.JulianDate != 2451550.26 {
		t.Fatalf("JulianDate = %.9f, want 2451550.26", s.JulianDate)
	}
	if s.Phase != 0 {
		t.Errorf("Phase = %v, want 0", s.Phase)
	}
	if s.Age != 0 {
		t.Errorf("Age = %v, want 0", s.Age)
	}
	if s.Fraction != 0 {
		t.Errorf("Fraction = %v, want 0", s.Fraction)
	}
	if s.PhaseName != "New" {
		t.Errorf("PhaseName = %q, want New", s.PhaseName)
	}
	if !s.Waxing() {
		t.Errorf("Waxing() = false at new moon, want true")
	}
}

func TestSnapshotAt_TimeIsUTC(t *testing.T) {
	locPHX, err := time.LoadLocation("America/Phoenix")
	if err != nil {
		t.Fatalf("failed to load America/Phoenix: %v", err)
	}

	local := time.Date(2025, time.May, 12, 9, 56, 0, 0, locPHX)
	s := SnapshotAt(local)

	if !s.Time.Equal(local) {
		t.Errorf("Time = %v, want same instant as %v", s.Time, local)
	}
	if s.Time.Location() != time.UTC {
		t.Errorf("Time location = %v, want UTC", s.Time.Location())
	}
	if got := SnapshotAt(local.UTC()); got != s {
		t.Errorf("snapshot depends on zone: %+v vs %+v", got, s)
	}
}

func TestSnapshotAt_KnownDates(t *testing.T) {
	tests := []struct {
		name       string
		time       time.Time
		wantPhase  string
		wantZodiac string
		minFrac    float64
		maxFrac    float64
	}{
		{
			name:       "2024-04-08 eclipse",
			time:       time.Date(2024, time.April, 8, 18, 21, 0, 0, time.UTC),
			wantPhase:  "New",
			wantZodiac: "Pisces", // longitude ~18.9
			minFrac:    0,
			maxFrac:    0.01,
		},
		{
			name:       "2024-04-23 full moon",
			time:       time.Date(2024, time.April, 23, 23, 49, 0, 0, time.UTC),
			wantPhase:  "Full",
			wantZodiac: "Virgo", // longitude ~213.8
			minFrac:    0.99,
			maxFrac:    1,
		},
		{
			name:       "1969-07-20 Apollo 11",
			time:       time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC),
			wantPhase:  "First Quarter",
			wantZodiac: "Virgo", // longitude ~187.3
			minFrac:    0.3,
			maxFrac:    0.45,
		},
		{
			name:       "2025-11-05 full moon",
			time:       time.Date(2025, time.November, 5, 13, 19, 0, 0, time.UTC),
			wantPhase:  "Full",
			wantZodiac: "Aries", // longitude ~42.5
			minFrac:    0.99,
			maxFrac:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SnapshotAt(tt.time)
			if s.PhaseName != tt.wantPhase {
				t.Errorf("PhaseName = %q, want %q (phase=%.4f)", s.PhaseName, tt.wantPhase, s.Phase)
			}
			if s.ZodiacName != tt.wantZodiac {
				t.Errorf("ZodiacName = %q, want %q (longitude=%.2f)", s.ZodiacName, tt.wantZodiac, s.Longitude)
			}
			if s.Fraction < tt.minFrac || s.Fraction > tt.maxFrac {
				t.Errorf("Fraction = %.4f, want in [%.2f, %.2f]", s.Fraction, tt.minFrac, tt.maxFrac)
			}
		})
	}
}

func TestSnapshotAt_Invariants(t *testing.T) {
	phaseNames := make(map[string]bool)
	for _, n := range PhaseNames() {
		phaseNames[n] = true
	}
	zodiacNames := make(map[string]bool)
	for _, n := range ZodiacNames() {
		zodiacNames[n] = true
	}

	// 1800..2200 with an irregular step so samples land all over each cycle.
	start := time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2200, time.January, 1, 0, 0, 0, 0, time.UTC)
	step := 97*time.Hour + 13*time.Minute + 7*time.Second

	for tm := start; tm.Before(end); tm = tm.Add(step) {
		s := SnapshotAt(tm)

		if s.Phase < 0 || s.Phase >= 1 {
			t.Fatalf("%v: Phase %v outside [0,1)", tm, s.Phase)
		}
		if s.Age < 0 || s.Age >= SynodicPeriod {
			t.Fatalf("%v: Age %v outside [0,%v)", tm, s.Age, SynodicPeriod)
		}
		if s.Fraction < 0 || s.Fraction > 1 {
			t.Fatalf("%v: Fraction %v outside [0,1]", tm, s.Fraction)
		}
		if s.Longitude < 0 || s.Longitude >= 360 {
			t.Fatalf("%v: Longitude %v outside [0,360)", tm, s.Longitude)
		}
		if math.Abs(s.Latitude) > 5.1 {
			t.Fatalf("%v: Latitude %v outside ±5.1", tm, s.Latitude)
		}
		if !phaseNames[s.PhaseName] {
			t.Fatalf("%v: unexpected PhaseName %q", tm, s.PhaseName)
		}
		if !zodiacNames[s.ZodiacName] {
			t.Fatalf("%v: unexpected ZodiacName %q", tm, s.ZodiacName)
		}
	}
}

func TestSnapshotAt_Deterministic(t *testing.T) {
	tm := time.Date(2031, time.March, 14, 15, 9, 26, 535897932, time.UTC)

	a := SnapshotAt(tm)
	b := SnapshotAt(tm)
	if a != b {
		t.Errorf("two snapshots of the same instant differ:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotAt_AgeMonotonic(t *testing.T) {
	// Start an hour after the reference new moon and walk one full cycle.
	start := referenceNewMoon.Add(time.Hour)
	prev := SnapshotAt(start)
	resets := 0

	for i := 1; i <= 24*31; i++ {
		s := SnapshotAt(start.Add(time.Duration(i) * time.Hour))
		if s.Age < prev.Age {
			resets++
			if s.Age > 1.0/24 {
				t.Fatalf("age reset to %.4f days, want < 1 hour after new moon", s.Age)
			}
		} else if d := s.Age - prev.Age; math.Abs(d-1.0/24) > 1e-6 {
			t.Fatalf("age advanced %.6f days in one hour", d)
		}
		prev = s
	}

	if resets != 1 {
		t.Errorf("saw %d age resets over 31 days, want 1", resets)
	}
}

func TestSnapshotAt_PreEpoch(t *testing.T) {
	// Before both the Unix epoch and the synodic reference.
	tm := time.Date(1066, time.October, 14, 9, 0, 0, 0, time.UTC)
	s := SnapshotAt(tm)

	if s.Phase < 0 || s.Phase >= 1 {
		t.Errorf("Phase = %v, outside [0,1)", s.Phase)
	}
	if s.Age < 0 {
		t.Errorf("Age = %v, want non-negative", s.Age)
	}
	if s.JulianDate >= 2440587.5 {
		t.Errorf("JulianDate = %v, want before the Unix epoch", s.JulianDate)
	}
}

func TestSnapshotAtJulian(t *testing.T) {
	jd := 2460424.492361111
	s := SnapshotAtJulian(jd)

	want := time.Date(2024, time.April, 23, 23, 49, 0, 0, time.UTC)
	if d := s.Time.Sub(want); d < -time.Millisecond || d > time.Millisecond {
		t.Errorf("Time = %v, want ~%v", s.Time, want)
	}

	fromTime := SnapshotAt(want)
	if math.Abs(s.Phase-fromTime.Phase) > 1e-9 {
		t.Errorf("Phase via Julian = %v, via time = %v", s.Phase, fromTime.Phase)
	}
	if s.ZodiacName != fromTime.ZodiacName || s.PhaseName != fromTime.PhaseName {
		t.Errorf("names differ: %s/%s vs %s/%s",
			s.PhaseName, s.ZodiacName, fromTime.PhaseName, fromTime.ZodiacName)
	}
}

func TestSeries(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	if got := Series(start, time.Hour, 0); got != nil {
		t.Errorf("Series(n=0) = %v, want nil", got)
	}
	if got := Series(start, time.Hour, -3); got != nil {
		t.Errorf("Series(n=-3) = %v, want nil", got)
	}

	snaps := Series(start, 6*time.Hour, 5)
	if len(snaps) != 5 {
		t.Fatalf("len(Series) = %d, want 5", len(snaps))
	}
	for i, s := range snaps {
		want := start.Add(time.Duration(i) * 6 * time.Hour)
		if !s.Time.Equal(want) {
			t.Errorf("snaps[%d].Time = %v, want %v", i, s.Time, want)
		}
		if s != SnapshotAt(want) {
			t.Errorf("snaps[%d] differs from SnapshotAt(%v)", i, want)
		}
	}
}

func TestDistanceKm(t *testing.T) {
	s := Snapshot{Distance: 60.4}
	if got, want := s.DistanceKm(), 60.4*EarthRadiusKm; got != want {
		t.Errorf("DistanceKm() = %v, want %v", got, want)
	}

	// The model's mean distance should land near the real mean of ~384,400 km.
	if km := s.DistanceKm(); math.Abs(km-384400) > 1000 {
		t.Errorf("mean distance %.0f km, want ~384400", km)
	}
}

func TestWaxing(t *testing.T) {
	tests := []struct {
		phase float64
		want  bool
	}{
		{0, true},
		{0.25, true},
		{0.4999, true},
		{0.5, false},
		{0.75, false},
	}
	for _, tt := range tests {
		if got := (Snapshot{Phase: tt.phase}).Waxing(); got != tt.want {
			t.Errorf("Waxing() at phase %v = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestSnapshotAt_Debug(t *testing.T) {
	tm := time.Date(2025, time.May, 12, 16, 56, 0, 0, time.UTC)
	s := SnapshotAt(tm)

	t.Logf("Time      : %v", s.Time)
	t.Logf("JD        : %.6f", s.JulianDate)
	t.Logf("Phase     : %.4f (%s)", s.Phase, s.PhaseName)
	t.Logf("Age       : %.2f days", s.Age)
	t.Logf("Fraction  : %.3f", s.Fraction)
	t.Logf("Distance  : %.2f Re (%.0f km)", s.Distance, s.DistanceKm())
	t.Logf("Latitude  : %.2f°", s.Latitude)
	t.Logf("Longitude : %.2f° (%s)", s.Longitude, s.ZodiacName)
}
