package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/thurmanmarka/moonglide"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

var errUnknownEvent = errors.New("unknown event")

// event is a principal lunar phase as listed in reference tables.
type event struct {
	phase float64 // nominal synodic phase
	name  string  // phase name the model should report at that instant
}

var events = map[string]event{
	"new":   {0, "New"},
	"first": {0.25, "First Quarter"},
	"full":  {0.5, "Full"},
	"last":  {0.75, "Last Quarter"},
}

func parseEvent(s string) (event, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "new moon":
		key = "new"
	case "first quarter":
		key = "first"
	case "full moon":
		key = "full"
	case "last quarter", "third quarter":
		key = "last"
	}
	ev, ok := events[key]
	if !ok {
		return event{}, fmt.Errorf("%w %q (use new, first, full or last)", errUnknownEvent, s)
	}
	return ev, nil
}

// phaseErrorHours returns how far the model's phase is from the nominal one,
// in hours. Positive means the model runs ahead of the reference. The
// difference is wrapped to half a cycle either way so a model phase of 0.99
// against a new moon counts as slightly behind, not almost a month ahead.
func phaseErrorHours(got, want float64) float64 {
	d := got - want
	d -= math.Floor(d + 0.5)
	return d * moonglide.SynodicPeriod * 24
}

// CSV format:
//
// date,time,event
// 2025-01-29,12:36,new
// 2025-02-05,08:02,first
// 2025-02-12,13:53,full
//
// - date is YYYY-MM-DD
// - time is HH:MM (or HH:MM:SS), 24-hour clock, in the zone given by -tz
// - event is new, first, full or last ("new moon", "last quarter" etc. also work)
func main() {
	log.SetFlags(0)

	var (
		tzName  = flag.String("tz", "UTC", "IANA time zone of the reference times (e.g. America/Phoenix)")
		refCSV  = flag.String("refcsv", "", "path to reference CSV file (date,time,event)")
		verbose = flag.Bool("verbose", false, "print per-row errors instead of only the summary")
		outCSV  = flag.String("outcsv", "", "optional path to write per-row results")
	)

	flag.Parse()

	if *refCSV == "" {
		log.Fatalf("missing -refcsv (path to reference CSV)")
	}

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v", *tzName, err)
	}

	var outWriter *csv.Writer

	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{
			"date",
			"time",
			"event",
			"phase",
			"phase_err_hours",
			"phase_name",
			"name_match",
			"fraction",
			"distance",
			"longitude",
			"zodiac",
		}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	f, err := os.Open(*refCSV)
	if err != nil {
		log.Fatalf("failed to open refcsv %q: %v", *refCSV, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable, we validate

	records, err := r.ReadAll()
	if err != nil {
		log.Fatalf("failed to read CSV: %v", err)
	}

	if len(records) == 0 {
		log.Fatalf("empty CSV file")
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		startIdx = 1
	}

	var (
		absStats    stats
		signedStats stats
		mismatches  int
		skipped     int
		totalRows   int
	)
	perEvent := make(map[string]*stats)

	for i := startIdx; i < len(records); i++ {
		row := records[i]
		totalRows++

		if len(row) < 3 {
			log.Printf("row %d: expected 3 columns (date,time,event), got %d, skipping", i+1, len(row))
			skipped++
			continue
		}
		dateStr := strings.TrimSpace(row[0])
		timeStr := strings.TrimSpace(row[1])

		ref, err := parseLocalDateTime(dateStr, timeStr, loc)
		if err != nil {
			log.Printf("row %d: %v, skipping", i+1, err)
			skipped++
			continue
		}

		ev, err := parseEvent(row[2])
		if err != nil {
			log.Printf("row %d: %v, skipping", i+1, err)
			skipped++
			continue
		}

		snap := moonglide.SnapshotAt(ref)

		errHours := phaseErrorHours(snap.Phase, ev.phase)
		absStats.add(math.Abs(errHours))
		signedStats.add(errHours)

		es, ok := perEvent[ev.name]
		if !ok {
			es = &stats{}
			perEvent[ev.name] = es
		}
		es.add(math.Abs(errHours))

		nameMatch := snap.PhaseName == ev.name
		if !nameMatch {
			mismatches++
		}

		if *verbose {
			fmt.Printf("%s %s %-13s: phase=%.4f err=%+.2f h name=%s (%s)\n",
				dateStr, timeStr, ev.name, snap.Phase, errHours, snap.PhaseName, matchWord(nameMatch))
		}

		if outWriter != nil {
			rec := []string{
				dateStr,
				timeStr,
				ev.name,
				fmt.Sprintf("%.6f", snap.Phase),
				fmt.Sprintf("%.3f", errHours),
				snap.PhaseName,
				fmt.Sprintf("%t", nameMatch),
				fmt.Sprintf("%.6f", snap.Fraction),
				fmt.Sprintf("%.4f", snap.Distance),
				fmt.Sprintf("%.4f", snap.Longitude),
				snap.ZodiacName,
			}
			if err := outWriter.Write(rec); err != nil {
				log.Printf("row %d: failed to write outcsv: %v", i+1, err)
			}
		}
	}

	fmt.Println("=== moonglide profiler summary ===")
	fmt.Printf("TZ:     %s\n", loc.String())
	fmt.Printf("Rows:   %d (processed), %d skipped\n", totalRows-skipped, skipped)

	if absStats.count == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	fmt.Println("\nPhase error (hours, absolute):")
	fmt.Printf("  count: %d\n", absStats.count)
	fmt.Printf("  min:   %.3f\n", absStats.min)
	fmt.Printf("  max:   %.3f\n", absStats.max)
	fmt.Printf("  avg:   %.3f\n", absStats.avg())

	fmt.Println("\nPhase error (hours, model - ref):")
	fmt.Printf("  min:   %.3f\n", signedStats.min)
	fmt.Printf("  max:   %.3f\n", signedStats.max)
	fmt.Printf("  mean:  %.3f\n", signedStats.avg())

	fmt.Println("\nBy event (hours, absolute avg):")
	for _, key := range []string{"new", "first", "full", "last"} {
		name := events[key].name
		if es, ok := perEvent[name]; ok {
			fmt.Printf("  %-13s %3d rows  avg %.3f  max %.3f\n", name+":", es.count, es.avg(), es.max)
		}
	}

	fmt.Printf("\nPhase name mismatches: %d of %d\n", mismatches, absStats.count)
}

func matchWord(ok bool) string {
	if ok {
		return "match"
	}
	return "MISMATCH"
}

func parseLocalDateTime(dateStr, hhmm string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	// Expect HH:MM (optionally HH:MM:SS).
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}

	parsed, err := time.ParseInLocation(layout, hhmm, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	// Combine parsed clock time with date.
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
}
