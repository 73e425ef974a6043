package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/thurmanmarka/moonglide"
)

func main() {
	log.SetFlags(0)

	// No args or a leading flag means the default "phase" mode.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runPhase(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "phase":
		runPhase(os.Args[2:])
	case "table":
		runTable(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `moonglide – where the Moon is in its cycles

Usage:
  moonglide [phase] [flags]    # one snapshot (default mode)
  moonglide table [flags]      # snapshots at regular steps
  moonglide watch [flags]      # print a snapshot on a cron schedule

Run "moonglide <subcommand> -h" for the flags of each mode.
The default time zone is UTC, or $%s when set.
`, envTZ)
}

// ---------------------
// Phase (default) mode
// ---------------------

func runPhase(args []string) {
	fs := flag.NewFlagSet("phase", flag.ExitOnError)

	tzName := fs.String("tz", defaultTZ(), "IANA time zone name (e.g. America/Phoenix)")
	timeStr := fs.String("time", "", "time in RFC3339, 'YYYY-MM-DDTHH:MM', 'YYYY-MM-DD HH:MM' or 'YYYY-MM-DD' (defaults to now)")
	jsonOut := fs.Bool("json", false, "output result as JSON")
	colorMode := fs.String("color", "auto", "styled output: auto, always or never")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: moonglide [phase] [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	loc := mustLoadLocation(*tzName)

	t := time.Now().In(loc)
	if *timeStr != "" {
		var err error
		t, err = parseTime(*timeStr, loc)
		if err != nil {
			log.Fatalf("could not parse -time: %v", err)
		}
	}

	snap := moonglide.SnapshotAt(t)

	if *jsonOut {
		if err := writeJSON(os.Stdout, toJSON(snap, loc)); err != nil {
			log.Fatalf("failed to encode JSON: %v", err)
		}
		return
	}

	r := mustRenderer(*colorMode)
	writeHuman(os.Stdout, r, snap, loc)
}

// ---------------------
// Table subcommand
// ---------------------

func runTable(args []string) {
	fs := flag.NewFlagSet("table", flag.ExitOnError)

	tzName := fs.String("tz", defaultTZ(), "IANA time zone name (e.g. America/Phoenix)")
	startStr := fs.String("start", "", "first sample, same formats as phase -time (defaults to today 00:00)")
	days := fs.Int("days", 30, "number of days to cover")
	step := fs.Duration("step", 24*time.Hour, "time between samples (e.g. 6h, 24h)")
	jsonOut := fs.Bool("json", false, "output result as JSON")
	colorMode := fs.String("color", "auto", "styled output: auto, always or never")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: moonglide table [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	if *step <= 0 {
		log.Fatalf("-step must be positive, got %v", *step)
	}
	if *days <= 0 {
		log.Fatalf("-days must be positive, got %d", *days)
	}

	loc := mustLoadLocation(*tzName)

	var start time.Time
	if *startStr == "" {
		now := time.Now().In(loc)
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		var err error
		start, err = parseTime(*startStr, loc)
		if err != nil {
			log.Fatalf("could not parse -start: %v", err)
		}
	}

	n := sampleCount(time.Duration(*days)*24*time.Hour, *step)
	snaps := moonglide.Series(start, *step, n)

	if *jsonOut {
		out := make([]jsonSnapshot, len(snaps))
		for i, s := range snaps {
			out[i] = toJSON(s, loc)
		}
		if err := writeJSON(os.Stdout, out); err != nil {
			log.Fatalf("failed to encode JSON: %v", err)
		}
		return
	}

	r := mustRenderer(*colorMode)
	writeTable(os.Stdout, r, snaps, loc)
}

// sampleCount returns how many samples of the given step fit in span,
// counting the first one at offset zero.
func sampleCount(span, step time.Duration) int {
	if step <= 0 || span <= 0 {
		return 0
	}
	return int(span / step)
}

// ---------------------
// Watch subcommand
// ---------------------

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	tzName := fs.String("tz", defaultTZ(), "IANA time zone name, also used to evaluate -cron")
	cronExpr := fs.String("cron", "0 * * * *", "standard 5-field cron expression")
	now := fs.Bool("now", false, "also print a snapshot immediately on start")
	jsonOut := fs.Bool("json", false, "output one JSON object per tick")
	colorMode := fs.String("color", "auto", "styled output: auto, always or never")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: moonglide watch [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	loc := mustLoadLocation(*tzName)
	r := mustRenderer(*colorMode)

	emit := func() {
		snap := moonglide.SnapshotAt(time.Now())
		if *jsonOut {
			if err := writeJSON(os.Stdout, toJSON(snap, loc)); err != nil {
				log.Printf("failed to encode JSON: %v", err)
			}
			return
		}
		writeHuman(os.Stdout, r, snap, loc)
		fmt.Println()
	}

	if *now {
		emit()
	}

	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()

	if _, err := s.Cron(*cronExpr).Do(emit); err != nil {
		log.Fatalf("invalid -cron %q: %v", *cronExpr, err)
	}

	s.StartAsync()
	_, next := s.NextRun()
	log.Printf("watching with cron %q in %s, next run %s", *cronExpr, loc, next.Format(time.RFC3339))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	s.Stop()
}

// ---------------------
// Shared helpers
// ---------------------

// envTZ overrides the default -tz of every subcommand.
const envTZ = "MOONGLIDE_TZ"

func defaultTZ() string {
	return getEnv(envTZ, "UTC")
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", name, err)
	}
	return loc
}

func mustRenderer(mode string) *renderer {
	r, err := newRenderer(os.Stdout, mode)
	if err != nil {
		log.Fatalf("invalid -color: %v", err)
	}
	return r
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime tries each of timeLayouts in turn. Layouts without an offset are
// interpreted in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("%q matches none of the supported layouts: %w", s, lastErr)
}
