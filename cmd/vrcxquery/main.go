package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/M1XZG/vrcx-query-tools/internal/config"
	"github.com/M1XZG/vrcx-query-tools/internal/report"
	"github.com/M1XZG/vrcx-query-tools/internal/store"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = ""
)

// Exit codes: 0 success (including valid-but-empty queries), 1 store
// failure, 2 invalid arguments.
const (
	exitOK    = 0
	exitStore = 1
	exitUsage = 2
)

type options struct {
	date      string
	start     string
	end       string
	avgHour   bool
	avgDOW    bool
	weekly    bool
	unique    bool
	world     string
	worldName string
	instance  string

	listWorlds    bool
	listInstances bool
	locations     bool

	export      bool
	showVersion bool
}

func main() {
	today := time.Now().Format(report.DateFormat)
	os.Exit(run(os.Args[1:], today, os.Stdout, os.Stderr))
}

func run(args []string, today string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vrcxquery", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	var opts options
	fs.StringVar(&opts.date, "date", "", "Single date to report (YYYY-MM-DD, default today)")
	fs.StringVar(&opts.start, "start", "", "Range start date (YYYY-MM-DD)")
	fs.StringVar(&opts.end, "end", "", "Range end date (YYYY-MM-DD)")
	fs.BoolVar(&opts.avgHour, "avg-hour", false, "Average attendance per hour across the range")
	fs.BoolVar(&opts.avgDOW, "avg-dow", false, "Average attendance per day of week across the range")
	fs.BoolVar(&opts.weekly, "weekly", false, "Weekly breakdown with daily totals")
	fs.BoolVar(&opts.unique, "unique", false, "Count each person once per day")
	fs.StringVar(&opts.world, "world", "", "Filter to one world id (wrld_...)")
	fs.StringVar(&opts.worldName, "world-name", "", "Label to use for the filtered world in output")
	fs.StringVar(&opts.instance, "instance", "", "Filter to one exact instance id (wrld_...:N~...)")
	fs.BoolVar(&opts.listWorlds, "list-worlds", false, "List worlds seen in the range")
	fs.BoolVar(&opts.listInstances, "list-instances", false, "List instances of -world seen in the range")
	fs.BoolVar(&opts.locations, "locations", false, "List your own location history with durations")
	fs.BoolVar(&opts.export, "export", false, "Also write CSV and XLSX files")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "vrcxquery %s (commit %s, built %s)\n",
			version, commit, buildDate)
		return exitOK
	}

	start, end, err := resolveRange(opts, today)
	if err != nil {
		fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
		return exitUsage
	}
	if err := validate(opts); err != nil {
		fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
		return exitUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "vrcxquery: loading config: %v\n", err)
		return exitStore
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		dev, err := zap.NewDevelopment()
		if err == nil {
			logger = dev
		}
	}
	defer logger.Sync()

	st, err := store.Open(cfg.DBPath, store.Options{})
	if err != nil {
		fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
		var unavailable *store.UnavailableError
		if errors.As(err, &unavailable) {
			fmt.Fprintln(stderr,
				"  set -db or VRCX_DATABASE_PATH to your VRCX.sqlite3")
		}
		return exitStore
	}
	defer st.Close()
	logger.Info("store opened",
		zap.String("path", st.Path()),
		zap.String("start", start),
		zap.String("end", end),
	)

	ctx := context.Background()
	switch {
	case opts.listWorlds:
		return runListWorlds(ctx, st, start, end, stdout, stderr)
	case opts.listInstances:
		return runListInstances(ctx, st, opts.world, start, end, stdout, stderr)
	case opts.locations:
		return runLocations(ctx, st, start, end, stdout, stderr)
	default:
		return runReport(ctx, logger, cfg, st, opts, start, end, stdout, stderr)
	}
}

// resolveRange turns -date / -start / -end into an inclusive [start,
// end] range, defaulting to today.
func resolveRange(opts options, today string) (string, string, error) {
	hasRange := opts.start != "" || opts.end != ""
	if opts.date != "" && hasRange {
		return "", "", fmt.Errorf("-date conflicts with -start/-end; use one or the other")
	}
	if hasRange {
		if opts.start == "" || opts.end == "" {
			return "", "", fmt.Errorf("-start and -end must be given together")
		}
		startT, err := time.Parse(report.DateFormat, opts.start)
		if err != nil {
			return "", "", fmt.Errorf("-start %q is not a valid date (YYYY-MM-DD)", opts.start)
		}
		endT, err := time.Parse(report.DateFormat, opts.end)
		if err != nil {
			return "", "", fmt.Errorf("-end %q is not a valid date (YYYY-MM-DD)", opts.end)
		}
		if endT.Before(startT) {
			return "", "", fmt.Errorf("-end %s is before -start %s", opts.end, opts.start)
		}
		return opts.start, opts.end, nil
	}
	date := opts.date
	if date == "" {
		date = today
	}
	if _, err := time.Parse(report.DateFormat, date); err != nil {
		return "", "", fmt.Errorf("-date %q is not a valid date (YYYY-MM-DD)", date)
	}
	return date, date, nil
}

// validate rejects argument combinations before any store access.
func validate(opts options) error {
	modes := 0
	for _, on := range []bool{opts.avgHour, opts.avgDOW, opts.weekly} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("-avg-hour, -avg-dow, and -weekly are mutually exclusive")
	}

	if opts.instance != "" {
		loc, ok := report.ParseLocation(opts.instance)
		if !ok {
			return fmt.Errorf(
				"-instance %q does not name a world instance (want wrld_<id>:<n>...)",
				opts.instance)
		}
		if opts.world != "" && loc.WorldID != opts.world {
			return fmt.Errorf(
				"-instance %q belongs to %s, not -world %s",
				opts.instance, loc.WorldID, opts.world)
		}
	}
	if opts.listInstances && opts.world == "" {
		return fmt.Errorf("-list-instances requires -world")
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `vrcxquery %s - attendance reports from a VRCX database

Reads the VRCX gamelog read-only and aggregates join/leave events into
hourly, daily, day-of-week, and weekly attendance tables, with CSV,
XLSX, and PNG chart exports.

Usage:
  vrcxquery [flags]

Date selection:
  -date YYYY-MM-DD    Single date (default today)
  -start YYYY-MM-DD   Range start (use with -end)
  -end YYYY-MM-DD     Range end, inclusive

Report modes (default: hourly table):
  -avg-hour           Average per hour across the range
  -avg-dow            Average per day of week across the range
  -weekly             Weekly breakdown with daily totals
  -unique             Count each person once per day

Filters:
  -world ID           Only events in this world (wrld_...)
  -world-name NAME    Label for the filtered world in output
  -instance ID        Only events in this exact instance

Listings:
  -list-worlds        Worlds seen in the range
  -list-instances     Instances of -world seen in the range
  -locations          Your own location history with durations

Output:
  -export             Also write CSV and XLSX (a PNG chart is always written)
  -out DIR            Output directory (default vrcx_exports)
  -db PATH            Database path (default per-OS VRCX data dir)
  -verbose            Diagnostic logging
  -version            Show version information

Environment variables:
  VRCX_DATABASE_PATH  Full path to VRCX.sqlite3
  VRCX_DATA_DIR       VRCX data directory
  VRCX_OUTPUT_DIR     Export directory
`, version)
}
