// Command ls-solar computes sunrise, sunset, twilight and season moments and
// shows them in a terminal UI, as text or JSON, or drives solar schedules.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
	"github.com/litescript/ls-solar/internal/config"
	"github.com/litescript/ls-solar/internal/crosscheck"
	"github.com/litescript/ls-solar/internal/logging"
	"github.com/litescript/ls-solar/internal/newyear"
	"github.com/litescript/ls-solar/internal/report"
	"github.com/litescript/ls-solar/internal/schedule"
	"github.com/litescript/ls-solar/internal/state"
	"github.com/litescript/ls-solar/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode    bool
	snapshotPath   string
	seasonsMode    bool
	newYearMode    bool
	crosscheckMode bool
	watchMode      bool
	beepMode       bool
	extraSchedule  string
)

const dateLayout = "2006-01-02"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dateFlag := flag.String("date", "", "Date to compute (YYYY-MM-DD, default today)")
	locationName := flag.String("location", "", "Location name (preset or from config)")
	twilightFlag := flag.String("twilight", "", "Twilight depression (civil, nautical, astronomical)")
	lat := flag.Float64("lat", 0, "Custom latitude in degrees, north positive")
	lon := flag.Float64("lon", 0, "Custom longitude in degrees, east positive")
	elev := flag.Float64("elev", 0, "Custom elevation in meters")
	zone := flag.Float64("zone", 0, "Custom standard time zone in hours from UTC")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON report to file (use - for stdout)")
	flag.BoolVar(&seasonsMode, "seasons", false, "Print equinoxes and solstices for the year")
	flag.BoolVar(&newYearMode, "newyear", false, "Print Persian and Bahá'í new year dates")
	flag.BoolVar(&crosscheckMode, "crosscheck", false, "Compare against reference ephemerides")
	flag.BoolVar(&watchMode, "watch", false, "Run configured schedules until interrupted")
	flag.BoolVar(&beepMode, "beep", false, "Beep when a schedule fires (TTY only)")
	flag.StringVar(&extraSchedule, "schedule", "", "Additional schedule spec, e.g. \"@sunset -30m\"")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Level()
	if *logLevel != "" {
		level = logging.ParseLevel(*logLevel)
	}
	logger := logging.New(level)
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.ResolveLocation()
	if *locationName != "" {
		loc, err = cfg.Lookup(*locationName)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSet("lat") || flagSet("lon") {
		loc = astro.Location{Name: "custom", Latitude: *lat, Longitude: *lon, Elevation: *elev, Zone: *zone}
	}

	tw := cfg.TwilightKind()
	if *twilightFlag != "" {
		if tw, err = astro.ParseTwilight(*twilightFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	date, err := parseDate(*dateFlag, loc, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	entries := cfg.Entries()
	if extraSchedule != "" {
		entries = append(entries, schedule.Entry{Spec: extraSchedule, Label: extraSchedule})
	}

	logger.Debug("location %s, date %s, twilight %s", loc, calendar.DateOf(date).Format(dateLayout), tw)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stateCfg := state.DefaultConfig()
	stateCfg.Location = loc
	stateCfg.Twilight = tw
	stateMgr := state.NewManager(stateCfg)

	if watchMode {
		if err := runWatch(ctx, stateMgr, entries, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Headless mode: no TUI. Output that is not a terminal gets the summary.
	headless := summaryMode || snapshotPath != "" || seasonsMode || newYearMode || crosscheckMode
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		summaryMode, headless = true, true
	}
	if headless {
		code := runHeadless(os.Stdout, stateMgr, date, logger)
		if code != 0 {
			os.Exit(code)
		}
		return
	}

	if err := runTUI(ctx, stateMgr, entries, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// parseDate returns the RD date for s, or today in standard time at loc.
func parseDate(s string, loc astro.Location, now time.Time) (int, error) {
	if s == "" {
		return astro.StandardFromUniversal(calendar.MomentFromTime(now), loc).Fixed(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", s, err)
	}
	return calendar.FixedFromGregorian(t.Year(), int(t.Month()), t.Day()), nil
}

// runHeadless writes every requested report to w and returns the exit code.
func runHeadless(w io.Writer, stateMgr *state.Manager, date int, logger *logging.Logger) int {
	loc := stateMgr.Location()
	year := calendar.GregorianYearFromFixed(date)
	code := 0

	day := stateMgr.Day(date)
	if summaryMode {
		report.WriteSummaryTable(w, day)
	}

	var seasons *report.SeasonReport
	if seasonsMode {
		var err error
		seasons, err = report.BuildSeasons(year, loc)
		if err != nil {
			logger.Error("seasons %d: %v", year, err)
			return 1
		}
		if summaryMode {
			fmt.Fprintln(w)
		}
		report.WriteSeasons(w, seasons)
	}

	if newYearMode {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Persian new year on or before %s: %s\n",
			calendar.DateOf(date).Format(dateLayout), calendar.DateOf(newyear.PersianNewYearOnOrBefore(date)).Format(dateLayout))
		fmt.Fprintf(w, "Bahá'í new year on or before %s:  %s\n",
			calendar.DateOf(date).Format(dateLayout), calendar.DateOf(newyear.BahaiNewYearOnOrBefore(date)).Format(dateLayout))
	}

	if crosscheckMode {
		fmt.Fprintln(w)
		failed := report.WriteComparisons(w, "Events vs NOAA (go-sunrise)",
			crosscheck.Events(date, loc, crosscheck.DefaultEventTolerance))
		fmt.Fprintln(w)
		failed += report.WriteComparisons(w, "Seasons vs Meeus",
			crosscheck.Seasons(year, crosscheck.DefaultSeasonTolerance))
		if failed > 0 {
			logger.Warn("%d crosscheck comparisons outside tolerance", failed)
			code = 1
		}
	}

	if snapshotPath != "" {
		write := day.WriteJSON
		if seasons != nil {
			write = seasons.WriteJSON
		}
		if err := writeSnapshot(snapshotPath, write); err != nil {
			logger.Error("%v", err)
			return 1
		}
	}
	return code
}

// writeSnapshot writes a JSON export to path, or stdout for "-".
func writeSnapshot(path string, write func(io.Writer) error) error {
	if path == "-" {
		if err := write(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

// runWatch runs the schedules until ctx is cancelled.
func runWatch(ctx context.Context, stateMgr *state.Manager, entries []schedule.Entry, logger *logging.Logger) error {
	if len(entries) == 0 {
		return fmt.Errorf("no schedules configured (use -schedule or schedules: in the config file)")
	}
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	runner, err := schedule.NewRunner(logger, stateMgr.Location(), stateMgr.Twilight(), entries,
		func(e schedule.Entry, at time.Time) {
			stateMgr.RecordFire(e.Label, e.Spec, at)
			fmt.Printf("%s  %s (%s)\n", at.Local().Format(time.RFC3339), e.Label, e.Spec)
			if beepMode && isTTY {
				fmt.Print("\a")
			}
		})
	if err != nil {
		return err
	}
	runner.Run(ctx)
	logger.Debug("watch stopped, %d firings", len(stateMgr.RecentEvents(0)))
	return nil
}

// runTUI runs the interactive UI, with any schedules firing in the
// background.
func runTUI(ctx context.Context, stateMgr *state.Manager, entries []schedule.Entry, logger *logging.Logger) error {
	// The TUI owns the terminal.
	logger.SetOutput(io.Discard)

	p := tea.NewProgram(ui.New(stateMgr), tea.WithAltScreen(), tea.WithContext(ctx))

	if len(entries) > 0 {
		runner, err := schedule.NewRunner(logger, stateMgr.Location(), stateMgr.Twilight(), entries,
			func(e schedule.Entry, at time.Time) {
				stateMgr.RecordFire(e.Label, e.Spec, at)
				p.Send(ui.FiredMsg{Label: e.Label, At: at})
			})
		if err != nil {
			return err
		}
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go runner.Run(runCtx)
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
