// Package report builds exportable summaries of solar events and writes
// them as JSON or text tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
	"github.com/litescript/ls-solar/internal/crosscheck"
	"github.com/litescript/ls-solar/internal/newyear"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"

	// traceSteps samples the altitude every 15 minutes.
	traceSteps = 96
)

// LocationExport is a JSON-friendly location.
type LocationExport struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation_m"`
	Zone      float64 `json:"zone_hours"`
}

func exportLocation(loc astro.Location) LocationExport {
	return LocationExport{
		Name:      loc.Name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Elevation: loc.Elevation,
		Zone:      loc.Zone,
	}
}

// EventExport is one solar event of the day.
type EventExport struct {
	Name    string    `json:"name"`
	Valid   bool      `json:"valid"`
	Local   string    `json:"local,omitempty"` // Standard time, HH:MM:SS
	UTC     time.Time `json:"utc"`
	Azimuth float64   `json:"azimuth,omitempty"`
}

// DayReport summarizes the Sun on one date at one location.
type DayReport struct {
	GeneratedAt    time.Time              `json:"generated_at"`
	Date           string                 `json:"date"`
	RD             int                    `json:"rd"`
	Location       LocationExport         `json:"location"`
	Twilight       string                 `json:"twilight"`
	EphemerisEra   string                 `json:"ephemeris_era"`
	DeltaT         float64                `json:"delta_t_seconds"`
	EquationOfTime float64                `json:"equation_of_time_minutes"`
	SolarLongitude float64                `json:"solar_longitude"`
	Declination    float64                `json:"declination"`
	DayLength      float64                `json:"day_length_hours"`
	MaxAltitude    float64                `json:"max_altitude"`
	TraceDrift     float64                `json:"trace_drift_seconds"` // worst sampled-trace vs solver rise/set gap
	Events         []EventExport          `json:"events"`
	Trace          []astro.AltitudeSample `json:"-"`
}

func exportEvent(name string, ev astro.Event, loc astro.Location) EventExport {
	if !ev.Valid {
		return EventExport{Name: name}
	}
	u := astro.UniversalFromStandard(ev.Time, loc)
	return EventExport{
		Name:    name,
		Valid:   true,
		Local:   ev.Time.Time().Format(clockLayout),
		UTC:     u.Time(),
		Azimuth: astro.SolarAzimuth(u, loc),
	}
}

// BuildDay computes the report for RD date at loc.
func BuildDay(date int, loc astro.Location, tw astro.Twilight, generatedAt time.Time) *DayReport {
	ev := astro.ComputeDayEvents(date, loc, tw)
	noonU := astro.UniversalFromStandard(ev.Noon, loc)
	pos := astro.SunPosition(noonU, loc)
	year := calendar.GregorianYearFromFixed(date)

	r := &DayReport{
		GeneratedAt:    generatedAt,
		Date:           calendar.DateOf(date).Format(dateLayout),
		RD:             date,
		Location:       exportLocation(loc),
		Twilight:       tw.String(),
		EphemerisEra:   astro.EphemerisEraOf(year),
		DeltaT:         astro.EphemerisCorrection(noonU) * 86400,
		EquationOfTime: astro.EquationOfTime(noonU) * 1440,
		SolarLongitude: pos.LongitudeDeg,
		Declination:    pos.DecDeg,
		DayLength:      ev.DayLength(),
		Trace:          astro.AltitudeTrace(date, loc, traceSteps),
	}

	r.MaxAltitude = pos.ElDeg
	if _, el, err := astro.Culmination(r.Trace); err == nil && el > r.MaxAltitude {
		r.MaxAltitude = el
	}

	r.TraceDrift = traceDrift(r.Trace, ev, loc)

	r.Events = []EventExport{
		exportEvent(tw.String()+" dawn", ev.Dawn, loc),
		exportEvent("sunrise", ev.Sunrise, loc),
		exportEvent("noon", astro.Event{Time: ev.Noon, Valid: true}, loc),
		exportEvent("sunset", ev.Sunset, loc),
		exportEvent(tw.String()+" dusk", ev.Dusk, loc),
	}
	return r
}

// traceDrift compares the horizon crossings interpolated from the altitude
// trace with the solved sunrise and sunset, in seconds. Events missing from
// either side are skipped.
func traceDrift(trace []astro.AltitudeSample, ev astro.DayEvents, loc astro.Location) float64 {
	threshold := -(astro.Refraction(0, loc) + 16.0/60)
	rise, set, riseOK, setOK := astro.HorizonCrossings(trace, threshold)

	drift := 0.0
	if riseOK && ev.Sunrise.Valid {
		drift = math.Max(drift, math.Abs(float64(rise-ev.Sunrise.Time))*86400)
	}
	if setOK && ev.Sunset.Valid {
		drift = math.Max(drift, math.Abs(float64(set-ev.Sunset.Time))*86400)
	}
	return drift
}

// WriteJSON writes the report as indented JSON.
func (r *DayReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteSummaryTable writes a text table of the day's events.
func WriteSummaryTable(w io.Writer, r *DayReport) {
	fmt.Fprintf(w, "Sun @ %s on %s (UTC%+g)\n", truncateStr(r.Location.Name, 24), r.Date, r.Location.Zone)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	fmt.Fprintf(w, "%-20s %-10s %-22s %-7s\n", "Event", "Local", "UTC", "Azim")
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for _, e := range r.Events {
		if !e.Valid {
			fmt.Fprintf(w, "%-20s %-10s %-22s %-7s\n", truncateStr(e.Name, 20), "--", "no event", "--")
			continue
		}
		fmt.Fprintf(w, "%-20s %-10s %-22s %6.1f°\n",
			truncateStr(e.Name, 20), e.Local, e.UTC.Format(time.RFC3339), e.Azimuth)
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Day length %.2f h · max altitude %.1f° · λ %.3f° · δ %+.3f°\n",
		r.DayLength, r.MaxAltitude, r.SolarLongitude, r.Declination)
	fmt.Fprintf(w, "Equation of time %+.2f min · ΔT %.1f s (%s)\n", r.EquationOfTime, r.DeltaT, r.EphemerisEra)
}

// SeasonExport is one equinox or solstice.
type SeasonExport struct {
	Name      string    `json:"name"`
	Longitude float64   `json:"longitude"`
	UTC       time.Time `json:"utc"`
	Local     string    `json:"local"` // Standard time at the report location
}

// SeasonReport lists the year's equinoxes and solstices and the
// astronomical new years anchored on the March equinox.
type SeasonReport struct {
	Year           int            `json:"year"`
	Location       LocationExport `json:"location"`
	Seasons        []SeasonExport `json:"seasons"`
	PersianNewYear string         `json:"persian_new_year"`
	BahaiNewYear   string         `json:"bahai_new_year"`
}

var seasons = []struct {
	name   string
	lambda float64
}{
	{"March equinox", astro.Spring},
	{"June solstice", astro.Summer},
	{"September equinox", astro.Autumn},
	{"December solstice", astro.Winter},
}

// BuildSeasons computes the season report for a Gregorian year, with local
// times at loc.
func BuildSeasons(year int, loc astro.Location) (*SeasonReport, error) {
	r := &SeasonReport{
		Year:           year,
		Location:       exportLocation(loc),
		PersianNewYear: calendar.DateOf(newyear.PersianNewYear(year)).Format(dateLayout),
		BahaiNewYear:   calendar.DateOf(newyear.BahaiNewYear(year)).Format(dateLayout),
	}
	for _, s := range seasons {
		m, err := astro.Season(year, s.lambda)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", s.name, year, err)
		}
		local := astro.StandardFromUniversal(m, loc)
		r.Seasons = append(r.Seasons, SeasonExport{
			Name:      s.name,
			Longitude: s.lambda,
			UTC:       m.Time(),
			Local:     local.Time().Format(dateLayout + " " + clockLayout),
		})
	}
	return r, nil
}

// WriteJSON writes the report as indented JSON.
func (r *SeasonReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteSeasons writes a text table of the season report.
func WriteSeasons(w io.Writer, r *SeasonReport) {
	fmt.Fprintf(w, "Seasons %d @ %s\n", r.Year, truncateStr(r.Location.Name, 24))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, s := range r.Seasons {
		fmt.Fprintf(w, "%-18s %5.0f°  %-20s %s\n", s.Name, s.Longitude, s.UTC.Format("2006-01-02 15:04:05Z"), s.Local)
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Nowruz (Persian)   %s\n", r.PersianNewYear)
	fmt.Fprintf(w, "Naw-Rúz (Bahá'í)   %s\n", r.BahaiNewYear)
}

// WriteComparisons writes crosscheck results as a text table. It returns
// the number of failed comparisons.
func WriteComparisons(w io.Writer, title string, comps []crosscheck.Comparison) int {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 76))
	fmt.Fprintf(w, "%-18s %-21s %-21s %-10s %s\n", "Check", "Ours (UTC)", "Reference (UTC)", "Diff", "")

	failed := 0
	for _, c := range comps {
		status := "ok"
		if !c.OK {
			status = "FAIL"
			failed++
		}
		if c.Skipped {
			fmt.Fprintf(w, "%-18s %-21s %-21s %-10s %s\n", c.Name, formatUTC(c.Ours), formatUTC(c.Reference), "--", status)
			continue
		}
		fmt.Fprintf(w, "%-18s %-21s %-21s %-10s %s\n",
			c.Name, formatUTC(c.Ours), formatUTC(c.Reference), c.Diff.Round(time.Second), status)
	}
	return failed
}

func formatUTC(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
