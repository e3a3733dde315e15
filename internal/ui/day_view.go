package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
	"github.com/litescript/ls-solar/internal/report"
)

// Shared styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Altitude range covered by the sparkline blocks, degrees.
const (
	sparkMinAltitude = -18.0
	sparkMaxAltitude = 90.0
)

// tierColors maps altitude tiers to sparkline colors.
var tierColors = map[astro.ElevationTier]lipgloss.Color{
	astro.ElevationNight:    lipgloss.Color("#1B2B4B"),
	astro.ElevationTwilight: lipgloss.Color("#7B2CBF"),
	astro.ElevationLow:      lipgloss.Color("#E84A27"),
	astro.ElevationMedium:   lipgloss.Color("#F59E0B"),
	astro.ElevationHigh:     lipgloss.Color("#FACC15"),
}

// DayViewModel shows the events and altitude curve of one day.
type DayViewModel struct {
	width  int
	height int
	report *report.DayReport
	loc    astro.Location
	now    time.Time
}

// NewDayViewModel creates a new day view model.
func NewDayViewModel() DayViewModel {
	return DayViewModel{}
}

// SetSize updates the view dimensions.
func (m DayViewModel) SetSize(width, height int) DayViewModel {
	m.width = width
	m.height = height
	return m
}

// SetReport replaces the displayed day.
func (m DayViewModel) SetReport(r *report.DayReport, loc astro.Location, now time.Time) DayViewModel {
	m.report = r
	m.loc = loc
	m.now = now
	return m
}

// SetNow updates the clock used for the "now" marker.
func (m DayViewModel) SetNow(now time.Time) DayViewModel {
	m.now = now
	return m
}

// View renders the day view.
func (m DayViewModel) View() string {
	if m.report == nil {
		return dimTextStyle.Render("  No data")
	}
	r := m.report

	var b strings.Builder
	title := fmt.Sprintf("Sun · %s · %s", m.loc, calendar.DateOf(r.RD).Format("Monday 2 January 2006"))
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-20s %-10s %-10s %8s", "Event", "Local", "UTC", "Azimuth")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, e := range r.Events {
		if !e.Valid {
			row := fmt.Sprintf(" %-20s %-10s %-10s %8s", truncate(e.Name, 20), "--", "no event", "--")
			b.WriteString(dimTextStyle.Render(row))
			b.WriteString("\n")
			continue
		}
		row := fmt.Sprintf(" %-20s %-10s %-10s %7.1f°",
			truncate(e.Name, 20), e.Local, e.UTC.UTC().Format("15:04:05"), e.Azimuth)
		b.WriteString(rowStyle.Render(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimTextStyle.Render(" Altitude "))
	b.WriteString(m.renderAltitudeSparkline())
	b.WriteString("\n")
	b.WriteString(dimTextStyle.Render("          " + hourAxis(SparklineWidth)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf(" Day length %.2f h · max altitude %.1f° · λ %.3f° · δ %+.3f°",
		r.DayLength, r.MaxAltitude, r.SolarLongitude, r.Declination)
	b.WriteString(rowStyle.Render(stats))
	b.WriteString("\n")
	clock := fmt.Sprintf(" Equation of time %+.2f min · ΔT %.1f s (%s)", r.EquationOfTime, r.DeltaT, r.EphemerisEra)
	b.WriteString(dimTextStyle.Render(clock))
	b.WriteString("\n")

	return b.String()
}

// renderAltitudeSparkline renders the altitude trace as a sparkline colored
// by elevation tier.
func (m DayViewModel) renderAltitudeSparkline() string {
	samples := resampleAltitude(m.report.Trace, SparklineWidth)
	if len(samples) == 0 {
		return dimTextStyle.Render("No altitude data")
	}

	var sb strings.Builder
	for _, el := range samples {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(tierColors[astro.GetElevationTier(el)]).
			Render(string(sparkBlock(el))))
	}

	if el, ok := m.currentAltitude(); ok {
		nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		sb.WriteString(nowStyle.Render(fmt.Sprintf(" now: %.0f°", el)))
	}
	return sb.String()
}

// currentAltitude returns the solar altitude now, if the displayed day is
// today at the location.
func (m DayViewModel) currentAltitude() (float64, bool) {
	if m.now.IsZero() {
		return 0, false
	}
	u := calendar.MomentFromTime(m.now)
	if astro.StandardFromUniversal(u, m.loc).Fixed() != m.report.RD {
		return 0, false
	}
	return astro.SolarAltitude(u, m.loc), true
}

// sparkBlock maps an altitude to a block character.
func sparkBlock(el float64) rune {
	t := (el - sparkMinAltitude) / (sparkMaxAltitude - sparkMinAltitude)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	idx := int(t * 7.0)
	if idx > 7 {
		idx = 7
	}
	return sparklineBlocks[idx]
}

// resampleAltitude averages samples into width buckets.
func resampleAltitude(samples []astro.AltitudeSample, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	samplesPerBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * samplesPerBucket)
		endIdx := int(float64(i+1) * samplesPerBucket)
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}
		if startIdx < 0 {
			startIdx = 0
		}

		sum := 0.0
		count := 0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j].ElDeg
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}

	return result
}

// hourAxis labels a sparkline of width cells spanning one day.
func hourAxis(width int) string {
	axis := []rune(strings.Repeat(" ", width))
	for _, h := range []int{0, 6, 12, 18} {
		label := fmt.Sprintf("%02d", h)
		pos := h * width / 24
		for i, r := range label {
			if pos+i < width {
				axis[pos+i] = r
			}
		}
	}
	return string(axis)
}
