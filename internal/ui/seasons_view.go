package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
	"github.com/litescript/ls-solar/internal/report"
)

var nextSeasonStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57"))

// SeasonsViewModel shows the equinoxes, solstices and new years of the
// selected year.
type SeasonsViewModel struct {
	width  int
	height int

	// Year and location of the requested report
	year      int
	loc       astro.Location
	requested bool

	report  *report.SeasonReport
	err     error
	loading bool
}

// NewSeasonsViewModel creates a new seasons view model.
func NewSeasonsViewModel() SeasonsViewModel {
	return SeasonsViewModel{}
}

// SetSize updates the view dimensions.
func (m SeasonsViewModel) SetSize(width, height int) SeasonsViewModel {
	m.width = width
	m.height = height
	return m
}

// Stale reports whether the view holds or awaits a report other than the
// one for year at loc.
func (m SeasonsViewModel) Stale(year int, loc astro.Location) bool {
	return !m.requested || m.year != year || m.loc != loc
}

// SetLoading marks a report for year at loc as in flight.
func (m SeasonsViewModel) SetLoading(year int, loc astro.Location) SeasonsViewModel {
	m.year = year
	m.loc = loc
	m.requested = true
	m.report = nil
	m.err = nil
	m.loading = true
	return m
}

// SetReport stores a computed report. Results for a year or location that
// is no longer requested are dropped.
func (m SeasonsViewModel) SetReport(year int, loc astro.Location, r *report.SeasonReport, err error) SeasonsViewModel {
	if m.requested && (year != m.year || loc != m.loc) {
		return m
	}
	m.year = year
	m.loc = loc
	m.requested = true
	m.report = r
	m.err = err
	m.loading = false
	return m
}

// View renders the season table relative to the selected date.
func (m SeasonsViewModel) View(date int) string {
	var b strings.Builder

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	case m.report == nil:
		b.WriteString(dimTextStyle.Render("  Computing seasons..."))
		b.WriteString("\n")
		return b.String()
	}
	r := m.report

	b.WriteString(titleStyle.Render(fmt.Sprintf("Seasons %d · %s", r.Year, r.Location.Name)))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-18s %5s  %-20s %-20s %s", "Season", "λ", "UTC", "Local", "")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	next := nextSeason(r, date)
	for i, s := range r.Seasons {
		days := calendar.FixedFromTime(s.UTC) - date
		row := fmt.Sprintf(" %-18s %4.0f°  %-20s %-20s %s",
			s.Name, s.Longitude, s.UTC.Format("2006-01-02 15:04"), s.Local, relativeDays(days))
		if i == next {
			b.WriteString(nextSeasonStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(rowStyle.Render(fmt.Sprintf(" Nowruz (Persian)   %s", r.PersianNewYear)))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render(fmt.Sprintf(" Naw-Rúz (Bahá'í)   %s", r.BahaiNewYear)))
	b.WriteString("\n")

	return b.String()
}

// nextSeason returns the index of the first season on or after date, or -1.
func nextSeason(r *report.SeasonReport, date int) int {
	for i, s := range r.Seasons {
		if calendar.FixedFromTime(s.UTC) >= date {
			return i
		}
	}
	return -1
}

func relativeDays(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}
