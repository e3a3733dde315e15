package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
	"github.com/litescript/ls-solar/internal/report"
	"github.com/litescript/ls-solar/internal/state"
)

// 2024-06-21 12:00 UTC is the morning of June 21 in Urbana.
var testNow = time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(state.NewManager(state.DefaultConfig()))
	m.now = func() time.Time { return testNow }
	m.date = m.today()
	m.loadDay()
	return m
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestModelToday(t *testing.T) {
	m := newTestModel(t)
	want := calendar.FixedFromGregorian(2024, 6, 21)
	if m.Date() != want {
		t.Errorf("Date() = %d, want %d", m.Date(), want)
	}

	// 03:00 UTC on June 22 is still June 21 in Urbana (UTC-6).
	m.now = func() time.Time { return time.Date(2024, 6, 22, 3, 0, 0, 0, time.UTC) }
	if got := m.today(); got != want {
		t.Errorf("today() = %d, want %d", got, want)
	}
}

func TestModelDateNavigation(t *testing.T) {
	m := newTestModel(t)
	start := m.Date()

	tests := []struct {
		key  string
		want int
	}{
		{"right", start + 1},
		{"right", start + 2},
		{"left", start + 1},
		{"down", start + 8},
		{"up", start + 1},
		{"k", start - 6},
		{"j", start + 1},
		{"t", start},
	}

	for _, tt := range tests {
		m, _ = press(m, tt.key)
		if m.Date() != tt.want {
			t.Errorf("after %q: date = %d, want %d", tt.key, m.Date(), tt.want)
		}
		if m.dayView.report == nil || m.dayView.report.RD != tt.want {
			t.Errorf("after %q: day view not reloaded", tt.key)
		}
	}
}

func TestModelYearChangeLoadsSeasons(t *testing.T) {
	m := newTestModel(t)
	m.seasons = m.seasons.SetLoading(2024, astro.Urbana)

	m, _ = press(m, "right")
	if m.seasons.year != 2024 {
		t.Errorf("same-year move requested seasons for %d", m.seasons.year)
	}

	m.date = calendar.FixedFromGregorian(2024, 12, 31)
	m, cmd := press(m, "right")
	if cmd == nil {
		t.Fatal("year change returned no command")
	}
	if !m.seasons.loading || m.seasons.year != 2025 {
		t.Errorf("seasons loading=%v year=%d, want loading for 2025", m.seasons.loading, m.seasons.year)
	}
}

func TestModelViewSwitching(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		key  string
		want ViewMode
	}{
		{"2", ViewSeasons},
		{"3", ViewEvents},
		{"d", ViewDay},
		{"s", ViewSeasons},
		{"e", ViewEvents},
		{"tab", ViewDay},
		{"tab", ViewSeasons},
		{"1", ViewDay},
	}

	for _, tt := range tests {
		m, _ = press(m, tt.key)
		if m.ViewMode() != tt.want {
			t.Errorf("after %q: view = %d, want %d", tt.key, m.ViewMode(), tt.want)
		}
	}
}

func TestModelLocationCycle(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, "p")
	if got := m.state.Location().Name; got != "Mecca" {
		t.Errorf("location after p = %s, want Mecca", got)
	}
	if m.dayView.report.Location.Name != "Mecca" {
		t.Errorf("day view still shows %s", m.dayView.report.Location.Name)
	}
	if !strings.Contains(m.statusMsg, "Mecca") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}

	for i := 0; i < 4; i++ {
		m, _ = press(m, "p")
	}
	if got := m.state.Location().Name; got != "Urbana" {
		t.Errorf("location after full cycle = %s, want Urbana", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModelStaleSeasonsDropped(t *testing.T) {
	m := newTestModel(t)
	m.seasons = m.seasons.SetLoading(2025, astro.Urbana)

	stale := &report.SeasonReport{Year: 2024}
	updated, _ := m.Update(seasonsMsg{year: 2024, loc: astro.Urbana, report: stale})
	m = updated.(Model)
	if m.seasons.report != nil || !m.seasons.loading {
		t.Error("stale season report was accepted")
	}

	fresh := &report.SeasonReport{Year: 2025}
	updated, _ = m.Update(seasonsMsg{year: 2025, loc: astro.Urbana, report: fresh})
	m = updated.(Model)
	if m.seasons.report != fresh || m.seasons.loading {
		t.Error("matching season report was not stored")
	}
}

func TestModelFiredMsg(t *testing.T) {
	m := newTestModel(t)
	m.state.RecordFire("porch", "@sunset", testNow)

	updated, _ := m.Update(FiredMsg{Label: "porch", At: testNow})
	m = updated.(Model)
	if len(m.snapshot.Events) != 1 {
		t.Errorf("snapshot events = %d, want 1", len(m.snapshot.Events))
	}
	if !strings.Contains(m.statusMsg, "porch") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestModelViewRenders(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	r, err := report.BuildSeasons(2024, astro.Urbana)
	if err != nil {
		t.Fatal(err)
	}
	m.seasons = m.seasons.SetReport(2024, astro.Urbana, r, nil)

	tests := []struct {
		mode ViewMode
		want string
	}{
		{ViewDay, "sunrise"},
		{ViewSeasons, "June solstice"},
		{ViewEvents, "No activity yet"},
	}
	for _, tt := range tests {
		m.viewMode = tt.mode
		out := m.View()
		if !strings.Contains(out, tt.want) {
			t.Errorf("view %d missing %q", tt.mode, tt.want)
		}
		if !strings.Contains(out, "Seasons") {
			t.Errorf("view %d missing tabs", tt.mode)
		}
	}
}

func TestRenderEventLogNewestFirst(t *testing.T) {
	m := newTestModel(t)
	m.state.RecordFire("first", "@dawn", testNow)
	m.state.RecordFire("second", "@dusk", testNow.Add(time.Hour))
	m.snapshot = m.state.Snapshot()

	out := m.renderEventLog()
	if strings.Index(out, "second") > strings.Index(out, "first") {
		t.Error("event log is not newest first")
	}
}

func TestGradientColor(t *testing.T) {
	tests := []struct {
		col, row int
		want     string
	}{
		{0, 0, "#FACC15"},
		{50, 0, "#F97316"},
	}
	for _, tt := range tests {
		if got := gradientColor(tt.col, tt.row, 100, 6); got != tt.want {
			t.Errorf("gradientColor(%d, %d) = %s, want %s", tt.col, tt.row, got, tt.want)
		}
	}

	// Lower rows are darker.
	if gradientColor(0, 5, 100, 6) >= gradientColor(0, 0, 100, 6) {
		t.Error("bottom row not darker than top row")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"sunrise", 10, "sunrise"},
		{"astronomical dawn", 10, "astrono..."},
		{"Naw-Rúz", 3, "Naw"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
