// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
	"github.com/litescript/ls-solar/internal/report"
	"github.com/litescript/ls-solar/internal/state"
	"github.com/litescript/ls-solar/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDay ViewMode = iota
	ViewSeasons
	ViewEvents
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// FiredMsg signals that a schedule entry fired.
	FiredMsg struct {
		Label string
		At    time.Time
	}

	// seasonsMsg carries a computed season report.
	seasonsMsg struct {
		year   int
		loc    astro.Location
		report *report.SeasonReport
		err    error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager
	now   func() time.Time

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	// Selected RD date in the location's standard time
	date int

	// Sub-models
	dayView DayViewModel
	seasons SeasonsViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model showing the current date at the
// manager's location.
func New(stateMgr *state.Manager) Model {
	m := Model{
		state:    stateMgr,
		now:      time.Now,
		viewMode: ViewDay,
		dayView:  NewDayViewModel(),
		seasons:  NewSeasonsViewModel(),
	}
	m.date = m.today()
	m.loadDay()
	return m
}

// Date returns the selected RD date.
func (m Model) Date() int {
	return m.date
}

// ViewMode returns the active view.
func (m Model) ViewMode() ViewMode {
	return m.viewMode
}

// today is the current date in standard time at the selected location.
func (m Model) today() int {
	loc := m.state.Location()
	return astro.StandardFromUniversal(calendar.MomentFromTime(m.now()), loc).Fixed()
}

func (m *Model) loadDay() {
	loc := m.state.Location()
	r := m.state.Day(m.date)
	m.dayView = m.dayView.SetReport(r, loc, m.now())
	m.snapshot = m.state.Snapshot()
}

// seasonsCmd requests the season report for the selected year if the
// cached one is stale.
func (m *Model) seasonsCmd() tea.Cmd {
	year := calendar.GregorianYearFromFixed(m.date)
	loc := m.state.Location()
	if !m.seasons.Stale(year, loc) {
		return nil
	}
	m.seasons = m.seasons.SetLoading(year, loc)
	return loadSeasons(year, loc)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	year := calendar.GregorianYearFromFixed(m.date)
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		loadSeasons(year, m.state.Location()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "d":
			m.viewMode = ViewDay
		case "2", "s":
			m.viewMode = ViewSeasons
		case "3", "e":
			m.viewMode = ViewEvents
		case "tab":
			m.viewMode = (m.viewMode + 1) % 3

		case "left", "h":
			cmds = append(cmds, m.moveTo(m.date-1))
		case "right", "l":
			cmds = append(cmds, m.moveTo(m.date+1))
		case "up", "k":
			cmds = append(cmds, m.moveTo(m.date-7))
		case "down", "j":
			cmds = append(cmds, m.moveTo(m.date+7))
		case "t":
			cmds = append(cmds, m.moveTo(m.today()))

		case "p":
			cmds = append(cmds, m.nextLocation())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 14
		m.dayView = m.dayView.SetSize(msg.Width, contentHeight)
		m.seasons = m.seasons.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()
		m.dayView = m.dayView.SetNow(time.Time(msg))

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case FiredMsg:
		m.snapshot = m.state.Snapshot()
		m.statusMsg = fmt.Sprintf("%s fired at %s", msg.Label, msg.At.Local().Format("15:04:05"))

	case seasonsMsg:
		m.seasons = m.seasons.SetReport(msg.year, msg.loc, msg.report, msg.err)
	}

	return m, tea.Batch(cmds...)
}

// moveTo selects a new date and returns any follow-up command.
func (m *Model) moveTo(date int) tea.Cmd {
	if date == m.date {
		return nil
	}
	m.date = date
	m.loadDay()
	return m.seasonsCmd()
}

// nextLocation cycles through the preset locations.
func (m *Model) nextLocation() tea.Cmd {
	presets := astro.Presets()
	current := m.state.Location()
	next := presets[0]
	for i, p := range presets {
		if p == current {
			next = presets[(i+1)%len(presets)]
			break
		}
	}
	m.state.SetLocation(next)
	m.statusMsg = "Location: " + next.String()
	m.loadDay()
	return m.seasonsCmd()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDay:
		content = m.dayView.View()
	case ViewSeasons:
		content = m.seasons.View(m.date)
	case ViewEvents:
		content = m.renderEventLog()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderStatusLine()
}

func (m Model) renderLogo() string {
	// ASCII art with smooth truecolor gradient
	logo := []string{
		`  ██╗     ███████╗      ███████╗ ██████╗ ██╗      █████╗ ██████╗`,
		`  ██║     ██╔════╝      ██╔════╝██╔═══██╗██║     ██╔══██╗██╔══██╗`,
		`  ██║     ███████╗█████╗███████╗██║   ██║██║     ███████║██████╔╝`,
		`  ██║     ╚════██║╚════╝╚════██║██║   ██║██║     ██╔══██║██╔══██╗`,
		`  ███████╗███████║      ███████║╚██████╔╝███████╗██║  ██║██║  ██║`,
		`  ╚══════╝╚══════╝      ╚══════╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Solar Ephemeris · Sunrise, Twilight & Seasons"))
	b.WriteString("\n")

	copyright := fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)
	b.WriteString(muted.Render(copyright))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Sunrise palette: gold -> orange -> rose
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Gold (#FACC15) -> Orange (#F97316) -> Rose (#E11D48)
	var r, g, b float64

	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 250 + t*(249-250)
		g = 204 + t*(115-204)
		b = 21 + t*(22-21)
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 249 + t*(225-249)
		g = 115 + t*(29-115)
		b = 22 + t*(72-22)
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightnessFactor := 1.0 - (yRatio * 0.5)
	r *= brightnessFactor
	g *= brightnessFactor
	b *= brightnessFactor

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	i := int(v)
	if i > 255 {
		return 255
	}
	if i < 0 {
		return 0
	}
	return i
}

func (m Model) renderStatusLine() string {
	tabs := m.renderTabs()
	return tabs + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Day", "[2] Seasons", "[3] Events"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	loc := m.snapshot.Location
	status := accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" %s · %s · cache %d",
		loc.Name, calendar.DateOf(m.date).Format("Mon 2006-01-02"), m.snapshot.CachedDays))
	if m.seasons.loading {
		status += " " + m.renderShimmerText("computing seasons...")
	}

	var help string
	switch m.viewMode {
	case ViewSeasons:
		help = dimStyle.Render("←/→: day | ↑↓: week | t: today | p: location")
	case ViewEvents:
		help = dimStyle.Render("tab: switch view | q: quit")
	default:
		help = dimStyle.Render("←/→: day | ↑↓: week | t: today | p: location | tab: switch view")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help

	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}

	return footer
}

// renderEventLog renders the schedule and location activity log, newest first.
func (m Model) renderEventLog() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Activity"))
	b.WriteString("\n\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString(dimTextStyle.Render("  No activity yet. Schedules fire here in watch mode."))
		b.WriteString("\n")
		return b.String()
	}

	maxRows := m.height
	if maxRows <= 0 || maxRows > len(events) {
		maxRows = len(events)
	}
	for i := len(events) - 1; i >= len(events)-maxRows; i-- {
		e := events[i]
		line := fmt.Sprintf("  %s  %-17s %-16s %s",
			e.Timestamp.Local().Format("01-02 15:04:05"), e.Type, truncate(e.Label, 16), e.Detail)
		b.WriteString(rowStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

func loadSeasons(year int, loc astro.Location) tea.Cmd {
	return func() tea.Msg {
		r, err := report.BuildSeasons(year, loc)
		return seasonsMsg{year: year, loc: loc, report: r, err: err}
	}
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	pos := m.animTick % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
