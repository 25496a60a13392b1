// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfinder/internal/finder"
	"github.com/litescript/ls-starfinder/internal/state"
	"github.com/litescript/ls-starfinder/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewForm ViewMode = iota
	ViewResult
	ViewChart
	ViewHistory
	numViews
)

// Finder runs one sighting.
type Finder interface {
	Find(ctx context.Context, req finder.Request) (finder.Report, error)
}

// Msg types for Bubble Tea
type (
	// AnimTickMsg drives the spinner while a search runs.
	AnimTickMsg time.Time

	// sightingDoneMsg carries the recorded outcome of a search.
	sightingDoneMsg struct {
		entry state.Entry
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	ctx    context.Context
	finder Finder
	state  *state.Manager

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	running  bool
	animTick int

	// Offset used for the zone lookup instant until a sighting resolves one
	defaultOffset int

	// Sub-models
	form  FormModel
	chart ChartModel

	current   *state.Entry
	historyAt int
}

// New creates a new root UI model. Searches run under ctx. defaultOffset is
// the local UTC offset in hours, used before any sighting has resolved one.
func New(ctx context.Context, f Finder, stateMgr *state.Manager, defaultOffset int, searchRadiusDeg float64, now time.Time) Model {
	return Model{
		ctx:           ctx,
		finder:        f,
		state:         stateMgr,
		viewMode:      ViewForm,
		defaultOffset: defaultOffset,
		form:          NewFormModel(now),
		chart:         NewChartModel(searchRadiusDeg),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Header ~4 lines, footer ~2 lines, chart legend 1 line
		m.chart = m.chart.SetSize(msg.Width-4, msg.Height-8)

	case AnimTickMsg:
		if m.running {
			m.animTick++
			return m, animTickCmd()
		}

	case sightingDoneMsg:
		m.running = false
		entry := msg.entry
		m.current = &entry
		m.historyAt = 0
		m.viewMode = ViewResult
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.viewMode == ViewForm {
		if msg.Type == tea.KeyEsc {
			if m.current != nil {
				m.viewMode = ViewResult
			}
			return m, nil
		}
		var submit bool
		m.form, submit = m.form.Update(msg)
		if submit && !m.running {
			return m.submit()
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "e", "esc", "1":
		m.viewMode = ViewForm
	case "2", "r":
		m.viewMode = ViewResult
	case "3", "c":
		m.viewMode = ViewChart
	case "4", "h":
		m.viewMode = ViewHistory
	case "tab":
		m.viewMode = (m.viewMode + 1) % numViews
	case "up", "k":
		if m.viewMode == ViewHistory && m.historyAt > 0 {
			m.historyAt--
		}
	case "down", "j":
		if m.viewMode == ViewHistory && m.historyAt < len(m.state.Recent(historyRows))-1 {
			m.historyAt++
		}
	case "enter":
		if m.viewMode == ViewHistory {
			recent := m.state.Recent(historyRows)
			if m.historyAt < len(recent) {
				entry := recent[m.historyAt]
				m.current = &entry
				m.form = m.form.SetRaw(entry.Request.Form)
				m.viewMode = ViewResult
			}
		}
	}
	return m, nil
}

// submit starts a search for the current form contents.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.running = true
	req := finder.Request{
		Form:             m.form.Raw(),
		PriorOffsetHours: m.state.LastOffset(m.defaultOffset),
	}
	return m, tea.Batch(findCmd(m.ctx, m.finder, m.state, req), animTickCmd())
}

func findCmd(ctx context.Context, f Finder, st *state.Manager, req finder.Request) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		rep, err := f.Find(ctx, req)
		return sightingDoneMsg{entry: st.Record(req, rep, time.Since(start), err)}
	}
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewForm:
		content = m.form.View()
	case ViewResult:
		content = m.renderResult()
	case ViewChart:
		content = m.renderChart()
	case ViewHistory:
		content = m.renderHistory()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := "ls-starfinder"
	var b strings.Builder
	b.WriteString("\n  ")
	runes := []rune(title)
	for col, r := range runes {
		color := gradientColor(col, 0, len(runes), 1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  what star did I see? · v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sighting", "[2] Result", "[3] Chart", "[4] History"}
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
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	var status string
	switch {
	case m.running:
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) + dimStyle.Render(" searching...")
	case m.current != nil && !m.current.OK():
		status = errorStyle.Render("ERROR: " + m.current.Err.Error())
	case m.current != nil:
		status = dimStyle.Render(fmt.Sprintf("last search %s", m.current.Duration.Round(time.Millisecond)))
	default:
		status = dimStyle.Render("ready")
	}

	var help string
	switch m.viewMode {
	case ViewForm:
		help = "tab/↑↓: field | enter: search | esc: result | ctrl+c: quit"
	case ViewHistory:
		help = "↑↓: select | enter: open | e: edit | tab: switch view | q: quit"
	default:
		help = "e: edit | tab: switch view | q: quit"
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

// gradientColor returns a hex color for a position in the title gradient.
// Blue (#3B82F6) -> Purple (#8B5CF6) -> Magenta (#D946EF) -> Pink (#EC4899)
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	switch {
	case xRatio < 0.33:
		t := xRatio / 0.33
		r, g, b = 59+t*(139-59), 130+t*(92-130), 246
	case xRatio < 0.66:
		t := (xRatio - 0.33) / 0.33
		r, g, b = 139+t*(217-139), 92+t*(70-92), 246+t*(239-246)
	default:
		t := (xRatio - 0.66) / 0.34
		r, g, b = 217+t*(236-217), 70+t*(72-70), 239+t*(153-239)
	}

	// Vertical fade: brighter at top
	f := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*f), clampByte(g*f), clampByte(b*f))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(v)
}
