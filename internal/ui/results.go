package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfinder/internal/finder"
	"github.com/litescript/ls-starfinder/internal/report"
)

const historyRows = 20

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

func (m Model) renderResult() string {
	if m.current == nil {
		return dimStyle.Render("  No search yet. Fill in the sighting form and press enter.")
	}
	if !m.current.OK() {
		return "  " + errStyle.Render(m.current.Err.Error())
	}

	rep := m.current.Report
	var b strings.Builder

	fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render(rep.Location.Name),
		dimStyle.Render(fmt.Sprintf("%.4f, %.4f  UTC%+d  %s", rep.Location.LatDeg, rep.Location.LonDeg, rep.Location.UTCOffsetHours, rep.UTC)))
	fmt.Fprintf(&b, "  alt %.2f° az %.2f°  →  RA %.4f° Dec %+.4f° (J2000)\n",
		rep.AltDeg, rep.AzDeg, rep.Target.RAdeg, rep.Target.DecDeg)

	if rep.SunTier != "safe" {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render(fmt.Sprintf("Sun %.1f° away (%s): the sky may be too bright for stars", rep.SunSeparationDeg, rep.SunTier)))
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render("warning: "+w))
	}
	b.WriteString("\n")

	if !rep.Found() {
		b.WriteString(dimStyle.Render("  No star brighter than magnitude 7 within the search radius."))
		return b.String()
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Brightest star", rep.Brightest),
		renderCard("Closest star", rep.Closest))
	b.WriteString(indent(cards, "  "))
	b.WriteString("\n")
	for _, n := range report.Notes() {
		b.WriteString("  " + dimStyle.Render(n) + "\n")
	}
	return b.String()
}

func renderCard(title string, s *finder.Star) string {
	lines := report.CardLines(s)
	if s != nil {
		nameStyle := lipgloss.NewStyle().Foreground(report.ClassColor(s.Entry.SpectralType)).Bold(true)
		lines[0] = nameStyle.Render(lines[0])
		if !report.NakedEye(s.Entry.VisualMag) {
			lines = append(lines, warnStyle.Render("Too faint for the naked eye"))
		}
	}
	return cardStyle.Render(titleStyle.Render(title) + "\n" + strings.Join(lines, "\n"))
}

func (m Model) renderChart() string {
	if m.current == nil || !m.current.OK() {
		return dimStyle.Render("  Nothing to chart yet.")
	}
	return indent(m.chart.View(m.current.Report), "  ")
}

func (m Model) renderHistory() string {
	recent := m.state.Recent(historyRows)
	if len(recent) == 0 {
		return dimStyle.Render("  No sightings yet.")
	}

	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	var b strings.Builder
	fmt.Fprintf(&b, "  %-10s %-8s %-24s %s\n", "Time", "ID", "Location", "Result")
	b.WriteString("  " + strings.Repeat("─", 70) + "\n")

	for i, e := range recent {
		result := "no star"
		switch {
		case !e.OK():
			result = errStyle.Render(truncate(e.Err.Error(), 40))
		case e.Report.Brightest != nil:
			result = fmt.Sprintf("%s (mag %.2f)", e.Report.Brightest.Entry.ID, e.Report.Brightest.Entry.VisualMag)
		}

		place := e.Request.Form.Location
		if e.OK() && e.Report.Location.Name != "" {
			place = e.Report.Location.Name
		}

		line := fmt.Sprintf("%-10s %-8s %-24s ", e.RecordedAt.Format(time.TimeOnly), truncate(e.ID, 8), truncate(place, 24))
		if i == m.historyAt {
			b.WriteString(activeStyle.Render("▶ "+line) + result + "\n")
		} else {
			b.WriteString("  " + line + result + "\n")
		}
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
