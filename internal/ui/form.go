package ui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfinder/internal/input"
)

// Form field indices, in display order.
const (
	fieldLocation = iota
	fieldAltitude
	fieldAzimuth
	fieldYear
	fieldMonth
	fieldDay
	fieldHour
	fieldMinute
	fieldSecond
	numFields
)

var fieldLabels = [numFields]string{
	"Location",
	"Altitude (°)",
	"Azimuth (°)",
	"Year",
	"Month",
	"Day",
	"Hour",
	"Minute",
	"Second",
}

var fieldHints = [numFields]string{
	"city or place name",
	"height above the horizon, 0-90",
	"compass bearing, 0=N 90=E",
	"local time of the sighting",
	"",
	"",
	"0-23",
	"",
	"",
}

// FormModel is the nine-field sighting entry form.
type FormModel struct {
	values [numFields][]rune
	focus  int
}

// NewFormModel creates a form with the date and time fields set to now.
func NewFormModel(now time.Time) FormModel {
	var f FormModel
	f.set(fieldYear, strconv.Itoa(now.Year()))
	f.set(fieldMonth, strconv.Itoa(int(now.Month())))
	f.set(fieldDay, strconv.Itoa(now.Day()))
	f.set(fieldHour, strconv.Itoa(now.Hour()))
	f.set(fieldMinute, strconv.Itoa(now.Minute()))
	f.set(fieldSecond, strconv.Itoa(now.Second()))
	return f
}

func (f *FormModel) set(i int, s string) {
	f.values[i] = []rune(s)
}

// SetRaw replaces every field with the values in raw.
func (f FormModel) SetRaw(raw input.RawForm) FormModel {
	f.set(fieldLocation, raw.Location)
	f.set(fieldAltitude, raw.Altitude)
	f.set(fieldAzimuth, raw.Azimuth)
	f.set(fieldYear, raw.Year)
	f.set(fieldMonth, raw.Month)
	f.set(fieldDay, raw.Day)
	f.set(fieldHour, raw.Hour)
	f.set(fieldMinute, raw.Minute)
	f.set(fieldSecond, raw.Second)
	return f
}

// Raw returns the form contents as typed.
func (f FormModel) Raw() input.RawForm {
	v := func(i int) string { return string(f.values[i]) }
	return input.RawForm{
		Location: v(fieldLocation),
		Altitude: v(fieldAltitude),
		Azimuth:  v(fieldAzimuth),
		Year:     v(fieldYear),
		Month:    v(fieldMonth),
		Day:      v(fieldDay),
		Hour:     v(fieldHour),
		Minute:   v(fieldMinute),
		Second:   v(fieldSecond),
	}
}

// Focus returns the index of the focused field.
func (f FormModel) Focus() int {
	return f.focus
}

// Update handles a key press. submit is true when the user asked to search.
func (f FormModel) Update(msg tea.KeyMsg) (form FormModel, submit bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return f, true
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % numFields
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus + numFields - 1) % numFields
	case tea.KeyBackspace:
		if v := f.values[f.focus]; len(v) > 0 {
			f.values[f.focus] = v[:len(v)-1]
		}
	case tea.KeyCtrlU:
		f.values[f.focus] = nil
	case tea.KeySpace:
		f.values[f.focus] = append(f.values[f.focus], ' ')
	case tea.KeyRunes:
		f.values[f.focus] = append(f.values[f.focus], msg.Runes...)
	}
	return f, false
}

// View renders the form.
func (f FormModel) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(14)
	focusLabel := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	cursor := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Render("█")

	var b strings.Builder
	for i := 0; i < numFields; i++ {
		marker := "  "
		label := labelStyle.Render(fieldLabels[i])
		value := valueStyle.Render(string(f.values[i]))
		if i == f.focus {
			marker = "▶ "
			label = focusLabel.Render(fieldLabels[i])
			value += cursor
		}
		b.WriteString("  " + marker + label + " " + value)
		if fieldHints[i] != "" {
			b.WriteString("  " + hintStyle.Render(fieldHints[i]))
		}
		b.WriteString("\n")
	}
	return b.String()
}
