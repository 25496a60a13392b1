package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starfinder/internal/input"
)

func typeString(f FormModel, s string) FormModel {
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		f, _ = f.Update(msg)
	}
	return f
}

func TestNewFormModel_PrefillsTime(t *testing.T) {
	f := NewFormModel(time.Date(2020, 10, 25, 20, 43, 30, 0, time.UTC))
	raw := f.Raw()

	want := input.RawForm{Year: "2020", Month: "10", Day: "25", Hour: "20", Minute: "43", Second: "30"}
	if raw != want {
		t.Errorf("Raw() = %+v, want %+v", raw, want)
	}
	if f.Focus() != fieldLocation {
		t.Errorf("initial focus = %d, want location", f.Focus())
	}
}

func TestFormModel_Typing(t *testing.T) {
	f := NewFormModel(time.Now())
	f = typeString(f, "Seattle WA")

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeString(f, "26.77")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	raw := f.Raw()
	if raw.Location != "Seattle WA" {
		t.Errorf("Location = %q", raw.Location)
	}
	if raw.Altitude != "26.7" {
		t.Errorf("Altitude = %q, want 26.7", raw.Altitude)
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if got := f.Raw().Altitude; got != "" {
		t.Errorf("Altitude after ctrl+u = %q", got)
	}
}

func TestFormModel_FocusWraps(t *testing.T) {
	f := NewFormModel(time.Now())

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.Focus() != fieldSecond {
		t.Errorf("shift+tab from first field: focus = %d, want %d", f.Focus(), fieldSecond)
	}
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyDown})
	if f.Focus() != fieldLocation {
		t.Errorf("down from last field: focus = %d, want %d", f.Focus(), fieldLocation)
	}
}

func TestFormModel_EnterSubmits(t *testing.T) {
	f := NewFormModel(time.Now())
	if _, submit := f.Update(tea.KeyMsg{Type: tea.KeyEnter}); !submit {
		t.Error("enter should submit")
	}
	if _, submit := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); submit {
		t.Error("typing should not submit")
	}
}

func TestFormModel_SetRaw(t *testing.T) {
	raw := input.RawForm{
		Location: "Seattle", Altitude: "26.7", Azimuth: "46",
		Year: "2020", Month: "10", Day: "25", Hour: "20", Minute: "43", Second: "30",
	}
	f := NewFormModel(time.Now()).SetRaw(raw)
	if got := f.Raw(); got != raw {
		t.Errorf("Raw() after SetRaw = %+v, want %+v", got, raw)
	}
}

func TestFormModel_View(t *testing.T) {
	f := NewFormModel(time.Now())
	f = typeString(f, "Seattle")
	view := f.View()

	for _, label := range fieldLabels {
		if !strings.Contains(view, label) {
			t.Errorf("view missing label %q", label)
		}
	}
	if !strings.Contains(view, "▶") {
		t.Error("view should mark the focused field")
	}
	if !strings.Contains(view, "Seattle") {
		t.Error("view should show typed value")
	}
}
