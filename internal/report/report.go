// Package report renders sighting results as text cards or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-starfinder/internal/finder"
)

// Export is the JSON form of one sighting.
type Export struct {
	ID         string         `json:"id"`
	RecordedAt time.Time      `json:"recorded_at"`
	DurationMS int64          `json:"duration_ms"`
	Report     *finder.Report `json:"report,omitempty"`
	Error      string         `json:"error,omitempty"`
	Notes      []string       `json:"notes,omitempty"`
}

// NewExport builds an export for a finished sighting. err may be nil.
func NewExport(id string, recordedAt time.Time, d time.Duration, rep finder.Report, err error) *Export {
	e := &Export{
		ID:         id,
		RecordedAt: recordedAt.UTC(),
		DurationMS: d.Milliseconds(),
	}
	if err != nil {
		e.Error = err.Error()
		return e
	}
	e.Report = &rep
	e.Notes = Notes()
	return e
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// CardLines returns the label/value lines describing one star.
func CardLines(s *finder.Star) []string {
	if s == nil {
		return []string{"No star found"}
	}

	name := s.Entry.ID
	if s.Name != "" {
		name = fmt.Sprintf("%s (%s)", s.Name, s.Entry.ID)
	}

	distance := "N/A"
	if s.HasDistance {
		distance = fmt.Sprintf("%.2f light years", s.DistanceLY)
	}

	spType := s.Entry.SpectralType
	if spType == "" {
		spType = "unknown"
	}

	return []string{
		fmt.Sprintf("Name:       %s", name),
		fmt.Sprintf("Found at:   %.1f° search radius (%.3f° away)", s.SearchRadiusDeg, s.SeparationDeg),
		fmt.Sprintf("Magnitude:  %.2f", s.Entry.VisualMag),
		fmt.Sprintf("RA:         %.6f°", s.Entry.RADeg),
		fmt.Sprintf("Dec:        %+.6f°", s.Entry.DecDeg),
		fmt.Sprintf("Distance:   %s", distance),
		fmt.Sprintf("Star type:  %s (%s)", spType, ClassDescription(s.Entry.SpectralType)),
	}
}

// WriteText writes a plain-text summary of rep.
func WriteText(w io.Writer, rep finder.Report) {
	rule := strings.Repeat("─", 60)

	fmt.Fprintf(w, "Sighting from %s (%.4f, %.4f, UTC%+d) @ %s\n",
		rep.Location.Name, rep.Location.LatDeg, rep.Location.LonDeg, rep.Location.UTCOffsetHours, rep.UTC)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Alt/Az:        %.2f° / %.2f°\n", rep.AltDeg, rep.AzDeg)
	fmt.Fprintf(w, "Apparent:      RA %.6f°  Dec %+.6f°\n", rep.Apparent.RAdeg, rep.Apparent.DecDeg)
	fmt.Fprintf(w, "J2000:         RA %.6f°  Dec %+.6f°\n", rep.Target.RAdeg, rep.Target.DecDeg)
	fmt.Fprintf(w, "Sidereal time: GMST %.4f°  LST %.4f°\n", rep.GMSTDeg, rep.LSTDeg)
	fmt.Fprintf(w, "Sun:           %.1f° away (%s)\n", rep.SunSeparationDeg, rep.SunTier)

	for _, warning := range rep.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	if !rep.Found() {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "No star brighter than magnitude 7 within 3 degrees")
		return
	}

	writeCard(w, "Brightest star", rep.Brightest)
	writeCard(w, "Closest star", rep.Closest)

	fmt.Fprintln(w, rule)
	for _, n := range Notes() {
		fmt.Fprintln(w, n)
	}
}

func writeCard(w io.Writer, title string, s *finder.Star) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", len(title)))
	for _, line := range CardLines(s) {
		fmt.Fprintln(w, line)
	}
}
