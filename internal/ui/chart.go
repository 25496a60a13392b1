package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfinder/internal/astro"
	"github.com/litescript/ls-starfinder/internal/catalog"
	"github.com/litescript/ls-starfinder/internal/finder"
)

const (
	// Half the horizontal field of view in degrees
	chartHalfWidthDeg = 5.0

	glyphTarget    = '✚'
	glyphBrightest = '✶'
	glyphClosest   = '◆'
	glyphRing      = '·'

	colorTarget    = "46"
	colorBrightest = "229" // bright gold
	colorClosest   = "#d0c8ff"
	colorRing      = "60"

	// Star glyphs by magnitude
	glyphStarBright = '✸' // mag < 1.5
	glyphStarMedium = '*' // mag 1.5-3.0
	glyphStarDim    = '·' // mag > 3.0

	colorStarBright = "255"
	colorStarMedium = "250"
	colorStarDim    = "244"
)

// ChartModel draws a finder chart centred on the sighting's J2000 position,
// with east to the left as seen looking up.
type ChartModel struct {
	width  int
	height int

	radiusDeg float64 // search ring
	stars     []catalog.Entry
}

// NewChartModel creates a chart over the built-in bright-star table.
func NewChartModel(radiusDeg float64) ChartModel {
	return ChartModel{
		radiusDeg: radiusDeg,
		stars:     catalog.BrightStars(),
	}
}

// SetSize updates the viewport size.
func (m ChartModel) SetSize(width, height int) ChartModel {
	m.width = width
	m.height = height
	return m
}

// degPerCol is the horizontal scale. Terminal cells are about twice as tall
// as wide, so a row spans twice as many degrees.
func (m ChartModel) degPerCol() float64 {
	if m.width <= 0 {
		return 1
	}
	return 2 * chartHalfWidthDeg / float64(m.width)
}

// project maps an equatorial position to a canvas cell around center.
func (m ChartModel) project(center astro.Equatorial, eq astro.Equatorial) (int, int, bool) {
	dRA := normalizeAngle(eq.RAdeg-center.RAdeg) * math.Cos(center.DecDeg*math.Pi/180)
	dDec := eq.DecDeg - center.DecDeg

	scale := m.degPerCol()
	x := m.width/2 - int(math.Round(dRA/scale))
	y := m.height/2 - int(math.Round(dDec/(2*scale)))

	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0, 0, false
	}
	return x, y, true
}

// View renders the chart for rep.
func (m ChartModel) View(rep finder.Report) string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	canvas := make([][]rune, m.height)
	colors := make([][]lipgloss.Color, m.height)
	for y := 0; y < m.height; y++ {
		canvas[y] = make([]rune, m.width)
		colors[y] = make([]lipgloss.Color, m.width)
		for x := 0; x < m.width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}
	plot := func(x, y int, r rune, c lipgloss.Color) {
		canvas[y][x] = r
		colors[y][x] = c
	}

	center := rep.Target.Equatorial

	// Search ring, traced in the tangent plane
	for a := 0.0; a < 360; a += 2 {
		dx := m.radiusDeg * math.Cos(a*math.Pi/180)
		dy := m.radiusDeg * math.Sin(a*math.Pi/180)
		cosDec := math.Cos(center.DecDeg * math.Pi / 180)
		if cosDec < 1e-6 {
			break
		}
		eq := astro.Equatorial{RAdeg: center.RAdeg + dx/cosDec, DecDeg: center.DecDeg + dy}
		if x, y, ok := m.project(center, eq); ok {
			plot(x, y, glyphRing, colorRing)
		}
	}

	for _, s := range m.stars {
		if x, y, ok := m.project(center, s.Position().Equatorial); ok {
			glyph, color := starGlyph(s.VisualMag)
			plot(x, y, glyph, color)
		}
	}

	if rep.Closest != nil {
		if x, y, ok := m.project(center, rep.Closest.Entry.Position().Equatorial); ok {
			plot(x, y, glyphClosest, colorClosest)
		}
	}
	if rep.Brightest != nil {
		if x, y, ok := m.project(center, rep.Brightest.Entry.Position().Equatorial); ok {
			plot(x, y, glyphBrightest, colorBrightest)
		}
	}

	plot(m.width/2, m.height/2, glyphTarget, colorTarget)

	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < m.height-1 {
			b.WriteString("\n")
		}
	}

	legend := lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Render(
		fmt.Sprintf("  %c sighting  %c brightest  %c closest  %c %.0f° search radius  E←  →W",
			glyphTarget, glyphBrightest, glyphClosest, glyphRing, m.radiusDeg))
	return b.String() + "\n" + legend
}

// starGlyph returns the glyph and color for a star of magnitude mag.
// Brighter stars (lower magnitude) get more prominent symbols.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	default:
		return glyphStarDim, colorStarDim
	}
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	}
	if a < -180 {
		a += 360
	}
	return a
}
