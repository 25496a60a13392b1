package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NakedEyeLimit is the faintest magnitude visible without optics.
const NakedEyeLimit = 6.0

// Notes returns the observing notes shown under every result.
func Notes() []string {
	return []string{
		"Magnitude: lower is brighter; about 6 is the faintest the naked eye can see.",
		"Star types run O, B, A, F, G, K, M from hottest (blue) to coolest (red). The Sun is a G star.",
	}
}

// NakedEye reports whether a star of magnitude mag is visible without optics.
func NakedEye(mag float64) bool {
	return mag <= NakedEyeLimit
}

type spectralClass struct {
	desc  string
	color lipgloss.Color
}

var spectralClasses = map[byte]spectralClass{
	'O': {"blue, hottest", lipgloss.Color("#9BB0FF")},
	'B': {"blue-white", lipgloss.Color("#AABFFF")},
	'A': {"white", lipgloss.Color("#CAD7FF")},
	'F': {"yellow-white", lipgloss.Color("#F8F7FF")},
	'G': {"yellow, like the Sun", lipgloss.Color("#FFF4EA")},
	'K': {"orange", lipgloss.Color("#FFD2A1")},
	'M': {"red, coolest", lipgloss.Color("#FFCC6F")},
}

// classOf returns the class for an MK type such as "K0IIIa".
func classOf(spType string) (spectralClass, bool) {
	spType = strings.TrimSpace(spType)
	if spType == "" {
		return spectralClass{}, false
	}
	c, ok := spectralClasses[strings.ToUpper(spType)[0]]
	return c, ok
}

// ClassDescription describes the colour and temperature of a spectral type.
func ClassDescription(spType string) string {
	c, ok := classOf(spType)
	if !ok {
		return "unclassified"
	}
	return c.desc
}

// ClassColor returns a display colour for a spectral type.
func ClassColor(spType string) lipgloss.Color {
	c, ok := classOf(spType)
	if !ok {
		return lipgloss.Color("252")
	}
	return c.color
}
