package catalog

import (
	"context"
	"time"

	"github.com/litescript/ls-starfinder/internal/astro"
	"github.com/litescript/ls-starfinder/internal/metrics"
)

const localService = "local"

// LocalCatalog answers queries from an in-memory star table. It needs no
// network access and follows the same contract as SimbadClient.
type LocalCatalog struct {
	entries  []Entry
	magLimit float64
}

// NewLocalCatalog creates a catalog over entries. A nil slice selects the
// built-in bright-star table.
func NewLocalCatalog(entries []Entry) *LocalCatalog {
	if entries == nil {
		entries = brightStars
	}
	return &LocalCatalog{entries: entries, magLimit: DefaultMagnitudeLimit}
}

// Len returns the number of stars in the catalog.
func (c *LocalCatalog) Len() int {
	return len(c.entries)
}

// Brightest implements Source. Ties on magnitude keep the first entry.
func (c *LocalCatalog) Brightest(ctx context.Context, target astro.J2000, radiusDeg float64) (Entry, bool, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		metrics.ObserveLookup(localService, metrics.OutcomeError, start)
		return Entry{}, false, err
	}

	var (
		best  Entry
		found bool
	)
	for _, e := range c.entries {
		if e.VisualMag > c.magLimit {
			continue
		}
		if astro.AngularSeparation(target.Equatorial, e.Position().Equatorial) > radiusDeg {
			continue
		}
		if !found || e.VisualMag < best.VisualMag {
			best, found = e, true
		}
	}

	outcome := metrics.OutcomeEmpty
	if found {
		outcome = metrics.OutcomeOK
	}
	metrics.ObserveLookup(localService, outcome, start)
	return best, found, nil
}

// BrightStars returns a copy of the built-in bright-star table.
func BrightStars() []Entry {
	out := make([]Entry, len(brightStars))
	copy(out, brightStars)
	return out
}

// CommonName returns the traditional name of a star in the built-in table,
// or "" when it has none.
func CommonName(id string) string {
	return commonNames[id]
}

// brightStars holds J2000 positions, Hipparcos parallaxes and MK spectral
// types for the naked-eye stars the offline mode can return.
var brightStars = []Entry{
	{"* alf CMa", 101.287, -16.716, parallax(379.21), "A1V", -1.46},
	{"* alf Car", 95.988, -52.696, parallax(10.55), "A9II", -0.74},
	{"* alf Boo", 213.915, 19.182, parallax(88.83), "K1.5III", -0.05},
	{"* alf Lyr", 279.235, 38.784, parallax(130.23), "A0Va", 0.03},
	{"* alf Aur", 79.172, 45.998, parallax(76.20), "G3III", 0.08},
	{"* bet Ori", 78.634, -8.202, parallax(3.78), "B8Ia", 0.13},
	{"* alf CMi", 114.826, 5.225, parallax(284.56), "F5IV-V", 0.34},
	{"* alf Eri", 24.429, -57.237, parallax(23.39), "B6Vep", 0.46},
	{"* alf Ori", 88.793, 7.407, parallax(6.55), "M1-2Ia-Iab", 0.50},
	{"* bet Cen", 210.956, -60.373, parallax(8.32), "B1III", 0.61},
	{"* alf Aql", 297.696, 8.868, parallax(194.95), "A7V", 0.76},
	{"* alf Cru", 186.650, -63.099, parallax(10.13), "B0.5IV", 0.76},
	{"* alf Tau", 68.980, 16.509, parallax(48.94), "K5+III", 0.85},
	{"* alf Sco", 247.352, -26.432, parallax(5.89), "M1.5Iab-Ib", 0.96},
	{"* alf Vir", 201.298, -11.161, parallax(13.06), "B1III-IV", 0.97},
	{"* bet Gem", 116.329, 28.026, parallax(96.54), "K0III", 1.14},
	{"* alf PsA", 344.413, -29.622, parallax(129.81), "A3V", 1.16},
	{"* alf Cyg", 310.358, 45.280, parallax(2.31), "A2Ia", 1.25},
	{"* alf Leo", 152.093, 11.967, parallax(41.13), "B8IVn", 1.35},
	{"* alf Gem", 113.650, 31.889, parallax(64.12), "A1V", 1.58},
	{"* gam Ori", 81.283, 6.350, parallax(12.92), "B2III", 1.64},
	{"* eps UMa", 193.507, 55.960, parallax(39.51), "A1III-IVp", 1.77},
	{"* alf UMa", 165.932, 61.751, parallax(26.54), "K0IIIa", 1.79},
	{"* alf Per", 51.081, 49.861, parallax(6.44), "F5Ib", 1.79},
	{"* eta UMa", 206.885, 49.313, parallax(31.38), "B3V", 1.86},
	{"* alf UMi", 37.954, 89.264, parallax(7.54), "F7Ib-II", 2.02},
	{"* alf And", 2.097, 29.091, parallax(33.62), "B8IVpMnHg", 2.06},
	{"* bet UMi", 222.676, 74.156, parallax(24.91), "K4III", 2.08},
	{"* alf Oph", 263.734, 12.560, parallax(67.13), "A5III", 2.08},
	{"* bet Per", 47.042, 40.957, parallax(35.14), "B8V", 2.12},
	{"* zet UMa", 200.981, 54.925, parallax(38.01), "A1Va", 2.23},
	{"* alf CrB", 233.672, 26.715, parallax(43.46), "A1IV", 2.23},
	{"* gam Dra", 269.152, 51.489, parallax(22.10), "K5III", 2.23},
	{"* alf Cas", 10.127, 56.537, parallax(14.29), "K0IIIa", 2.23},
	{"* bet UMa", 165.460, 56.382, parallax(40.90), "A1IVps", 2.37},
	{"* eps Boo", 221.247, 27.074, parallax(15.55), "K0II-III", 2.37},
	{"* gam UMa", 178.458, 53.695, parallax(39.21), "A0Ve", 2.44},
	{"* eta Boo", 208.671, 18.398, parallax(87.75), "G0IV", 2.68},
	{"* alf02 CVn", 194.007, 38.318, parallax(28.57), "A0pSiEuHg", 2.89},
	{"* gam Boo", 218.019, 38.308, parallax(37.63), "A7IV+", 3.04},
	{"* del UMa", 183.857, 57.033, parallax(40.05), "A2V", 3.31},
	{"* bet Boo", 225.487, 40.391, parallax(14.54), "G8IIIa", 3.49},
	{"* 80 UMa", 201.306, 54.988, parallax(39.91), "A5V", 3.99},
	{"* bet CVn", 188.436, 41.357, parallax(118.49), "G0V", 4.24},
	{"* 24 CVn", 203.613, 49.016, parallax(17.26), "A4V", 4.70},
	{"* 21 CVn", 199.561, 49.682, parallax(3.54), "B9IIIpSi", 5.15},
}

var commonNames = map[string]string{
	"* alf CMa":   "Sirius",
	"* alf Car":   "Canopus",
	"* alf Boo":   "Arcturus",
	"* alf Lyr":   "Vega",
	"* alf Aur":   "Capella",
	"* bet Ori":   "Rigel",
	"* alf CMi":   "Procyon",
	"* alf Eri":   "Achernar",
	"* alf Ori":   "Betelgeuse",
	"* bet Cen":   "Hadar",
	"* alf Aql":   "Altair",
	"* alf Cru":   "Acrux",
	"* alf Tau":   "Aldebaran",
	"* alf Sco":   "Antares",
	"* alf Vir":   "Spica",
	"* bet Gem":   "Pollux",
	"* alf PsA":   "Fomalhaut",
	"* alf Cyg":   "Deneb",
	"* alf Leo":   "Regulus",
	"* alf Gem":   "Castor",
	"* gam Ori":   "Bellatrix",
	"* eps UMa":   "Alioth",
	"* alf UMa":   "Dubhe",
	"* alf Per":   "Mirfak",
	"* eta UMa":   "Alkaid",
	"* alf UMi":   "Polaris",
	"* alf And":   "Alpheratz",
	"* bet UMi":   "Kochab",
	"* alf Oph":   "Rasalhague",
	"* bet Per":   "Algol",
	"* zet UMa":   "Mizar",
	"* alf CrB":   "Alphecca",
	"* gam Dra":   "Eltanin",
	"* alf Cas":   "Schedar",
	"* bet UMa":   "Merak",
	"* eps Boo":   "Izar",
	"* gam UMa":   "Phecda",
	"* eta Boo":   "Muphrid",
	"* alf02 CVn": "Cor Caroli",
	"* gam Boo":   "Seginus",
	"* del UMa":   "Megrez",
	"* bet Boo":   "Nekkar",
	"* 80 UMa":    "Alcor",
	"* bet CVn":   "Chara",
}
