// Package catalog answers "brightest star within a radius" queries against
// SIMBAD or an offline bright-star table.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/litescript/ls-starfinder/internal/astro"
)

// DefaultMagnitudeLimit is the faintest visual magnitude a query returns.
const DefaultMagnitudeLimit = 7.0

// lightYearsPerParsec converts parsecs to light years.
const lightYearsPerParsec = 3.262

// ErrBadResponse reports a catalog response that could not be understood.
var ErrBadResponse = errors.New("catalog: malformed response")

// Entry is one catalog star.
type Entry struct {
	ID           string   `json:"id"`
	RADeg        float64  `json:"ra_deg"`
	DecDeg       float64  `json:"dec_deg"`
	ParallaxMas  *float64 `json:"parallax_mas,omitempty"`
	SpectralType string   `json:"spectral_type,omitempty"`
	VisualMag    float64  `json:"visual_mag"`
}

// Position returns the entry's catalog coordinates.
func (e Entry) Position() astro.J2000 {
	return astro.J2000{Equatorial: astro.Equatorial{RAdeg: e.RADeg, DecDeg: e.DecDeg}}
}

// DistanceLightYears converts the parallax to a distance. It reports false
// when the parallax is missing or not positive.
func (e Entry) DistanceLightYears() (float64, bool) {
	if e.ParallaxMas == nil || *e.ParallaxMas <= 0 {
		return 0, false
	}
	return 1000 / *e.ParallaxMas * lightYearsPerParsec, true
}

// Source is anything that can answer a single radius query. At most one
// entry comes back: the brightest one within radiusDeg of target.
type Source interface {
	Brightest(ctx context.Context, target astro.J2000, radiusDeg float64) (Entry, bool, error)
}

// QueryError is returned when a catalog service cannot answer a query.
type QueryError struct {
	Service    string
	StatusCode int // zero when no HTTP response was received
	Err        error
}

func (e *QueryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s query failed (status %d): %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s query failed: %v", e.Service, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func parallax(v float64) *float64 {
	return &v
}
