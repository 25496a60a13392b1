// Package search sweeps a growing radius around a target position and keeps
// track of the brightest and the nearest star it meets.
package search

import (
	"context"
	"fmt"
	"math"

	"github.com/litescript/ls-starfinder/internal/astro"
	"github.com/litescript/ls-starfinder/internal/catalog"
	"github.com/litescript/ls-starfinder/internal/logging"
	"github.com/litescript/ls-starfinder/internal/metrics"
)

// Lookup answers one radius query with at most one entry: the brightest star
// within radiusDeg of target.
type Lookup interface {
	Brightest(ctx context.Context, target astro.J2000, radiusDeg float64) (catalog.Entry, bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, target astro.J2000, radiusDeg float64) (catalog.Entry, bool, error)

// Brightest implements Lookup.
func (f LookupFunc) Brightest(ctx context.Context, target astro.J2000, radiusDeg float64) (catalog.Entry, bool, error) {
	return f(ctx, target, radiusDeg)
}

// Config holds sweep parameters.
type Config struct {
	MaxRadiusDeg      float64 // largest radius queried, inclusive
	StepDeg           float64
	MagnitudeSentinel float64 // brightest tracker starting magnitude
	ClosestSentinel   float64 // closest tracker starting radius
}

// DefaultConfig returns the standard 0.0 to 3.0 degree sweep.
func DefaultConfig() Config {
	return Config{
		MaxRadiusDeg:      3.0,
		StepDeg:           0.1,
		MagnitudeSentinel: 7.0,
		ClosestSentinel:   5.0,
	}
}

// Radii returns the radii a sweep queries, in increasing order. Each value
// is i*StepDeg so the schedule does not accumulate rounding error.
func Radii(cfg Config) []float64 {
	if cfg.StepDeg <= 0 || cfg.MaxRadiusDeg < 0 {
		return []float64{0}
	}
	n := int(math.Floor(cfg.MaxRadiusDeg/cfg.StepDeg + 1e-9))
	radii := make([]float64, n+1)
	for i := range radii {
		radii[i] = float64(i) * cfg.StepDeg
	}
	return radii
}

// Result is one tracker's state.
type Result struct {
	Entry     catalog.Entry
	Magnitude float64
	RadiusDeg float64
	Found     bool
}

// Trackers holds the brightest and the closest result seen so far.
type Trackers struct {
	Brightest Result
	Closest   Result
}

// NewTrackers returns trackers holding the sentinels from cfg.
func NewTrackers(cfg Config) Trackers {
	return Trackers{
		Brightest: Result{Magnitude: cfg.MagnitudeSentinel, RadiusDeg: 0},
		Closest:   Result{Magnitude: cfg.MagnitudeSentinel, RadiusDeg: cfg.ClosestSentinel},
	}
}

// Observe folds one lookup answer found at radiusDeg into t and returns the
// updated trackers. Brightest moves on a strictly smaller magnitude, closest
// on a strictly smaller radius. Equal magnitudes keep the smaller radius so
// the final trackers do not depend on the order answers arrive in.
func (t Trackers) Observe(radiusDeg float64, e catalog.Entry) Trackers {
	cand := Result{Entry: e, Magnitude: e.VisualMag, RadiusDeg: radiusDeg, Found: true}

	b := t.Brightest
	if cand.Magnitude < b.Magnitude || (b.Found && cand.Magnitude == b.Magnitude && cand.RadiusDeg < b.RadiusDeg) {
		t.Brightest = cand
	}
	if cand.RadiusDeg < t.Closest.RadiusDeg {
		t.Closest = cand
	}
	return t
}

// LookupError reports the radius at which a sweep was aborted.
type LookupError struct {
	RadiusDeg float64
	Err       error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup at radius %.1f: %v", e.RadiusDeg, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Sweeper runs radius sweeps against a Lookup.
type Sweeper struct {
	lookup Lookup
	cfg    Config
	log    *logging.Logger
}

// NewSweeper creates a sweeper. A nil logger discards output.
func NewSweeper(lookup Lookup, cfg Config, log *logging.Logger) *Sweeper {
	if log == nil {
		log = logging.Discard()
	}
	return &Sweeper{lookup: lookup, cfg: cfg, log: log}
}

// Sweep queries every radius in order, one lookup each, and folds the
// answers. The first lookup error aborts the sweep.
func (s *Sweeper) Sweep(ctx context.Context, target astro.J2000) (Trackers, error) {
	t := NewTrackers(s.cfg)

	for _, r := range Radii(s.cfg) {
		e, found, err := s.lookup.Brightest(ctx, target, r)
		if err != nil {
			metrics.SweepDone(err)
			s.log.Warn("sweep aborted at r=%.1f: %v", r, err)
			return Trackers{}, &LookupError{RadiusDeg: r, Err: err}
		}
		if !found {
			continue
		}
		t = t.Observe(r, e)
	}

	metrics.SweepDone(nil)
	s.log.Debug("sweep done: brightest=%v closest=%v", t.Brightest.Found, t.Closest.Found)
	return t, nil
}

// Sweep is a convenience wrapper around a one-off Sweeper.
func Sweep(ctx context.Context, lookup Lookup, target astro.J2000, cfg Config) (Trackers, error) {
	return NewSweeper(lookup, cfg, nil).Sweep(ctx, target)
}
