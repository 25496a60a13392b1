// Package finder runs a sighting through the whole pipeline: form coercion,
// location lookup, time normalization, coordinate transforms and the radius
// sweep.
package finder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-starfinder/internal/astro"
	"github.com/litescript/ls-starfinder/internal/catalog"
	"github.com/litescript/ls-starfinder/internal/geo"
	"github.com/litescript/ls-starfinder/internal/input"
	"github.com/litescript/ls-starfinder/internal/logging"
	"github.com/litescript/ls-starfinder/internal/metrics"
	"github.com/litescript/ls-starfinder/internal/search"
)

// Pipeline stages, as reported by StageError.
const (
	StageLocation  = "location"
	StageTransform = "transform"
	StageSearch    = "search"
)

// ErrInvalidGeometry is returned when the sighting maps to a non-finite
// sky position.
var ErrInvalidGeometry = errors.New("sighting geometry has no defined sky position")

// StageError wraps the failure of one pipeline stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Config holds pipeline settings.
type Config struct {
	Search  search.Config
	Timeout time.Duration // per sighting; zero means none
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
		Search:  search.DefaultConfig(),
		Timeout: 2 * time.Minute,
	}
}

// Request is one sighting as entered.
type Request struct {
	Form input.RawForm
	// PriorOffsetHours is the UTC offset used to compute the instant sent to
	// the time zone lookup, usually the one resolved for the previous
	// sighting.
	PriorOffsetHours int
}

// Star is a search result enriched for display.
type Star struct {
	Entry           catalog.Entry `json:"entry"`
	Name            string        `json:"name,omitempty"`
	SearchRadiusDeg float64       `json:"search_radius_deg"`
	SeparationDeg   float64       `json:"separation_deg"`
	DistanceLY      float64       `json:"distance_ly,omitempty"`
	HasDistance     bool          `json:"has_distance"`
}

// Report is the outcome of one sighting.
type Report struct {
	Location         geo.Location         `json:"location"`
	UTC              astro.CivilTimestamp `json:"utc"`
	Epoch            int64                `json:"epoch"`
	JulianDay        float64              `json:"julian_day"`
	GMSTDeg          float64              `json:"gmst_deg"`
	LSTDeg           float64              `json:"lst_deg"`
	AltDeg           float64              `json:"alt_deg"`
	AzDeg            float64              `json:"az_deg"`
	Apparent         astro.Apparent       `json:"apparent"`
	Target           astro.J2000          `json:"j2000"`
	SunSeparationDeg float64              `json:"sun_separation_deg"`
	SunTier          string               `json:"sun_tier"`
	Brightest        *Star                `json:"brightest,omitempty"`
	Closest          *Star                `json:"closest,omitempty"`
	Warnings         []string             `json:"warnings,omitempty"`
}

// Found reports whether the sweep met any star.
func (r Report) Found() bool {
	return r.Brightest != nil || r.Closest != nil
}

// Finder runs sightings.
type Finder struct {
	resolver geo.Resolver
	sweeper  *search.Sweeper
	cfg      Config
	log      *logging.Logger
}

// New creates a Finder. A nil logger discards output.
func New(resolver geo.Resolver, lookup search.Lookup, cfg Config, log *logging.Logger) *Finder {
	if log == nil {
		log = logging.Discard()
	}
	return &Finder{
		resolver: resolver,
		sweeper:  search.NewSweeper(lookup, cfg.Search, log.Named("search")),
		cfg:      cfg,
		log:      log,
	}
}

// Find runs one sighting end to end.
func (f *Finder) Find(ctx context.Context, req Request) (rep Report, err error) {
	defer func() { metrics.SightingDone(err) }()

	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()
	}

	form := input.Parse(req.Form)
	rep.Warnings = form.Warnings()
	for _, w := range rep.Warnings {
		f.log.Warn("input %s", w)
	}

	y, mo, d := form.Year.Value, form.Month.Value, form.Day.Value
	h, mi, s := form.Hour.Value, form.Minute.Value, form.Second.Value

	// The zone lookup needs an instant before the zone is known.
	prior := astro.Normalize(req.PriorOffsetHours, y, mo, d, h, mi, s)
	loc, err := f.resolver.Resolve(ctx, form.Location, prior.Unix())
	if err != nil {
		return Report{}, &StageError{Stage: StageLocation, Err: err}
	}
	f.log.Info("location %q: lat=%.4f lon=%.4f UTC%+d", loc.Name, loc.LatDeg, loc.LonDeg, loc.UTCOffsetHours)

	utc := astro.Normalize(loc.UTCOffsetHours, y, mo, d, h, mi, s)
	jd := astro.JulianDay(utc)
	gmst := astro.GMST(jd)

	sighting := astro.Sighting{
		Observer: astro.Observer{Name: loc.Name, LatDeg: loc.LatDeg, LonDeg: loc.LonDeg},
		AltDeg:   form.Altitude.Value,
		AzDeg:    form.Azimuth.Value,
	}
	apparent := astro.HorizontalToEquatorial(sighting, gmst)
	if !apparent.IsFinite() {
		return Report{}, &StageError{Stage: StageTransform, Err: ErrInvalidGeometry}
	}
	target := astro.ToJ2000(apparent, float64(utc.Year))
	if !target.IsFinite() {
		return Report{}, &StageError{Stage: StageTransform, Err: ErrInvalidGeometry}
	}
	f.log.Debug("utc=%s jd=%.6f gmst=%.6f apparent=(%.6f, %.6f) j2000=(%.6f, %.6f)",
		utc, jd, gmst, apparent.RAdeg, apparent.DecDeg, target.RAdeg, target.DecDeg)

	trackers, err := f.sweeper.Sweep(ctx, target)
	if err != nil {
		return Report{}, &StageError{Stage: StageSearch, Err: err}
	}

	sunSep := astro.SunSeparation(apparent, jd)
	rep.Location = loc
	rep.UTC = utc
	rep.Epoch = utc.Unix()
	rep.JulianDay = jd
	rep.GMSTDeg = gmst
	rep.LSTDeg = astro.LocalSiderealTime(gmst, loc.LonDeg)
	rep.AltDeg = sighting.AltDeg
	rep.AzDeg = sighting.AzDeg
	rep.Apparent = apparent
	rep.Target = target
	rep.SunSeparationDeg = sunSep
	rep.SunTier = astro.GetSunSeparationTier(sunSep).String()
	rep.Brightest = newStar(trackers.Brightest, target)
	rep.Closest = newStar(trackers.Closest, target)

	switch {
	case rep.Brightest != nil && rep.Closest != nil:
		f.log.Info("brightest %s mag=%.2f, closest %s r=%.1f",
			rep.Brightest.Entry.ID, rep.Brightest.Entry.VisualMag, rep.Closest.Entry.ID, rep.Closest.SearchRadiusDeg)
	case !rep.Found():
		f.log.Info("no star within %.1f degrees", f.cfg.Search.MaxRadiusDeg)
	}
	return rep, nil
}

func newStar(r search.Result, target astro.J2000) *Star {
	if !r.Found {
		return nil
	}
	s := &Star{
		Entry:           r.Entry,
		Name:            catalog.CommonName(r.Entry.ID),
		SearchRadiusDeg: r.RadiusDeg,
		SeparationDeg:   astro.AngularSeparation(target.Equatorial, r.Entry.Position().Equatorial),
	}
	s.DistanceLY, s.HasDistance = r.Entry.DistanceLightYears()
	return s
}
