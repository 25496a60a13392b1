// Package geo resolves a place name to coordinates and a UTC offset.
package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/litescript/ls-starfinder/internal/dump"
	"github.com/litescript/ls-starfinder/internal/logging"
)

// DefaultTimeout for lookup requests.
const DefaultTimeout = 15 * time.Second

// ErrNotFound is returned when a service knows nothing about the query.
var ErrNotFound = errors.New("geo: no match")

// Location is a resolved observing site.
type Location struct {
	Name           string  `json:"name"`
	LatDeg         float64 `json:"lat_deg"`
	LonDeg         float64 `json:"lon_deg"`
	UTCOffsetHours int     `json:"utc_offset_hours"`
	TimeZoneID     string  `json:"time_zone_id,omitempty"`
}

// Resolver turns a place name into a Location. epoch is the Unix time the
// UTC offset should be valid for.
type Resolver interface {
	Resolve(ctx context.Context, place string, epoch int64) (Location, error)
}

// Zone is a time zone answer.
type Zone struct {
	ID          string
	OffsetHours int
}

// Geocoder finds coordinates for a place name. UTCOffsetHours in the result
// is not meaningful.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Location, error)
}

// ZoneLookup finds the UTC offset at a position and instant.
type ZoneLookup interface {
	Zone(ctx context.Context, latDeg, lonDeg float64, epoch int64) (Zone, error)
}

// LookupError is returned when a location service fails.
type LookupError struct {
	Service string
	Query   string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup %q: %v", e.Service, e.Query, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ChainResolver geocodes the place, then asks for the zone at the result.
type ChainResolver struct {
	Places Geocoder
	Zones  ZoneLookup
}

// Resolve implements Resolver.
func (r ChainResolver) Resolve(ctx context.Context, place string, epoch int64) (Location, error) {
	loc, err := r.Places.Geocode(ctx, place)
	if err != nil {
		return Location{}, err
	}

	zone, err := r.Zones.Zone(ctx, loc.LatDeg, loc.LonDeg, epoch)
	if err != nil {
		return Location{}, err
	}

	loc.UTCOffsetHours = zone.OffsetHours
	loc.TimeZoneID = zone.ID
	return loc, nil
}

// Fixed always resolves to the same location, whatever the place name.
type Fixed struct {
	Location Location
}

// Resolve implements Resolver.
func (f Fixed) Resolve(ctx context.Context, place string, epoch int64) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	loc := f.Location
	if loc.Name == "" {
		loc.Name = place
	}
	return loc, nil
}

// endpoint is the HTTP plumbing shared by the service clients.
type endpoint struct {
	client  *http.Client
	url     string
	key     string
	timeout time.Duration
	dump    *dump.Store
	log     *logging.Logger
}

// Option configures a service client.
type Option func(*endpoint)

// WithURL sets a custom service URL.
func WithURL(u string) Option {
	return func(e *endpoint) {
		e.url = u
	}
}

// WithAPIKey sets the API key sent with every request.
func WithAPIKey(key string) Option {
	return func(e *endpoint) {
		e.key = key
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *endpoint) {
		e.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *endpoint) {
		e.client = client
	}
}

// WithDump stores every raw response body in s.
func WithDump(s *dump.Store) Option {
	return func(e *endpoint) {
		e.dump = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *endpoint) {
		e.log = l
	}
}

func newEndpoint(defaultURL string, opts []Option) endpoint {
	e := endpoint{
		url:     defaultURL,
		timeout: DefaultTimeout,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	if e.client == nil {
		e.client = &http.Client{Timeout: e.timeout}
	}
	return e
}
