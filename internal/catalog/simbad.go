package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/litescript/ls-starfinder/internal/astro"
	"github.com/litescript/ls-starfinder/internal/dump"
	"github.com/litescript/ls-starfinder/internal/logging"
	"github.com/litescript/ls-starfinder/internal/metrics"
	"github.com/litescript/ls-starfinder/internal/version"
)

const (
	// DefaultSimbadURL is the SIMBAD TAP synchronous query endpoint.
	DefaultSimbadURL = "http://simbad.u-strasbg.fr/simbad/sim-tap/sync"

	// DefaultTimeout for catalog requests.
	DefaultTimeout = 30 * time.Second

	simbadService = "simbad"
)

// SimbadClient queries SIMBAD over TAP with ADQL.
type SimbadClient struct {
	client   *http.Client
	url      string
	timeout  time.Duration
	magLimit float64
	dump     *dump.Store
	log      *logging.Logger
}

// SimbadOption configures a SimbadClient.
type SimbadOption func(*SimbadClient)

// WithURL sets a custom TAP endpoint.
func WithURL(u string) SimbadOption {
	return func(c *SimbadClient) {
		c.url = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) SimbadOption {
	return func(c *SimbadClient) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) SimbadOption {
	return func(c *SimbadClient) {
		c.client = client
	}
}

// WithMagnitudeLimit sets the faintest magnitude the query accepts.
func WithMagnitudeLimit(mag float64) SimbadOption {
	return func(c *SimbadClient) {
		c.magLimit = mag
	}
}

// WithDump stores every raw response body in s.
func WithDump(s *dump.Store) SimbadOption {
	return func(c *SimbadClient) {
		c.dump = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) SimbadOption {
	return func(c *SimbadClient) {
		c.log = l
	}
}

// NewSimbadClient creates a SIMBAD client.
func NewSimbadClient(opts ...SimbadOption) *SimbadClient {
	c := &SimbadClient{
		url:      DefaultSimbadURL,
		timeout:  DefaultTimeout,
		magLimit: DefaultMagnitudeLimit,
		log:      logging.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// Brightest implements Source.
func (c *SimbadClient) Brightest(ctx context.Context, target astro.J2000, radiusDeg float64) (Entry, bool, error) {
	start := time.Now()

	entries, err := c.query(ctx, BrightestQuery(target, radiusDeg, c.magLimit))
	switch {
	case err != nil:
		metrics.ObserveLookup(simbadService, metrics.OutcomeError, start)
		return Entry{}, false, err
	case len(entries) == 0:
		metrics.ObserveLookup(simbadService, metrics.OutcomeEmpty, start)
		c.log.Debug("r=%.1f no star", radiusDeg)
		return Entry{}, false, nil
	}

	metrics.ObserveLookup(simbadService, metrics.OutcomeOK, start)
	c.log.Debug("r=%.1f %s mag=%.2f", radiusDeg, entries[0].ID, entries[0].VisualMag)
	return entries[0], true, nil
}

// BrightestQuery builds the ADQL for the brightest V-band star no fainter
// than magLimit inside a circle around target.
func BrightestQuery(target astro.J2000, radiusDeg, magLimit float64) string {
	return fmt.Sprintf("SELECT TOP 1 b.main_id AS star_id, b.ra, b.dec, b.plx_value, b.sp_type, f.flux AS visual_magnitude "+
		"FROM basic AS b JOIN flux AS f ON b.oid = f.oidref "+
		"WHERE f.filter = 'V' AND f.flux <= %s "+
		"AND CONTAINS(POINT('ICRS', b.ra, b.dec), CIRCLE('ICRS', %s, %s, %s)) = 1 "+
		"ORDER BY visual_magnitude ASC",
		adqlNumber(magLimit), adqlNumber(target.RAdeg), adqlNumber(target.DecDeg), adqlNumber(radiusDeg))
}

func adqlNumber(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.10f", v), "0"), ".")
}

func (c *SimbadClient) query(ctx context.Context, adql string) ([]Entry, error) {
	form := url.Values{}
	form.Set("request", "doQuery")
	form.Set("lang", "ADQL")
	form.Set("format", "json")
	form.Set("query", adql)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &QueryError{Service: simbadService, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &QueryError{Service: simbadService, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &QueryError{Service: simbadService, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &QueryError{Service: simbadService, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", snippet(body))}
	}

	if path, err := c.dump.Write(simbadService, body); err != nil {
		c.log.Warn("dump response: %v", err)
	} else if path != "" {
		c.log.Debug("response saved to %s", path)
	}

	entries, err := ParseTable(body)
	if err != nil {
		return nil, &QueryError{Service: simbadService, StatusCode: resp.StatusCode, Err: err}
	}
	return entries, nil
}

// tapTable is the JSON shape of a TAP result.
type tapTable struct {
	Metadata []struct {
		Name string `json:"name"`
	} `json:"metadata"`
	Data [][]json.RawMessage `json:"data"`
}

// ParseTable decodes a TAP JSON result into entries. Columns are matched by
// name, so their order in the response does not matter.
func ParseTable(body []byte) ([]Entry, error) {
	var table tapTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if table.Metadata == nil || table.Data == nil {
		return nil, fmt.Errorf("%w: missing metadata or data", ErrBadResponse)
	}

	cols := make(map[string]int, len(table.Metadata))
	for i, m := range table.Metadata {
		cols[strings.ToLower(m.Name)] = i
	}
	for _, name := range []string{"star_id", "ra", "dec", "visual_magnitude"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadResponse, name)
		}
	}

	entries := make([]Entry, 0, len(table.Data))
	for i, row := range table.Data {
		e, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadResponse, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseRow(row []json.RawMessage, cols map[string]int) (Entry, error) {
	cell := func(name string) json.RawMessage {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return nil
		}
		return row[i]
	}

	var e Entry
	var id *string
	if err := json.Unmarshal(cell("star_id"), &id); err != nil {
		return Entry{}, fmt.Errorf("star_id: %v", err)
	}
	if id == nil {
		return Entry{}, fmt.Errorf("star_id: null")
	}
	e.ID = strings.TrimSpace(*id)

	for _, col := range []struct {
		name string
		dst  *float64
	}{
		{"ra", &e.RADeg},
		{"dec", &e.DecDeg},
		{"visual_magnitude", &e.VisualMag},
	} {
		var v *float64
		if err := json.Unmarshal(cell(col.name), &v); err != nil {
			return Entry{}, fmt.Errorf("%s: %v", col.name, err)
		}
		if v == nil {
			return Entry{}, fmt.Errorf("%s: null", col.name)
		}
		*col.dst = *v
	}

	// Optional columns: null or absent stays empty.
	if raw := cell("plx_value"); raw != nil {
		var plx *float64
		if err := json.Unmarshal(raw, &plx); err != nil {
			return Entry{}, fmt.Errorf("plx_value: %v", err)
		}
		e.ParallaxMas = plx
	}
	if raw := cell("sp_type"); raw != nil {
		var sp *string
		if err := json.Unmarshal(raw, &sp); err != nil {
			return Entry{}, fmt.Errorf("sp_type: %v", err)
		}
		if sp != nil {
			e.SpectralType = strings.TrimSpace(*sp)
		}
	}

	return e, nil
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max] + "..."
	}
	if s == "" {
		s = "empty body"
	}
	return s
}
