package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/litescript/ls-starfinder/internal/metrics"
	"github.com/litescript/ls-starfinder/internal/version"
)

// DefaultTimezoneURL is the Google Time Zone API endpoint.
const DefaultTimezoneURL = "https://maps.googleapis.com/maps/api/timezone/json"

const timezoneService = "timezone"

// TimezoneClient looks up UTC offsets through the Google Time Zone API.
type TimezoneClient struct {
	endpoint
}

// NewTimezoneClient creates a client. WithAPIKey is required in practice.
func NewTimezoneClient(opts ...Option) *TimezoneClient {
	return &TimezoneClient{endpoint: newEndpoint(DefaultTimezoneURL, opts)}
}

type timezoneResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"errorMessage"`
	RawOffset    float64 `json:"rawOffset"`
	DstOffset    float64 `json:"dstOffset"`
	TimeZoneID   string  `json:"timeZoneId"`
}

// Zone implements ZoneLookup. The offset is the standard plus daylight
// offset in seconds, rounded to whole hours.
func (c *TimezoneClient) Zone(ctx context.Context, latDeg, lonDeg float64, epoch int64) (Zone, error) {
	start := time.Now()
	query := fmt.Sprintf("%g,%g", latDeg, lonDeg)
	zone, err := c.zone(ctx, query, epoch)

	switch {
	case err == nil:
		metrics.ObserveLookup(timezoneService, metrics.OutcomeOK, start)
		c.log.Debug("%s @%d -> %s UTC%+d", query, epoch, zone.ID, zone.OffsetHours)
		return zone, nil
	case errors.Is(err, ErrNotFound):
		metrics.ObserveLookup(timezoneService, metrics.OutcomeEmpty, start)
	default:
		metrics.ObserveLookup(timezoneService, metrics.OutcomeError, start)
	}
	return Zone{}, &LookupError{Service: timezoneService, Query: query, Err: err}
}

func (c *TimezoneClient) zone(ctx context.Context, location string, epoch int64) (Zone, error) {
	params := url.Values{}
	params.Set("location", location)
	params.Set("timestamp", strconv.FormatInt(epoch, 10))
	params.Set("key", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return Zone{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return Zone{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Zone{}, fmt.Errorf("read body: %w", err)
	}
	if path, err := c.dump.Write(timezoneService, body); err != nil {
		c.log.Warn("dump response: %v", err)
	} else if path != "" {
		c.log.Debug("response saved to %s", path)
	}

	if resp.StatusCode != http.StatusOK {
		return Zone{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var parsed timezoneResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Zone{}, fmt.Errorf("decode: %w", err)
	}

	switch parsed.Status {
	case "OK":
	case "ZERO_RESULTS":
		return Zone{}, ErrNotFound
	default:
		if parsed.ErrorMessage != "" {
			return Zone{}, fmt.Errorf("status %s: %s", parsed.Status, parsed.ErrorMessage)
		}
		return Zone{}, fmt.Errorf("status %s", parsed.Status)
	}

	return Zone{
		ID:          parsed.TimeZoneID,
		OffsetHours: int(math.Round((parsed.RawOffset + parsed.DstOffset) / 3600)),
	}, nil
}
