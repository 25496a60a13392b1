package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/litescript/ls-starfinder/internal/metrics"
	"github.com/litescript/ls-starfinder/internal/version"
)

// DefaultWeatherAPIURL is the WeatherAPI current-conditions endpoint. Only
// its location block is used.
const DefaultWeatherAPIURL = "http://api.weatherapi.com/v1/current.json"

// weatherAPINoMatch is WeatherAPI's error code for an unknown place.
const weatherAPINoMatch = 1006

const weatherService = "weatherapi"

// WeatherAPIClient geocodes place names through WeatherAPI.
type WeatherAPIClient struct {
	endpoint
}

// NewWeatherAPIClient creates a client. WithAPIKey is required in practice.
func NewWeatherAPIClient(opts ...Option) *WeatherAPIClient {
	return &WeatherAPIClient{endpoint: newEndpoint(DefaultWeatherAPIURL, opts)}
}

type weatherAPIResponse struct {
	Location *struct {
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"location"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Geocode implements Geocoder.
func (c *WeatherAPIClient) Geocode(ctx context.Context, place string) (Location, error) {
	start := time.Now()
	loc, err := c.geocode(ctx, place)

	switch {
	case err == nil:
		metrics.ObserveLookup(weatherService, metrics.OutcomeOK, start)
		c.log.Debug("%q -> %.4f,%.4f", place, loc.LatDeg, loc.LonDeg)
		return loc, nil
	case errors.Is(err, ErrNotFound):
		metrics.ObserveLookup(weatherService, metrics.OutcomeEmpty, start)
	default:
		metrics.ObserveLookup(weatherService, metrics.OutcomeError, start)
	}
	return Location{}, &LookupError{Service: weatherService, Query: place, Err: err}
}

func (c *WeatherAPIClient) geocode(ctx context.Context, place string) (Location, error) {
	if strings.TrimSpace(place) == "" {
		return Location{}, ErrNotFound
	}

	params := url.Values{}
	params.Set("key", c.key)
	params.Set("q", place)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Location{}, fmt.Errorf("read body: %w", err)
	}
	if path, err := c.dump.Write(weatherService, body); err != nil {
		c.log.Warn("dump response: %v", err)
	} else if path != "" {
		c.log.Debug("response saved to %s", path)
	}

	var parsed weatherAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Location{}, fmt.Errorf("status %d: decode: %w", resp.StatusCode, err)
	}

	if parsed.Error != nil {
		if parsed.Error.Code == weatherAPINoMatch {
			return Location{}, ErrNotFound
		}
		return Location{}, fmt.Errorf("status %d: code %d: %s", resp.StatusCode, parsed.Error.Code, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("status %d", resp.StatusCode)
	}
	if parsed.Location == nil {
		return Location{}, fmt.Errorf("response has no location")
	}

	name := parsed.Location.Name
	if parsed.Location.Country != "" {
		name += ", " + parsed.Location.Country
	}
	return Location{Name: name, LatDeg: parsed.Location.Lat, LonDeg: parsed.Location.Lon}, nil
}
