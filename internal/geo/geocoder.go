package geo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"matchengine/internal/common/logger"
	"matchengine/internal/common/metrics"

	"github.com/go-resty/resty/v2"
)

// Resolver turns a free-text location into coordinates. The second return
// is false when the location cannot be resolved; no error is ever surfaced —
// callers skip unresolved entities rather than failing the request.
type Resolver interface {
	Resolve(ctx context.Context, location string) (Coordinate, bool)
}

// Config holds settings for the Nominatim lookup client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent: "HireBuzz-MatchEngine/1.0 (job board matching service)",
		Timeout:   10 * time.Second,
	}
}

// Geocoder resolves locations against the OpenStreetMap Nominatim API.
type Geocoder struct {
	client *resty.Client
	logger logger.Logger
}

func NewGeocoder(cfg Config, log logger.Logger) *Geocoder {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)

	return &Geocoder{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "geocoder"}),
	}
}

// Resolve issues a single lookup and takes the first candidate. Blank input
// and the "remote"/"anywhere" placeholders short-circuit without a request.
// Network, parsing, and empty-result failures all collapse to unresolved.
func (g *Geocoder) Resolve(ctx context.Context, location string) (Coordinate, bool) {
	if IsUnlocatable(location) {
		return Coordinate{}, false
	}

	var results []nominatimResult
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      location,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		g.logger.Warn("geocode lookup failed", map[string]interface{}{
			"location": location,
			"error":    err.Error(),
		})
		metrics.GeocodeLookups.WithLabelValues("unresolved").Inc()
		return Coordinate{}, false
	}
	if resp.IsError() || len(results) == 0 {
		metrics.GeocodeLookups.WithLabelValues("unresolved").Inc()
		return Coordinate{}, false
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		g.logger.Warn("geocode response malformed", map[string]interface{}{
			"location": location,
			"lat":      results[0].Lat,
			"lon":      results[0].Lon,
		})
		metrics.GeocodeLookups.WithLabelValues("unresolved").Inc()
		return Coordinate{}, false
	}

	metrics.GeocodeLookups.WithLabelValues("resolved").Inc()
	return Coordinate{Latitude: lat, Longitude: lon}, true
}

// IsUnlocatable reports whether a location string should never be geocoded:
// blank, "remote", or "anywhere" (case-insensitive).
func IsUnlocatable(location string) bool {
	s := strings.ToLower(strings.TrimSpace(location))
	return s == "" || s == "remote" || s == "anywhere"
}
