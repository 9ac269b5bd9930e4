package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "HRMS-Attendance-System"
	DefaultTimeout   = 5 * time.Second

	maxResponseBytes = 1 << 20
)

// Nominatim is a ReverseGeocoder backed by a Nominatim-compatible /reverse endpoint.
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error,omitempty"`
}

// NewNominatim creates a client. Empty values fall back to the defaults.
func NewNominatim(baseURL, userAgent string, timeout time.Duration) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Reverse implements ReverseGeocoder. Exactly one request is made.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) string {
	address, err := n.lookup(ctx, lat, lon)
	if err != nil {
		slog.Warn("Reverse geocoding failed, using coordinates", "lat", lat, "lon", lon, "error", err)
		return Fallback(lat, lon)
	}
	return address
}

func (n *Nominatim) lookup(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if body.Error != "" {
		return "", fmt.Errorf("lookup error: %s", body.Error)
	}

	address := strings.TrimSpace(body.DisplayName)
	if address == "" {
		return "", fmt.Errorf("empty display_name")
	}
	return address, nil
}
