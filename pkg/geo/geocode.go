package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// nominatimResponse is the subset of a Nominatim reverse lookup we use.
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocoder resolves a human-readable address from coordinates via a
// Nominatim-compatible endpoint. It is strictly best-effort: callers that
// want the fallback behavior should use BestEffortAddress.
type ReverseGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewReverseGeocoder creates a geocoder against the given reverse endpoint,
// e.g. https://nominatim.openstreetmap.org/reverse.
func NewReverseGeocoder(baseURL string) *ReverseGeocoder {
	return &ReverseGeocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ReverseGeocode returns the display address for the given coordinates.
func (g *ReverseGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("accept-language", "en")

	requestURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call reverse geocoder: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var result nominatimResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("no address in response")
	}

	return result.DisplayName, nil
}

// BestEffortAddress resolves an address for display, silently falling back
// to a "lat, lng" string when the lookup fails.
func (g *ReverseGeocoder) BestEffortAddress(ctx context.Context, lat, lng float64) string {
	address, err := g.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return CoordinateString(lat, lng)
	}
	return address
}

// CoordinateString formats coordinates as the display fallback string.
func CoordinateString(lat, lng float64) string {
	return fmt.Sprintf("%s, %s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64))
}
