package geo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Position is an ephemeral fix captured for the current session. It is
// never persisted.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // meters, 0 when the provider cannot say
	Timestamp time.Time
}

// Capture failure causes. Anything else collapses to a generic message.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("location request timed out")
)

// FailureMessage maps a capture error to its user-facing message.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Location access was denied. Please allow location access and try again."
	case errors.Is(err, ErrPositionUnavailable):
		return "Your location could not be determined."
	case errors.Is(err, ErrTimeout):
		return "Locating you took too long. Please try again."
	default:
		return "An unknown error occurred while getting your location."
	}
}

// PositionProvider supplies the device position. Implementations should
// honor ctx cancellation and return one of the sentinel errors above when
// the cause is known.
type PositionProvider interface {
	CurrentPosition(ctx context.Context, highAccuracy bool) (Position, error)
}

// ProviderFunc adapts a function to the PositionProvider interface.
type ProviderFunc func(ctx context.Context, highAccuracy bool) (Position, error)

func (f ProviderFunc) CurrentPosition(ctx context.Context, highAccuracy bool) (Position, error) {
	return f(ctx, highAccuracy)
}

// Locator performs single-shot captures with a timeout and tolerates a
// cached fix up to maxAge old. It does not watch continuously.
type Locator struct {
	provider PositionProvider
	timeout  time.Duration
	maxAge   time.Duration

	mu     sync.Mutex
	cached *Position
}

// NewLocator creates a Locator. Zero timeout defaults to 10s and zero
// maxAge to 5 minutes, matching the capture policy of the dashboard.
func NewLocator(provider PositionProvider, timeout, maxAge time.Duration) *Locator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxAge <= 0 {
		maxAge = 5 * time.Minute
	}
	return &Locator{provider: provider, timeout: timeout, maxAge: maxAge}
}

// Locate returns the current position, reusing a cached fix younger than
// maxAge. High accuracy is always requested on a fresh capture.
func (l *Locator) Locate(ctx context.Context) (Position, error) {
	l.mu.Lock()
	if l.cached != nil && time.Since(l.cached.Timestamp) <= l.maxAge {
		pos := *l.cached
		l.mu.Unlock()
		return pos, nil
	}
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	pos, err := l.provider.CurrentPosition(ctx, true)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Position{}, ErrTimeout
		}
		return Position{}, err
	}
	if pos.Timestamp.IsZero() {
		pos.Timestamp = time.Now()
	}

	l.mu.Lock()
	l.cached = &pos
	l.mu.Unlock()
	return pos, nil
}

// Invalidate drops the cached fix so the next Locate captures again.
func (l *Locator) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

// EnvProvider reads a fixed position from STOREBOARD_LATITUDE and
// STOREBOARD_LONGITUDE. It stands in for a platform geolocation service
// when the CLI runs on hosts without one.
type EnvProvider struct{}

func (EnvProvider) CurrentPosition(_ context.Context, _ bool) (Position, error) {
	latStr, lngStr := os.Getenv("STOREBOARD_LATITUDE"), os.Getenv("STOREBOARD_LONGITUDE")
	if latStr == "" || lngStr == "" {
		return Position{}, ErrPositionUnavailable
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Position{}, fmt.Errorf("%w: bad STOREBOARD_LATITUDE", ErrPositionUnavailable)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return Position{}, fmt.Errorf("%w: bad STOREBOARD_LONGITUDE", ErrPositionUnavailable)
	}
	return Position{Latitude: lat, Longitude: lng, Timestamp: time.Now()}, nil
}
