package telematics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 15 * time.Second
	unitCacheTTL    = 10 * time.Minute
	unitCacheSweep  = 30 * time.Minute
	requestsPerSec  = 5
	requestBurst    = 5
	positionMaxSkew = 30 * time.Minute
)

// Position is a GPS/odometer sample returned by the provider.
type Position struct {
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Odometer int64     `json:"odometer"`
	At       time.Time `json:"at"`
}

// PositionProvider fetches the position of a unit closest to a point in time.
type PositionProvider interface {
	PositionAt(ctx context.Context, unitID int64, at time.Time) (Position, error)
}

// Client talks to the telematics provider's HTTP API. Requests are rate
// limited and unit lookups are cached; fuel-card exports repeat the same
// handful of vehicles on every row.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	units   *cache.Cache
}

// NewClient builds a provider client for the given API base URL and key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), requestBurst),
		units:   cache.New(unitCacheTTL, unitCacheSweep),
	}
}

type unitResponse struct {
	Data struct {
		Units []struct {
			UnitID int64  `json:"unit_id"`
			Number string `json:"number"`
		} `json:"units"`
	} `json:"data"`
}

// UnitID resolves a vehicle number to the provider's unit id. Lookup
// failures resolve to absent rather than failing the caller's row.
func (c *Client) UnitID(vehicleNr string) (int64, bool) {
	if v, ok := c.units.Get(vehicleNr); ok {
		return v.(int64), true
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var resp unitResponse
	query := url.Values{"number": {vehicleNr}}
	if err := c.get(ctx, "/unit/list", query, &resp); err != nil {
		log.WithError(err).WithField("vehicle", vehicleNr).Warn("Unit lookup failed")
		return 0, false
	}
	for _, unit := range resp.Data.Units {
		if unit.Number == vehicleNr {
			c.units.Set(vehicleNr, unit.UnitID, cache.DefaultExpiration)
			return unit.UnitID, true
		}
	}
	return 0, false
}

type positionResponse struct {
	Data struct {
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
		Odometer int64   `json:"odometer"`
		At       string  `json:"at"`
	} `json:"data"`
}

// PositionAt fetches the position of a unit closest to the given timestamp.
// Samples further than the allowed skew from the timestamp are rejected.
func (c *Client) PositionAt(ctx context.Context, unitID int64, at time.Time) (Position, error) {
	query := url.Values{
		"unit_id": {strconv.FormatInt(unitID, 10)},
		"at":      {at.Format(time.RFC3339)},
	}
	var resp positionResponse
	if err := c.get(ctx, "/unit/position", query, &resp); err != nil {
		return Position{}, err
	}

	sampledAt, err := time.Parse(time.RFC3339, resp.Data.At)
	if err != nil {
		return Position{}, fmt.Errorf("invalid sample timestamp %q: %w", resp.Data.At, err)
	}
	skew := sampledAt.Sub(at)
	if skew < 0 {
		skew = -skew
	}
	if skew > positionMaxSkew {
		return Position{}, fmt.Errorf("no position within %s of %s for unit %d",
			positionMaxSkew, at.Format(time.RFC3339), unitID)
	}

	return Position{
		Lat:      resp.Data.Lat,
		Lng:      resp.Data.Lng,
		Odometer: resp.Data.Odometer,
		At:       sampledAt,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error calling provider: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding provider response: %w", err)
	}
	return nil
}
