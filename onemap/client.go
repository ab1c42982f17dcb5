package onemap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/sgraildata/station-registry/geo"
	"github.com/sgraildata/station-registry/matcher"
)

const (
	searchPath  = "/api/common/elastic/search"
	nearbyPath  = "/api/public/nearbysvc/getNearestMrtStops"
	retryDelay  = 500 * time.Millisecond
	defaultBase = "https://www.onemap.gov.sg"
)

// Config holds client construction parameters.
type Config struct {
	BaseURL string
	// APIKey is sent as the Authorization header when set. Search works
	// without one, at a lower rate limit.
	APIKey            string
	RequestsPerSecond float64
	MaxRetries        int
	Timeout           time.Duration
}

// Client talks to the OneMap place directory. It implements
// matcher.Searcher and matcher.NearbyFinder.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient creates a OneMap client with client-side rate limiting and
// bounded retry.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBase
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		maxRetries: cfg.MaxRetries,
	}
}

// searchResult is the wire shape of one elastic-search hit. OneMap returns
// coordinates as strings.
type searchResult struct {
	Building  string `json:"BUILDING"`
	Latitude  string `json:"LATITUDE"`
	Longitude string `json:"LONGITUDE"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// nearbyStop is the wire shape of one nearest-MRT-stop result.
type nearbyStop struct {
	StationName string `json:"MRT_STATION_NAME"`
	CACode      string `json:"MRT_CA_CODE"`
}

type nearbyResponse struct {
	Results []nearbyStop `json:"results"`
}

// Search queries the free-text place search and returns candidates with
// parseable coordinates. Hits with malformed coordinate fields are skipped
// rather than failing the query.
func (c *Client) Search(ctx context.Context, query string) ([]matcher.Candidate, error) {
	raw, err := c.rawSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]matcher.Candidate, 0, len(raw))
	for _, r := range raw {
		lat, latErr := strconv.ParseFloat(r.Latitude, 64)
		lng, lngErr := strconv.ParseFloat(r.Longitude, 64)
		if r.Building == "" || latErr != nil || lngErr != nil {
			continue
		}
		out = append(out, matcher.Candidate{
			Name:     r.Building,
			Location: geo.Point{Lat: lat, Lng: lng},
		})
	}
	return out, nil
}

// NearestStations returns rail stops near p, nearest first.
func (c *Client) NearestStations(ctx context.Context, p geo.Point) ([]matcher.NearbyStation, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(p.Lng, 'f', -1, 64))
	params.Set("pagenum", "1")

	var resp nearbyResponse
	if err := c.getJSON(ctx, nearbyPath, params, &resp); err != nil {
		return nil, fmt.Errorf("nearest MRT stops: %w", err)
	}
	out := make([]matcher.NearbyStation, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.StationName == "" && r.CACode == "" {
			continue
		}
		out = append(out, matcher.NearbyStation{Name: r.StationName, Code: r.CACode})
	}
	return out, nil
}

func (c *Client) rawSearch(ctx context.Context, query string) ([]searchResult, error) {
	params := url.Values{}
	params.Set("searchVal", query)
	params.Set("returnGeom", "Y")
	params.Set("getAddrDetails", "Y")

	var resp searchResponse
	if err := c.getJSON(ctx, searchPath, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return resp.Results, nil
}

// getJSON performs a rate-limited GET with bounded retry and decodes the
// JSON body into v.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay * time.Duration(attempt)):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		lastErr = c.doGet(ctx, path, params, v)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
