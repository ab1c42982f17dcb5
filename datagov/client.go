package datagov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	geojson "github.com/paulmach/go.geojson"
)

const defaultBase = "https://api-open.data.gov.sg"

// ExitRecord is one flat row from the exits dataset: a free-text station
// label, an exit code and the exit coordinate.
type ExitRecord struct {
	StationName string
	ExitCode    string
	Lat         float64
	Lng         float64
}

// Config holds client construction parameters.
type Config struct {
	BaseURL   string
	DatasetID string
	Timeout   time.Duration
}

// Client downloads the station-exits dataset from data.gov.sg.
type Client struct {
	httpClient *http.Client
	baseURL    string
	datasetID  string
}

// NewClient creates a data.gov.sg dataset client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		datasetID:  cfg.DatasetID,
	}
}

type pollResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// AllExits polls the dataset download endpoint for a signed URL, downloads
// the GeoJSON collection and flattens its features into exit records.
// Features without usable properties or point geometry are skipped.
func (c *Client) AllExits(ctx context.Context) ([]ExitRecord, error) {
	pollURL := fmt.Sprintf("%s/v1/public/api/datasets/%s/poll-download", c.baseURL, c.datasetID)
	body, err := c.get(ctx, pollURL)
	if err != nil {
		return nil, fmt.Errorf("poll download URL: %w", err)
	}
	var poll pollResponse
	if err := json.Unmarshal(body, &poll); err != nil {
		return nil, fmt.Errorf("decode poll response: %w", err)
	}
	if poll.Data.URL == "" {
		return nil, fmt.Errorf("poll response has no download URL")
	}

	raw, err := c.get(ctx, poll.Data.URL)
	if err != nil {
		return nil, fmt.Errorf("download dataset: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse GeoJSON: %w", err)
	}
	return flatten(fc), nil
}

// flatten converts GeoJSON features to exit records. GeoJSON coordinates
// are [lng, lat].
func flatten(fc *geojson.FeatureCollection) []ExitRecord {
	records := make([]ExitRecord, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
			continue
		}
		name, err := f.PropertyString("STATION_NA")
		if err != nil || name == "" {
			continue
		}
		code, err := f.PropertyString("EXIT_CODE")
		if err != nil {
			code = ""
		}
		records = append(records, ExitRecord{
			StationName: name,
			ExitCode:    code,
			Lat:         f.Geometry.Point[1],
			Lng:         f.Geometry.Point[0],
		})
	}
	return records
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
