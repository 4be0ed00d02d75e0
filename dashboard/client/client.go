// Package client is the dashboard's HTTP client for the query service.
package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/koshai/npdes/dashboard/metrics"
)

const (
	filtersTimeout = 30 * time.Second
	dataTimeout    = 60 * time.Second
)

// MonitoringRecord mirrors the query service's monitoring row shape.
type MonitoringRecord struct {
	MonitoringPeriodDate string   `json:"monitoring_period_date"`
	DMRValue             *float64 `json:"dmr_value"`
	OutfallNumber        string   `json:"outfall_number"`
	ParameterDescription string   `json:"parameter_description"`
	StatisticalBase      string   `json:"statistical_base"`
	DMRValueUnit         string   `json:"dmr_value_unit"`
	NPDESPermitNumber    string   `json:"npdes_permit_number"`
	DMRComments          string   `json:"dmr_comments"`
	SourceFileName       string   `json:"source_file_name"`
	IngestionTimestamp   *string  `json:"ingestion_timestamp"`
}

// WeatherRecord mirrors the query service's weather row shape.
type WeatherRecord struct {
	Date               string   `json:"date"`
	TAvgFahrenheit     *float64 `json:"tavg_fahrenheit"`
	TMaxFahrenheit     *float64 `json:"tmax_fahrenheit"`
	TMinFahrenheit     *float64 `json:"tmin_fahrenheit"`
	PrcpInches         *float64 `json:"prcp_inches"`
	SnowInches         *float64 `json:"snow_inches"`
	SnwdInches         *float64 `json:"snwd_inches"`
	StationID          string   `json:"station_id"`
	ParentFacilityID   string   `json:"parent_facility_id"`
	SourceFileName     string   `json:"source_file_name"`
	IngestionTimestamp *string  `json:"ingestion_timestamp"`
}

// MonitoringFilterSet holds the monitoring dropdown values.
type MonitoringFilterSet struct {
	OutfallNumbers        []string `json:"outfall_numbers"`
	ParameterDescriptions []string `json:"parameter_descriptions"`
	StatisticalBases      []string `json:"statistical_bases"`
	DMRValueUnits         []string `json:"dmr_value_units"`
}

// WeatherFilterSet holds the weather dropdown values.
type WeatherFilterSet struct {
	StationIDs        []string `json:"station_ids"`
	ParentFacilityIDs []string `json:"parent_facility_ids"`
}

// MonitoringParams are the user-selected monitoring filters. Empty fields
// are omitted from the request entirely.
type MonitoringParams struct {
	Outfall   string
	Parameter string
	Base      string
	Unit      string
	StartDate string
	EndDate   string
	Limit     int
}

// WeatherParams are the user-selected weather filters.
type WeatherParams struct {
	StationID        string
	ParentFacilityID string
	StartDate        string
	EndDate          string
	Limit            int
}

// Client talks to the query service. Filter lookups use a shorter timeout
// than data fetches; neither retries.
type Client struct {
	baseURL string
	filters *http.Client
	data    *http.Client
}

// New creates a Client for the query service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		filters: &http.Client{Timeout: filtersTimeout},
		data:    &http.Client{Timeout: dataTimeout},
	}
}

// Filters fetches the monitoring dropdown values.
func (c *Client) Filters() (MonitoringFilterSet, error) {
	var fs MonitoringFilterSet
	err := c.get(c.filters, "/filters", nil, &fs)
	return fs, err
}

// Data fetches filtered monitoring records.
func (c *Client) Data(p MonitoringParams) ([]MonitoringRecord, error) {
	values := url.Values{}
	setIfPresent(values, "outfall", p.Outfall)
	setIfPresent(values, "parameter", p.Parameter)
	setIfPresent(values, "base", p.Base)
	setIfPresent(values, "unit", p.Unit)
	setIfPresent(values, "start_date", p.StartDate)
	setIfPresent(values, "end_date", p.EndDate)
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	var resp struct {
		Data []MonitoringRecord `json:"data"`
	}
	if err := c.get(c.data, "/data", values, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DataByOutfall fetches the full history for one outfall.
func (c *Client) DataByOutfall(outfall string, limit int) ([]MonitoringRecord, error) {
	values := url.Values{}
	values.Set("outfall", outfall)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Data []MonitoringRecord `json:"data"`
	}
	if err := c.get(c.data, "/data/by-outfall", values, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// WeatherFilters fetches the weather dropdown values.
func (c *Client) WeatherFilters() (WeatherFilterSet, error) {
	var fs WeatherFilterSet
	err := c.get(c.filters, "/weather/filters", nil, &fs)
	return fs, err
}

// WeatherData fetches filtered daily weather observations.
func (c *Client) WeatherData(p WeatherParams) ([]WeatherRecord, error) {
	values := url.Values{}
	setIfPresent(values, "station_id", p.StationID)
	setIfPresent(values, "parent_facility_id", p.ParentFacilityID)
	setIfPresent(values, "start_date", p.StartDate)
	setIfPresent(values, "end_date", p.EndDate)
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	var resp struct {
		Data []WeatherRecord `json:"data"`
	}
	if err := c.get(c.data, "/weather/data", values, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func setIfPresent(values url.Values, key, val string) {
	if val != "" {
		values.Set(key, val)
	}
}

// get performs one GET and decodes the JSON body into out. Non-2xx
// responses surface the server's error message.
func (c *Client) get(hc *http.Client, path string, values url.Values, out any) error {
	u := c.baseURL + path
	if len(values) > 0 {
		u += "?" + values.Encode()
	}

	start := time.Now()
	resp, err := hc.Get(u)
	metrics.APICallLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APICallsTotal.WithLabelValues(path, "error").Inc()
		return fmt.Errorf("query service unreachable: %w", err)
	}
	defer resp.Body.Close()

	metrics.APICallsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			return fmt.Errorf("query service returned %d: %s", resp.StatusCode, body.Error)
		}
		return fmt.Errorf("query service returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}
