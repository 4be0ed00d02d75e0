package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSendsOnlySelectedFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/data", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	records, err := c.Data(MonitoringParams{Outfall: "001A", StartDate: "2021-01-01", Limit: 500})
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.Contains(t, gotQuery, "outfall=001A")
	assert.Contains(t, gotQuery, "start_date=2021-01-01")
	assert.Contains(t, gotQuery, "limit=500")
	assert.NotContains(t, gotQuery, "parameter")
	assert.NotContains(t, gotQuery, "end_date")
}

func TestDataDecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [
			{"monitoring_period_date": "01/31/2021", "dmr_value": 3.1, "outfall_number": "001A",
			 "parameter_description": "Nitrogen, total", "statistical_base": "MO AVG",
			 "dmr_value_unit": "mg/L", "npdes_permit_number": "VA0088986", "dmr_comments": "",
			 "source_file_name": "dmr.csv", "ingestion_timestamp": null},
			{"monitoring_period_date": "02/28/2021", "dmr_value": null, "outfall_number": "001A",
			 "parameter_description": "Nitrogen, total", "statistical_base": "MO AVG",
			 "dmr_value_unit": "mg/L", "npdes_permit_number": "VA0088986", "dmr_comments": "estimate",
			 "source_file_name": "dmr.csv", "ingestion_timestamp": "2023-05-01T12:30:00Z"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	records, err := c.Data(MonitoringParams{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].DMRValue)
	assert.Equal(t, 3.1, *records[0].DMRValue)
	assert.Nil(t, records[0].IngestionTimestamp)

	assert.Nil(t, records[1].DMRValue)
	require.NotNil(t, records[1].IngestionTimestamp)
	assert.Equal(t, "2023-05-01T12:30:00Z", *records[1].IngestionTimestamp)
}

func TestServerErrorMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "table does not exist"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Data(MonitoringParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "table does not exist")
}

func TestFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filters", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"outfall_numbers": ["001A", "002B"],
			"parameter_descriptions": ["Nitrogen, total"],
			"statistical_bases": [],
			"dmr_value_units": ["mg/L"]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	fs, err := c.Filters()
	require.NoError(t, err)
	assert.Equal(t, []string{"001A", "002B"}, fs.OutfallNumbers)
	assert.Empty(t, fs.StatisticalBases)
}

func TestWeatherData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather/data", r.URL.Path)
		assert.Equal(t, "USW00013740", r.URL.Query().Get("station_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [
			{"date": "2021-06-01", "tavg_fahrenheit": null, "tmax_fahrenheit": 75.0,
			 "tmin_fahrenheit": 55.0, "prcp_inches": 0.0, "snow_inches": null, "snwd_inches": null,
			 "station_id": "USW00013740", "parent_facility_id": "VA0088986",
			 "source_file_name": "ghcn.csv", "ingestion_timestamp": null}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	records, err := c.WeatherData(WeatherParams{StationID: "USW00013740"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].TAvgFahrenheit)
	require.NotNil(t, records[0].TMaxFahrenheit)
	assert.Equal(t, 75.0, *records[0].TMaxFahrenheit)
}

func TestDataByOutfall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/by-outfall", r.URL.Path)
		assert.Equal(t, "001A", r.URL.Query().Get("outfall"))
		assert.Equal(t, "10000", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.DataByOutfall("001A", 10000)
	require.NoError(t, err)
}

func TestUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.Filters()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
