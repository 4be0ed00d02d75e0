package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koshai/npdes/dashboard/client"
	"github.com/koshai/npdes/internal/logger"
)

type mockAPI struct {
	filters        func() (client.MonitoringFilterSet, error)
	data           func(client.MonitoringParams) ([]client.MonitoringRecord, error)
	weatherFilters func() (client.WeatherFilterSet, error)
	weatherData    func(client.WeatherParams) ([]client.WeatherRecord, error)
}

func (m *mockAPI) Filters() (client.MonitoringFilterSet, error) {
	if m.filters == nil {
		return client.MonitoringFilterSet{}, nil
	}
	return m.filters()
}

func (m *mockAPI) Data(p client.MonitoringParams) ([]client.MonitoringRecord, error) {
	if m.data == nil {
		return nil, nil
	}
	return m.data(p)
}

func (m *mockAPI) WeatherFilters() (client.WeatherFilterSet, error) {
	if m.weatherFilters == nil {
		return client.WeatherFilterSet{}, nil
	}
	return m.weatherFilters()
}

func (m *mockAPI) WeatherData(p client.WeatherParams) ([]client.WeatherRecord, error) {
	if m.weatherData == nil {
		return nil, nil
	}
	return m.weatherData(p)
}

func newTestServer(api API) *Server {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	return NewServer(api, "0", clock, logger.New(false))
}

func fv(v float64) *float64 { return &v }

func TestMonitoringPage_Idle(t *testing.T) {
	api := &mockAPI{
		filters: func() (client.MonitoringFilterSet, error) {
			return client.MonitoringFilterSet{OutfallNumbers: []string{"001A"}}, nil
		},
	}
	srv := newTestServer(api)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "001A")
	assert.Contains(t, body, "Select filters and apply")
	assert.NotContains(t, body, "Descriptive statistics")
	assert.Contains(t, body, "Last updated 2024-03-01 09:00:00 UTC")
}

func TestMonitoringPage_SubmitRendersChartAndStats(t *testing.T) {
	api := &mockAPI{
		data: func(p client.MonitoringParams) ([]client.MonitoringRecord, error) {
			assert.Equal(t, "001A", p.Outfall)
			return []client.MonitoringRecord{
				{MonitoringPeriodDate: "01/31/2021", DMRValue: fv(1)},
				{MonitoringPeriodDate: "02/28/2021", DMRValue: fv(2)},
				{MonitoringPeriodDate: "03/31/2021", DMRValue: fv(3)},
				{MonitoringPeriodDate: "04/30/2021", DMRValue: fv(4)},
			}, nil
		},
	}
	srv := newTestServer(api)

	req := httptest.NewRequest(http.MethodGet, "/?submitted=1&outfall=001A", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Descriptive statistics")
	assert.Contains(t, body, "<polyline")
	assert.Contains(t, body, "2.5000") // mean and median
	assert.Contains(t, body, "1.2910") // sample stdev
	assert.Contains(t, body, "4 plotted readings")
}

func TestMonitoringPage_EmptyState(t *testing.T) {
	api := &mockAPI{
		data: func(client.MonitoringParams) ([]client.MonitoringRecord, error) {
			return []client.MonitoringRecord{}, nil
		},
	}
	srv := newTestServer(api)

	req := httptest.NewRequest(http.MethodGet, "/?submitted=1", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No rows matched")
}

func TestMonitoringPage_AllNullValues(t *testing.T) {
	api := &mockAPI{
		data: func(client.MonitoringParams) ([]client.MonitoringRecord, error) {
			return []client.MonitoringRecord{
				{MonitoringPeriodDate: "01/31/2021", DMRComments: "estimate"},
			}, nil
		},
	}
	srv := newTestServer(api)

	req := httptest.NewRequest(http.MethodGet, "/?submitted=1", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "No numeric values")
	// Rows without numeric readings still show in the raw table
	assert.Contains(t, body, "estimate")
	assert.NotContains(t, body, "<polyline")
}

func TestMonitoringPage_ErrorState(t *testing.T) {
	api := &mockAPI{
		data: func(client.MonitoringParams) ([]client.MonitoringRecord, error) {
			return nil, errors.New("query service returned 500: boom")
		},
	}
	srv := newTestServer(api)

	req := httptest.NewRequest(http.MethodGet, "/?submitted=1", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Query failed")
	assert.Contains(t, rr.Body.String(), "boom")
}

func TestMonitoringPage_FilterFailureStillRenders(t *testing.T) {
	api := &mockAPI{
		filters: func() (client.MonitoringFilterSet, error) {
			return client.MonitoringFilterSet{}, errors.New("query service unreachable")
		},
	}
	srv := newTestServer(api)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Filter options unavailable")
}

func TestWeatherPage_SubmitWithMeasurement(t *testing.T) {
	api := &mockAPI{
		weatherFilters: func() (client.WeatherFilterSet, error) {
			return client.WeatherFilterSet{StationIDs: []string{"USW00013740"}}, nil
		},
		weatherData: func(p client.WeatherParams) ([]client.WeatherRecord, error) {
			assert.Equal(t, "USW00013740", p.StationID)
			return []client.WeatherRecord{
				{Date: "2021-06-01", TMaxFahrenheit: fv(75), PrcpInches: fv(0.2)},
				{Date: "2021-06-02", TMaxFahrenheit: fv(82), PrcpInches: nil},
			}, nil
		},
	}
	srv := newTestServer(api)

	req := httptest.NewRequest(http.MethodGet, "/weather?submitted=1&station_id=USW00013740&measurement=tmax_fahrenheit", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Max temperature (F)")
	assert.Contains(t, body, "2 plotted observations")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&mockAPI{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
