package web

import (
	"github.com/koshai/npdes/dashboard/client"
	"github.com/koshai/npdes/dashboard/stats"
)

// FetchState is the dashboard page lifecycle. Idle until the user submits,
// Loading while the query service is being called, then exactly one of
// Success, Empty, or Error.
type FetchState string

const (
	StateIdle    FetchState = "idle"
	StateLoading FetchState = "loading"
	StateSuccess FetchState = "success"
	StateEmpty   FetchState = "empty"
	StateError   FetchState = "error"
)

// MonitoringView is the full render state of the monitoring page. It is a
// plain serializable value; the handler builds one per request and hands
// it to the template, with no state held between requests.
type MonitoringView struct {
	State       FetchState
	Filters     client.MonitoringFilterSet
	FiltersErr  string
	Params      client.MonitoringParams
	Records     []client.MonitoringRecord
	Chart       *ChartVM
	Stats       *stats.Summary
	EmptyReason string
	Error       string
	LastUpdated string
}

// NewMonitoringView returns the idle page with empty dropdowns.
func NewMonitoringView() *MonitoringView {
	return &MonitoringView{State: StateIdle}
}

// SetFilters records the dropdown fetch outcome. A filter failure does not
// change the page state; the dropdowns just render empty with a notice.
func (v *MonitoringView) SetFilters(fs client.MonitoringFilterSet, err error) {
	if err != nil {
		v.FiltersErr = err.Error()
		return
	}
	v.Filters = fs
}

// Submit moves the view into Loading with the user's selection.
func (v *MonitoringView) Submit(p client.MonitoringParams) {
	v.State = StateLoading
	v.Params = p
}

// Resolve settles a Loading view with the data fetch outcome.
func (v *MonitoringView) Resolve(records []client.MonitoringRecord, err error) {
	if v.State != StateLoading {
		return
	}
	if err != nil {
		v.State = StateError
		v.Error = err.Error()
		return
	}
	v.Records = records
	if len(records) == 0 {
		v.State = StateEmpty
		v.EmptyReason = "No rows matched the selected filters."
		return
	}

	values := make([]*float64, len(records))
	for i := range records {
		values[i] = records[i].DMRValue
	}
	numeric := stats.FloatValues(values)
	if len(numeric) == 0 {
		// Rows exist but none carry a numeric reading; the raw table still
		// renders, the chart and statistics do not.
		v.State = StateEmpty
		v.EmptyReason = "No numeric values among the matched rows."
		return
	}

	summary := stats.Describe(numeric)
	v.Stats = &summary
	v.Chart = BuildChart(monitoringPoints(records), chartTitle(v.Params))
	v.State = StateSuccess
}

func chartTitle(p client.MonitoringParams) string {
	if p.Parameter != "" {
		return p.Parameter
	}
	return "DMR value"
}

// weatherMeasurements maps the measurement selector values to labels, in
// display order.
var weatherMeasurements = []WeatherMeasurement{
	{Key: "prcp_inches", Label: "Precipitation (in)"},
	{Key: "snow_inches", Label: "Snowfall (in)"},
	{Key: "snwd_inches", Label: "Snow depth (in)"},
	{Key: "tavg_fahrenheit", Label: "Avg temperature (F)"},
	{Key: "tmax_fahrenheit", Label: "Max temperature (F)"},
	{Key: "tmin_fahrenheit", Label: "Min temperature (F)"},
}

// WeatherMeasurement is one entry of the measurement selector.
type WeatherMeasurement struct {
	Key   string
	Label string
}

func measurementValue(r client.WeatherRecord, key string) *float64 {
	switch key {
	case "tavg_fahrenheit":
		return r.TAvgFahrenheit
	case "tmax_fahrenheit":
		return r.TMaxFahrenheit
	case "tmin_fahrenheit":
		return r.TMinFahrenheit
	case "prcp_inches":
		return r.PrcpInches
	case "snow_inches":
		return r.SnowInches
	case "snwd_inches":
		return r.SnwdInches
	default:
		return nil
	}
}

func measurementLabel(key string) string {
	for _, m := range weatherMeasurements {
		if m.Key == key {
			return m.Label
		}
	}
	return key
}

// WeatherView is the full render state of the weather page.
type WeatherView struct {
	State        FetchState
	Filters      client.WeatherFilterSet
	FiltersErr   string
	Params       client.WeatherParams
	Measurement  string
	Measurements []WeatherMeasurement
	Records      []client.WeatherRecord
	Chart        *ChartVM
	Stats        *stats.Summary
	EmptyReason  string
	Error        string
	LastUpdated  string
}

// NewWeatherView returns the idle weather page with the default measurement.
func NewWeatherView() *WeatherView {
	return &WeatherView{
		State:        StateIdle,
		Measurement:  "prcp_inches",
		Measurements: weatherMeasurements,
	}
}

// SetFilters records the dropdown fetch outcome.
func (v *WeatherView) SetFilters(fs client.WeatherFilterSet, err error) {
	if err != nil {
		v.FiltersErr = err.Error()
		return
	}
	v.Filters = fs
}

// Submit moves the view into Loading with the user's selection. Unknown
// measurement keys keep the default.
func (v *WeatherView) Submit(p client.WeatherParams, measurement string) {
	v.State = StateLoading
	v.Params = p
	for _, m := range weatherMeasurements {
		if m.Key == measurement {
			v.Measurement = measurement
			break
		}
	}
}

// Resolve settles a Loading view with the data fetch outcome.
func (v *WeatherView) Resolve(records []client.WeatherRecord, err error) {
	if v.State != StateLoading {
		return
	}
	if err != nil {
		v.State = StateError
		v.Error = err.Error()
		return
	}
	v.Records = records
	if len(records) == 0 {
		v.State = StateEmpty
		v.EmptyReason = "No rows matched the selected filters."
		return
	}

	values := make([]*float64, len(records))
	for i := range records {
		values[i] = measurementValue(records[i], v.Measurement)
	}
	numeric := stats.FloatValues(values)
	if len(numeric) == 0 {
		v.State = StateEmpty
		v.EmptyReason = "No numeric values among the matched rows."
		return
	}

	summary := stats.Describe(numeric)
	v.Stats = &summary
	v.Chart = BuildChart(weatherPoints(records, v.Measurement), measurementLabel(v.Measurement))
	v.State = StateSuccess
}
