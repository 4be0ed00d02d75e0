package web

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koshai/npdes/dashboard/client"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMonitoringPointsDropNullsAndBadDates(t *testing.T) {
	records := []client.MonitoringRecord{
		{MonitoringPeriodDate: "01/31/2021", DMRValue: fv(1)},
		{MonitoringPeriodDate: "02/28/2021", DMRValue: nil},
		{MonitoringPeriodDate: "not-a-date", DMRValue: fv(3)},
		{MonitoringPeriodDate: "03/31/2021", DMRValue: fv(4)},
	}

	points := monitoringPoints(records)
	require.Len(t, points, 2)
	assert.Equal(t, 1.0, points[0].V)
	assert.Equal(t, 4.0, points[1].V)
}

func TestBuildChartScalesIntoPlotArea(t *testing.T) {
	vm := BuildChart([]ChartPoint{
		{T: day("2021-01-01"), V: 0},
		{T: day("2021-07-01"), V: 50},
		{T: day("2021-12-31"), V: 100},
	}, "Nitrogen, total")
	require.NotNil(t, vm)

	assert.Equal(t, "Nitrogen, total", vm.Title)
	assert.Equal(t, 3, vm.Count)

	coords := strings.Split(vm.Points, " ")
	require.Len(t, coords, 3)
	// First point sits at the left margin and bottom of the plot area
	assert.Equal(t, "60.0,290.0", coords[0])
	// Last point sits at the right margin and top
	assert.Equal(t, "660.0,30.0", coords[2])

	require.Len(t, vm.YTicks, 4)
	assert.Equal(t, "0.00", vm.YTicks[0].Label)
	assert.Equal(t, "100.00", vm.YTicks[3].Label)
	require.Len(t, vm.XTicks, 3)
	assert.Equal(t, "2021-01-01", vm.XTicks[0].Label)
	assert.Equal(t, "2021-12-31", vm.XTicks[2].Label)
}

func TestBuildChartSortsByTime(t *testing.T) {
	vm := BuildChart([]ChartPoint{
		{T: day("2021-03-01"), V: 3},
		{T: day("2021-01-01"), V: 1},
		{T: day("2021-02-01"), V: 2},
	}, "x")
	require.NotNil(t, vm)

	coords := strings.Split(vm.Points, " ")
	require.Len(t, coords, 3)
	assert.True(t, strings.HasPrefix(coords[0], "60.0,"))
	assert.True(t, strings.HasPrefix(coords[2], "660.0,"))
}

func TestBuildChartSinglePoint(t *testing.T) {
	vm := BuildChart([]ChartPoint{{T: day("2021-01-01"), V: 5}}, "x")
	require.NotNil(t, vm)
	assert.Equal(t, 1, vm.Count)
	assert.NotEmpty(t, vm.Points)
	assert.Len(t, vm.XTicks, 1)
}

func TestBuildChartEmpty(t *testing.T) {
	assert.Nil(t, BuildChart(nil, "x"))
}

func TestWeatherPointsUseMeasurement(t *testing.T) {
	records := []client.WeatherRecord{
		{Date: "2021-06-01", PrcpInches: fv(0.5), TMaxFahrenheit: fv(80)},
		{Date: "2021-06-02", PrcpInches: nil, TMaxFahrenheit: fv(85)},
	}

	prcp := weatherPoints(records, "prcp_inches")
	require.Len(t, prcp, 1)
	assert.Equal(t, 0.5, prcp[0].V)

	tmax := weatherPoints(records, "tmax_fahrenheit")
	assert.Len(t, tmax, 2)
}
