package web

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/koshai/npdes/dashboard/client"
)

const (
	chartWidth   = 720
	chartHeight  = 320
	chartMarginX = 60
	chartMarginY = 30

	monitoringDateLayout = "01/02/2006"
	weatherDateLayout    = "2006-01-02"
)

// ChartPoint is one plottable observation.
type ChartPoint struct {
	T time.Time
	V float64
}

// Tick is one labeled axis position in SVG coordinates.
type Tick struct {
	Pos   float64
	Label string
}

// ChartVM is the server-built SVG line chart. Points is the polyline
// points attribute, already scaled.
type ChartVM struct {
	Title  string
	Width  int
	Height int
	Points string
	XTicks []Tick
	YTicks []Tick
	Count  int
}

// monitoringPoints extracts plottable monitoring observations. Rows with a
// null value or an unparseable period date are dropped from the chart only;
// they still appear in the raw table.
func monitoringPoints(records []client.MonitoringRecord) []ChartPoint {
	points := make([]ChartPoint, 0, len(records))
	for _, r := range records {
		if r.DMRValue == nil {
			continue
		}
		t, err := time.Parse(monitoringDateLayout, r.MonitoringPeriodDate)
		if err != nil {
			continue
		}
		points = append(points, ChartPoint{T: t, V: *r.DMRValue})
	}
	return points
}

// weatherPoints extracts plottable observations for one measurement.
func weatherPoints(records []client.WeatherRecord, measurement string) []ChartPoint {
	points := make([]ChartPoint, 0, len(records))
	for _, r := range records {
		v := measurementValue(r, measurement)
		if v == nil {
			continue
		}
		t, err := time.Parse(weatherDateLayout, r.Date)
		if err != nil {
			continue
		}
		points = append(points, ChartPoint{T: t, V: *v})
	}
	return points
}

// BuildChart scales points into a fixed-size SVG view model. Returns nil
// when there is nothing to plot.
func BuildChart(points []ChartPoint, title string) *ChartVM {
	if len(points) == 0 {
		return nil
	}

	sorted := make([]ChartPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T.Before(sorted[j].T) })

	minT, maxT := sorted[0].T, sorted[len(sorted)-1].T
	minV, maxV := sorted[0].V, sorted[0].V
	for _, p := range sorted {
		if p.V < minV {
			minV = p.V
		}
		if p.V > maxV {
			maxV = p.V
		}
	}

	// Degenerate spans still need a nonzero scale
	tSpan := maxT.Sub(minT).Seconds()
	if tSpan == 0 {
		tSpan = 1
	}
	vSpan := maxV - minV
	if vSpan == 0 {
		vSpan = 1
	}

	plotW := float64(chartWidth - 2*chartMarginX)
	plotH := float64(chartHeight - 2*chartMarginY)

	xFor := func(t time.Time) float64 {
		return float64(chartMarginX) + t.Sub(minT).Seconds()/tSpan*plotW
	}
	yFor := func(v float64) float64 {
		return float64(chartHeight-chartMarginY) - (v-minV)/vSpan*plotH
	}

	var b strings.Builder
	for i, p := range sorted {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", xFor(p.T), yFor(p.V))
	}

	vm := &ChartVM{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Points: b.String(),
		Count:  len(sorted),
	}

	// Four y ticks from min to max
	for i := 0; i <= 3; i++ {
		v := minV + (maxV-minV)*float64(i)/3
		vm.YTicks = append(vm.YTicks, Tick{Pos: yFor(v), Label: fmt.Sprintf("%.2f", v)})
	}

	// X ticks at the span ends plus the midpoint when the span allows
	vm.XTicks = append(vm.XTicks, Tick{Pos: xFor(minT), Label: minT.Format("2006-01-02")})
	if maxT.After(minT) {
		mid := minT.Add(maxT.Sub(minT) / 2)
		vm.XTicks = append(vm.XTicks,
			Tick{Pos: xFor(mid), Label: mid.Format("2006-01-02")},
			Tick{Pos: xFor(maxT), Label: maxT.Format("2006-01-02")},
		)
	}

	return vm
}
