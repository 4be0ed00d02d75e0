package query

// Weather dates are stored canonically as YYYY-MM-DD, so no format string
// is needed; conversion from other source formats happens at ingestion.
const weatherDateExpr = "toDate(date)"

// WeatherParams are the optional daily-observation filters. Semantics
// match MonitoringParams: empty string means no constraint.
type WeatherParams struct {
	StationID        string
	ParentFacilityID string
	StartDate        string
	EndDate          string
	Limit            int
}

func (p WeatherParams) predicates() []Predicate {
	var preds []Predicate
	if p.StationID != "" {
		preds = append(preds, Predicate{Column: "station_id", Op: OpEq, Arg: p.StationID})
	}
	if p.ParentFacilityID != "" {
		preds = append(preds, Predicate{Column: "parent_facility_id", Op: OpEq, Arg: p.ParentFacilityID})
	}
	if p.StartDate != "" {
		preds = append(preds, Predicate{Column: weatherDateExpr, Op: OpGte, Placeholder: "toDate(?)", Arg: p.StartDate})
	}
	if p.EndDate != "" {
		preds = append(preds, Predicate{Column: weatherDateExpr, Op: OpLte, Placeholder: "toDate(?)", Arg: p.EndDate})
	}
	return preds
}

// Weather builds the filtered daily-observation query against table.
// Bound argument order: station_id, parent_facility_id, start_date,
// end_date, limit.
func Weather(table string, p WeatherParams) (Query, error) {
	columns := []string{
		"date",
		"toFloat64OrNull(tavg_fahrenheit) AS tavg_fahrenheit",
		"toFloat64OrNull(tmax_fahrenheit) AS tmax_fahrenheit",
		"toFloat64OrNull(tmin_fahrenheit) AS tmin_fahrenheit",
		"toFloat64OrNull(prcp_inches) AS prcp_inches",
		"toFloat64OrNull(snow_inches) AS snow_inches",
		"toFloat64OrNull(snwd_inches) AS snwd_inches",
		"station_id",
		"parent_facility_id",
		"source_file_name",
		"ingestion_timestamp",
	}
	return build(columns, table, p.predicates(), weatherDateExpr, p.Limit)
}

// WeatherFilterColumns are the weather dropdown columns, in response order.
var WeatherFilterColumns = []string{
	"station_id",
	"parent_facility_id",
}
