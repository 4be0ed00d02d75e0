package query

// monitoringDateExpr parses the stored MM/DD/YYYY text into a date for
// range comparison and result ordering.
const monitoringDateExpr = "parseDateTime(monitoring_period_date, '%m/%d/%Y')"

// MonitoringParams are the optional discharge-monitoring filters. A zero
// value for any field means no constraint on that column. Limit must be
// resolved by the caller before building; the builder binds it as-is.
type MonitoringParams struct {
	Outfall   string
	Parameter string
	Base      string
	Unit      string
	StartDate string
	EndDate   string
	Limit     int
}

func (p MonitoringParams) predicates() []Predicate {
	var preds []Predicate
	if p.Outfall != "" {
		preds = append(preds, Predicate{Column: "outfall_number", Op: OpEq, Arg: p.Outfall})
	}
	if p.Parameter != "" {
		preds = append(preds, Predicate{Column: "parameter_description", Op: OpEq, Arg: p.Parameter})
	}
	if p.Base != "" {
		preds = append(preds, Predicate{Column: "statistical_base", Op: OpEq, Arg: p.Base})
	}
	if p.Unit != "" {
		preds = append(preds, Predicate{Column: "dmr_value_unit", Op: OpEq, Arg: p.Unit})
	}
	// Date bounds are inclusive. The raw string is bound and cast server
	// side, so a malformed date fails at the warehouse, not here.
	if p.StartDate != "" {
		preds = append(preds, Predicate{Column: monitoringDateExpr, Op: OpGte, Placeholder: "toDate(?)", Arg: p.StartDate})
	}
	if p.EndDate != "" {
		preds = append(preds, Predicate{Column: monitoringDateExpr, Op: OpLte, Placeholder: "toDate(?)", Arg: p.EndDate})
	}
	return preds
}

// Monitoring builds the filtered discharge-monitoring query against table.
// Bound argument order: outfall, parameter, base, unit, start_date,
// end_date, limit (absent filters are skipped, limit is always last).
func Monitoring(table string, p MonitoringParams) (Query, error) {
	columns := []string{
		"monitoring_period_date",
		"toFloat64OrNull(dmr_value) AS dmr_value",
		"outfall_number",
		"parameter_description",
		"statistical_base",
		"dmr_value_unit",
		"npdes_permit_number",
		"dmr_comments",
		"source_file_name",
		"ingestion_timestamp",
	}
	return build(columns, table, p.predicates(), monitoringDateExpr, p.Limit)
}

// MonitoringFilterColumns are the dropdown keys and their backing columns,
// in response order.
var MonitoringFilterColumns = []string{
	"outfall_number",
	"parameter_description",
	"statistical_base",
	"dmr_value_unit",
}
