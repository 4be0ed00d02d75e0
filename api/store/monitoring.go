package store

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/koshai/npdes/api/query"
)

// MonitoringRecord is one discharge-monitoring report line. Field names
// match the warehouse columns; immutable, produced only by the upstream
// ingestion pipeline.
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

// MonitoringFilterSet holds the dropdown values for the monitoring page.
// Every key is always present, possibly as an empty array.
type MonitoringFilterSet struct {
	OutfallNumbers        []string `json:"outfall_numbers"`
	ParameterDescriptions []string `json:"parameter_descriptions"`
	StatisticalBases      []string `json:"statistical_bases"`
	DMRValueUnits         []string `json:"dmr_value_units"`
}

// Monitoring returns filtered monitoring records in monitoring-period order.
func (s *Store) Monitoring(ctx context.Context, p query.MonitoringParams) ([]MonitoringRecord, error) {
	q, err := query.Monitoring(s.monitoringTable, p)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []MonitoringRecord{}
	for rows.Next() {
		var r MonitoringRecord
		var ingested *time.Time
		if err := rows.Scan(
			&r.MonitoringPeriodDate,
			&r.DMRValue,
			&r.OutfallNumber,
			&r.ParameterDescription,
			&r.StatisticalBase,
			&r.DMRValueUnit,
			&r.NPDESPermitNumber,
			&r.DMRComments,
			&r.SourceFileName,
			&ingested,
		); err != nil {
			return nil, err
		}
		r.IngestionTimestamp = formatTimestamp(ingested)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// MonitoringFilters runs the independent distinct-value lookups that
// populate the monitoring dropdowns.
func (s *Store) MonitoringFilters(ctx context.Context) (MonitoringFilterSet, error) {
	var fs MonitoringFilterSet

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vals, err := s.distinct(ctx, s.monitoringTable, "outfall_number")
		if err != nil {
			return err
		}
		fs.OutfallNumbers = vals
		return nil
	})
	g.Go(func() error {
		vals, err := s.distinct(ctx, s.monitoringTable, "parameter_description")
		if err != nil {
			return err
		}
		fs.ParameterDescriptions = vals
		return nil
	})
	g.Go(func() error {
		vals, err := s.distinct(ctx, s.monitoringTable, "statistical_base")
		if err != nil {
			return err
		}
		fs.StatisticalBases = vals
		return nil
	})
	g.Go(func() error {
		vals, err := s.distinct(ctx, s.monitoringTable, "dmr_value_unit")
		if err != nil {
			return err
		}
		fs.DMRValueUnits = vals
		return nil
	})

	if err := g.Wait(); err != nil {
		return MonitoringFilterSet{}, err
	}
	return fs, nil
}

// distinct returns the ordered non-null values of one column.
func (s *Store) distinct(ctx context.Context, table, column string) ([]string, error) {
	q := query.Distinct(table, column)

	rows, err := s.db.Query(ctx, q.SQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
