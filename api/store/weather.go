package store

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/koshai/npdes/api/query"
)

// WeatherRecord is one daily weather observation for a station.
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

// WeatherFilterSet holds the dropdown values for the weather page.
type WeatherFilterSet struct {
	StationIDs        []string `json:"station_ids"`
	ParentFacilityIDs []string `json:"parent_facility_ids"`
}

// Weather returns filtered weather records in date order.
func (s *Store) Weather(ctx context.Context, p query.WeatherParams) ([]WeatherRecord, error) {
	q, err := query.Weather(s.weatherTable, p)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []WeatherRecord{}
	for rows.Next() {
		var r WeatherRecord
		var ingested *time.Time
		if err := rows.Scan(
			&r.Date,
			&r.TAvgFahrenheit,
			&r.TMaxFahrenheit,
			&r.TMinFahrenheit,
			&r.PrcpInches,
			&r.SnowInches,
			&r.SnwdInches,
			&r.StationID,
			&r.ParentFacilityID,
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

// WeatherFilters runs the distinct-value lookups for the weather dropdowns.
func (s *Store) WeatherFilters(ctx context.Context) (WeatherFilterSet, error) {
	var fs WeatherFilterSet

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vals, err := s.distinct(ctx, s.weatherTable, "station_id")
		if err != nil {
			return err
		}
		fs.StationIDs = vals
		return nil
	})
	g.Go(func() error {
		vals, err := s.distinct(ctx, s.weatherTable, "parent_facility_id")
		if err != nil {
			return err
		}
		fs.ParentFacilityIDs = vals
		return nil
	})

	if err := g.Wait(); err != nil {
		return WeatherFilterSet{}, err
	}
	return fs, nil
}
