package handlers

import (
	"context"
	"net/http"

	"github.com/koshai/npdes/api/query"
	"github.com/koshai/npdes/api/store"
)

// WeatherDataResponse wraps weather query results.
type WeatherDataResponse struct {
	Data []store.WeatherRecord `json:"data"`
}

// GetWeatherData returns filtered daily weather observations.
func GetWeatherData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	q := r.URL.Query()
	params := query.WeatherParams{
		StationID:        q.Get("station_id"),
		ParentFacilityID: q.Get("parent_facility_id"),
		StartDate:        q.Get("start_date"),
		EndDate:          q.Get("end_date"),
		Limit:            parseLimit(q.Get("limit"), defaultLimit),
	}

	records, err := DataStore.Weather(ctx, params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, WeatherDataResponse{Data: records})
}
