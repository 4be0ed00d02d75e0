package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/koshai/npdes/api/query"
	"github.com/koshai/npdes/api/store"
)

const (
	defaultLimit          = 1000
	defaultByOutfallLimit = 10000
	queryTimeout          = 10 * time.Second
)

// DataResponse wraps query results. Data is always an array, never null.
type DataResponse struct {
	Data []store.MonitoringRecord `json:"data"`
}

// GetData returns filtered discharge-monitoring records.
func GetData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	q := r.URL.Query()
	params := query.MonitoringParams{
		Outfall:   q.Get("outfall"),
		Parameter: q.Get("parameter"),
		Base:      q.Get("base"),
		Unit:      q.Get("unit"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Limit:     parseLimit(q.Get("limit"), defaultLimit),
	}

	records, err := DataStore.Monitoring(ctx, params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: records})
}

// GetDataByOutfall returns every record for a single outfall, capped high
// enough for full-history charting.
func GetDataByOutfall(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	q := r.URL.Query()
	outfall := q.Get("outfall")
	if outfall == "" {
		writeError(w, http.StatusBadRequest, errors.New("outfall parameter is required"))
		return
	}

	params := query.MonitoringParams{
		Outfall: outfall,
		Limit:   parseLimit(q.Get("limit"), defaultByOutfallLimit),
	}

	records, err := DataStore.Monitoring(ctx, params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: records})
}
