package handlers

import (
	"context"
	"net/http"
)

// GetFilters returns the distinct values backing the monitoring dropdowns.
// All four keys are always present, each as an array.
func GetFilters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	fs, err := DataStore.MonitoringFilters(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, fs)
}

// GetWeatherFilters returns the distinct values backing the weather dropdowns.
func GetWeatherFilters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	fs, err := DataStore.WeatherFilters(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, fs)
}
