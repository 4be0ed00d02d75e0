// Package web serves the server-rendered dashboard pages.
package web

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/koshai/npdes/dashboard/client"
)

// API is the query-service surface the dashboard consumes.
type API interface {
	Filters() (client.MonitoringFilterSet, error)
	Data(client.MonitoringParams) ([]client.MonitoringRecord, error)
	WeatherFilters() (client.WeatherFilterSet, error)
	WeatherData(client.WeatherParams) ([]client.WeatherRecord, error)
}

// Server renders the monitoring and weather pages.
type Server struct {
	api   API
	port  string
	tmpl  *template.Template
	clock clockwork.Clock
	log   *slog.Logger
}

// NewServer creates the dashboard server. The clock drives the
// "last updated" stamp and is fakeable in tests.
func NewServer(api API, port string, clock clockwork.Clock, log *slog.Logger) *Server {
	return &Server{
		api:   api,
		port:  port,
		tmpl:  newTemplates(),
		clock: clock,
		log:   log,
	}
}

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleMonitoring)
	mux.HandleFunc("/weather", s.handleWeather)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Info("dashboard listening", "port", s.port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleMonitoring(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	view := NewMonitoringView()
	view.SetFilters(s.api.Filters())

	if q.Get("submitted") != "" {
		params := client.MonitoringParams{
			Outfall:   q.Get("outfall"),
			Parameter: q.Get("parameter"),
			Base:      q.Get("base"),
			Unit:      q.Get("unit"),
			StartDate: q.Get("start_date"),
			EndDate:   q.Get("end_date"),
			Limit:     parseLimit(q.Get("limit")),
		}
		view.Submit(params)
		view.Resolve(s.api.Data(params))
		if view.State == StateError {
			s.log.Error("monitoring fetch failed", "error", view.Error)
		}
	}

	view.LastUpdated = s.clock.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	if err := s.tmpl.ExecuteTemplate(w, "monitoring.html", view); err != nil {
		s.log.Error("template error", "error", err)
	}
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := NewWeatherView()
	view.SetFilters(s.api.WeatherFilters())

	if q.Get("submitted") != "" {
		params := client.WeatherParams{
			StationID:        q.Get("station_id"),
			ParentFacilityID: q.Get("parent_facility_id"),
			StartDate:        q.Get("start_date"),
			EndDate:          q.Get("end_date"),
			Limit:            parseLimit(q.Get("limit")),
		}
		view.Submit(params, q.Get("measurement"))
		view.Resolve(s.api.WeatherData(params))
		if view.State == StateError {
			s.log.Error("weather fetch failed", "error", view.Error)
		}
	}

	view.LastUpdated = s.clock.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	if err := s.tmpl.ExecuteTemplate(w, "weather.html", view); err != nil {
		s.log.Error("template error", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// parseLimit coerces the limit field; blank or invalid input leaves the
// cap to the query service's default.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
