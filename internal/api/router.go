// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lifesync/backend/internal/api/handlers"
	"github.com/lifesync/backend/internal/api/middleware"
	"github.com/lifesync/backend/internal/focus"
	"github.com/lifesync/backend/internal/planner"
	"github.com/lifesync/backend/internal/storage"
	"github.com/lifesync/backend/internal/websocket"
)

// RouterOptions carries the services the routes depend on beyond the
// database and hub.
type RouterOptions struct {
	FocusManager  *focus.Manager
	PlannerClient *planner.Client
	Location      *time.Location
	StaticDir     string
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(db *storage.DB, hub *websocket.Hub, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(db)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(db, hub)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(hub)).Methods("GET")

	// Event endpoints
	api.HandleFunc("/events", handlers.ListEvents(db)).Methods("GET")
	api.HandleFunc("/events", handlers.CreateEvent(db, hub)).Methods("POST")
	api.HandleFunc("/events/{id}", handlers.GetEvent(db)).Methods("GET")
	api.HandleFunc("/events/{id}", handlers.UpdateEvent(db, hub)).Methods("PUT")
	api.HandleFunc("/events/{id}", handlers.DeleteEvent(db, hub)).Methods("DELETE")

	// Day view endpoints
	api.HandleFunc("/agenda", handlers.GetAgenda(db)).Methods("GET")
	api.HandleFunc("/stats", handlers.GetStats(db)).Methods("GET")
	api.HandleFunc("/free-slot", handlers.GetFreeSlot(db)).Methods("GET")
	api.HandleFunc("/suggestions", handlers.GetSuggestions(db)).Methods("GET")

	// Backup endpoints
	api.HandleFunc("/export", handlers.ExportEvents(db)).Methods("GET")
	api.HandleFunc("/export.ics", handlers.ExportICS(db, opts.Location)).Methods("GET")
	api.HandleFunc("/import", handlers.ImportEvents(db, hub)).Methods("POST")

	// AI planner endpoints
	if opts.PlannerClient != nil {
		api.HandleFunc("/plan/generate", handlers.GeneratePlan(db, hub, opts.PlannerClient)).Methods("POST")
		api.HandleFunc("/plan/scan", handlers.ScanTimetable(db, hub, opts.PlannerClient)).Methods("POST")
	}

	// Focus timer endpoints
	if opts.FocusManager != nil {
		api.HandleFunc("/focus", handlers.GetFocusState(opts.FocusManager)).Methods("GET")
		api.HandleFunc("/focus/start", handlers.StartFocus(db, opts.FocusManager)).Methods("POST")
		api.HandleFunc("/focus/pause", handlers.PauseFocus(opts.FocusManager)).Methods("POST")
		api.HandleFunc("/focus/reset", handlers.ResetFocus(opts.FocusManager)).Methods("POST")
		api.HandleFunc("/focus/config", handlers.ConfigureFocus(db, opts.FocusManager)).Methods("PUT")
	}

	// Settings endpoints
	api.HandleFunc("/settings", handlers.GetSettings(db)).Methods("GET")
	api.HandleFunc("/settings", handlers.UpdateSettings(db)).Methods("PUT")

	// Serve static frontend files
	if opts.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}
