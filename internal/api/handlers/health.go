// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lifesync/backend/internal/storage"
	ws "github.com/lifesync/backend/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_connected"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.Ping() == nil

		status := "healthy"
		if !dbConnected {
			status = "degraded"
		}

		response := HealthResponse{
			Status:      status,
			DBConnected: dbConnected,
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	EventsCount      int `json:"events_count"`
	ConnectedClients int `json:"connected_clients"`
}

// Status returns a handler that provides system status information.
func Status(db *storage.DB, hub *ws.Hub) http.HandlerFunc {
	repo := storage.NewEventRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		count, err := repo.Count(r.Context())
		if err != nil {
			count = 0
		}

		response := StatusResponse{
			EventsCount:      count,
			ConnectedClients: hub.ClientCount(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
