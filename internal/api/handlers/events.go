package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/lifesync/backend/internal/api/middleware"
	"github.com/lifesync/backend/internal/schedule"
	"github.com/lifesync/backend/internal/storage"
	"github.com/lifesync/backend/internal/storage/models"
	ws "github.com/lifesync/backend/internal/websocket"
)

// EventRequest is the payload for creating or updating an event.
type EventRequest struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Days     []string `json:"days"`
}

// validate checks the request and returns a human-readable problem, or "".
func (req *EventRequest) validate() string {
	if strings.TrimSpace(req.Title) == "" {
		return "Title is required"
	}
	if !models.IsValidCategory(req.Category) {
		return "Unknown category: " + req.Category
	}
	start, err := schedule.ParseClock(req.Start)
	if err != nil {
		return "Invalid start time: " + req.Start
	}
	end, err := schedule.ParseClock(req.End)
	if err != nil {
		return "Invalid end time: " + req.End
	}
	if start >= end {
		return "Start time must be before end time"
	}
	if len(req.Days) == 0 {
		return "At least one day is required"
	}
	for _, day := range req.Days {
		if !models.IsValidDay(day) {
			return "Unknown day: " + day
		}
	}
	return ""
}

func (req *EventRequest) toEvent(id string) models.Event {
	return models.Event{
		ID:       id,
		Title:    strings.TrimSpace(req.Title),
		Category: req.Category,
		Start:    req.Start,
		End:      req.End,
		Days:     req.Days,
	}
}

// ListEvents returns the full event collection in insertion order.
func ListEvents(db *storage.DB) http.HandlerFunc {
	repo := storage.NewEventRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		events, err := repo.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query events")
			return
		}
		if events == nil {
			events = []models.Event{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(events)
	}
}

// GetEvent returns a single event by ID.
func GetEvent(db *storage.DB) http.HandlerFunc {
	repo := storage.NewEventRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		event, err := repo.GetByID(r.Context(), id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query event")
			return
		}
		if event == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(event)
	}
}

// CreateEvent creates a new event. Requests that overlap an existing event
// on a shared day are rejected with the blocking event in the details.
func CreateEvent(db *storage.DB, hub *ws.Hub) http.HandlerFunc {
	repo := storage.NewEventRepository(db)
	broadcaster := ws.NewEventBroadcaster(hub)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req EventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if problem := req.validate(); problem != "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, problem)
			return
		}

		existing, err := repo.List(ctx)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query events")
			return
		}

		event := req.toEvent("")
		if blocking := schedule.FindConflict(event, existing, ""); blocking != nil {
			middleware.WriteErrorWithDetails(w, http.StatusConflict, middleware.ErrConflict,
				"Event overlaps with \""+blocking.Title+"\"", blocking)
			return
		}

		if err := repo.Create(ctx, &event); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to create event")
			return
		}

		broadcaster.BroadcastScheduleChanged("created", event.ID, 1)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(event)
	}
}

// UpdateEvent replaces all fields of an existing event except id and seq.
// The event being updated is excluded from the conflict check.
func UpdateEvent(db *storage.DB, hub *ws.Hub) http.HandlerFunc {
	repo := storage.NewEventRepository(db)
	broadcaster := ws.NewEventBroadcaster(hub)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := mux.Vars(r)["id"]

		var req EventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if problem := req.validate(); problem != "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, problem)
			return
		}

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query event")
			return
		}
		if current == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
			return
		}

		existing, err := repo.List(ctx)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query events")
			return
		}

		event := req.toEvent(id)
		if blocking := schedule.FindConflict(event, existing, id); blocking != nil {
			middleware.WriteErrorWithDetails(w, http.StatusConflict, middleware.ErrConflict,
				"Event overlaps with \""+blocking.Title+"\"", blocking)
			return
		}

		event.Seq = current.Seq
		event.CreatedAt = current.CreatedAt
		if err := repo.Update(ctx, &event); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to update event")
			return
		}

		broadcaster.BroadcastScheduleChanged("updated", event.ID, 1)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(event)
	}
}

// DeleteEvent removes an event. Deleting an unknown id succeeds; the store
// ends up in the same state either way.
func DeleteEvent(db *storage.DB, hub *ws.Hub) http.HandlerFunc {
	repo := storage.NewEventRepository(db)
	broadcaster := ws.NewEventBroadcaster(hub)

	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		removed, err := repo.Delete(r.Context(), id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to delete event")
			return
		}

		if removed {
			broadcaster.BroadcastScheduleChanged("deleted", id, 1)
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
