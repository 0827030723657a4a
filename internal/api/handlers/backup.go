package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/lifesync/backend/internal/api/middleware"
	"github.com/lifesync/backend/internal/ics"
	"github.com/lifesync/backend/internal/storage"
	"github.com/lifesync/backend/internal/storage/models"
	ws "github.com/lifesync/backend/internal/websocket"
)

// BackupDocument is the JSON export format: a plain snapshot of the stored
// collection, suitable for re-import.
type BackupDocument struct {
	ExportedAt time.Time      `json:"exported_at"`
	Events     []models.Event `json:"events"`
}

// ExportEvents streams the full schedule as a downloadable JSON document.
func ExportEvents(db *storage.DB) http.HandlerFunc {
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

		doc := BackupDocument{
			ExportedAt: time.Now().UTC(),
			Events:     events,
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="lifesync-schedule.json"`)

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.Encode(doc)
	}
}

// ImportEvents replaces the entire schedule with an uploaded backup. The
// document must parse and every event must pass validation; a bad document
// leaves the store untouched.
func ImportEvents(db *storage.DB, hub *ws.Hub) http.HandlerFunc {
	repo := storage.NewEventRepository(db)
	broadcaster := ws.NewEventBroadcaster(hub)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var doc BackupDocument
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid backup document")
			return
		}

		for i, event := range doc.Events {
			req := EventRequest{
				Title:    event.Title,
				Category: event.Category,
				Start:    event.Start,
				End:      event.End,
				Days:     event.Days,
			}
			if problem := req.validate(); problem != "" {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation,
					"Event "+strconv.Itoa(i+1)+": "+problem)
				return
			}
		}

		if err := repo.ReplaceAll(ctx, doc.Events); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to import events")
			return
		}

		broadcaster.BroadcastScheduleChanged("imported", "", len(doc.Events))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"imported": len(doc.Events)})
	}
}

// ExportICS streams the schedule as an iCalendar feed with weekly recurring
// events.
func ExportICS(db *storage.DB, location *time.Location) http.HandlerFunc {
	repo := storage.NewEventRepository(db)
	if location == nil {
		location = time.Local
	}

	return func(w http.ResponseWriter, r *http.Request) {
		events, err := repo.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query events")
			return
		}

		feed, err := ics.Export(events, time.Now(), location)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to build calendar")
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="lifesync-schedule.ics"`)
		w.Write([]byte(feed))
	}
}
