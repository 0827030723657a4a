package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lifesync/backend/internal/api/middleware"
	"github.com/lifesync/backend/internal/planner"
	"github.com/lifesync/backend/internal/schedule"
	"github.com/lifesync/backend/internal/storage"
	"github.com/lifesync/backend/internal/storage/models"
	ws "github.com/lifesync/backend/internal/websocket"
)

// PlanResponse reports the outcome of an AI planner run: which events were
// stored and which drafts were rejected, with reasons.
type PlanResponse struct {
	Added    []models.Event           `json:"added"`
	Rejected []schedule.RejectedDraft `json:"rejected"`
}

// GeneratePlan converts a natural-language prompt into stored events.
// Drafts that fail normalization are reported back, not silently dropped.
func GeneratePlan(db *storage.DB, hub *ws.Hub, client *planner.Client) http.HandlerFunc {
	repo := storage.NewEventRepository(db)
	broadcaster := ws.NewEventBroadcaster(hub)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req struct {
			Prompt string `json:"prompt"`
			Day    string `json:"day"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Prompt == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Prompt is required")
			return
		}
		if !models.IsValidDay(req.Day) {
			req.Day = models.WeekdayName(time.Now().Weekday())
		}

		drafts, err := client.GeneratePlan(ctx, req.Prompt, req.Day)
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrInternalError, "Planner request failed: "+err.Error())
			return
		}

		respondWithDrafts(w, r, repo, broadcaster, drafts, "prompt")
	}
}

// ScanTimetable extracts events from an uploaded timetable image.
func ScanTimetable(db *storage.DB, hub *ws.Hub, client *planner.Client) http.HandlerFunc {
	repo := storage.NewEventRepository(db)
	broadcaster := ws.NewEventBroadcaster(hub)

	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Image    string `json:"image"` // base64
			MimeType string `json:"mime_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Image == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Image is required")
			return
		}

		drafts, err := client.ScanTimetable(r.Context(), req.Image, req.MimeType)
		if err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrInternalError, "Timetable scan failed: "+err.Error())
			return
		}

		respondWithDrafts(w, r, repo, broadcaster, drafts, "image")
	}
}

// respondWithDrafts normalizes drafts, stores the accepted ones and writes
// the combined outcome.
func respondWithDrafts(
	w http.ResponseWriter,
	r *http.Request,
	repo *storage.EventRepository,
	broadcaster *ws.EventBroadcaster,
	drafts []schedule.Draft,
	source string,
) {
	ctx := r.Context()

	accepted, rejected := schedule.NormalizeDrafts(drafts)

	var added []models.Event
	for _, event := range accepted {
		if err := repo.Create(ctx, &event); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to store generated events")
			return
		}
		added = append(added, event)
	}

	if len(added) > 0 {
		broadcaster.BroadcastScheduleChanged("generated", "", len(added))
	}
	broadcaster.BroadcastPlanGenerated(source, len(added), len(rejected))

	if added == nil {
		added = []models.Event{}
	}
	if rejected == nil {
		rejected = []schedule.RejectedDraft{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PlanResponse{Added: added, Rejected: rejected})
}
