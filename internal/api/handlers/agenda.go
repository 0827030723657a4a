package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lifesync/backend/internal/api/middleware"
	"github.com/lifesync/backend/internal/schedule"
	"github.com/lifesync/backend/internal/storage"
	"github.com/lifesync/backend/internal/storage/models"
)

// dayParam extracts and validates the day query parameter.
func dayParam(r *http.Request) (string, bool) {
	day := r.URL.Query().Get("day")
	return day, models.IsValidDay(day)
}

// GetAgenda returns the events recurring on a day, ordered by start time
// with insertion order breaking ties.
func GetAgenda(db *storage.DB) http.HandlerFunc {
	repo := storage.NewEventRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dayParam(r)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Unknown day: "+day)
			return
		}

		events, err := repo.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query events")
			return
		}

		agenda := schedule.AgendaFor(events, day)
		if agenda == nil {
			agenda = []models.Event{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(agenda)
	}
}

// GetStats returns the aggregated time summary for a day.
func GetStats(db *storage.DB) http.HandlerFunc {
	repo := storage.NewEventRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dayParam(r)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Unknown day: "+day)
			return
		}

		events, err := repo.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query events")
			return
		}

		summary := schedule.Summarize(schedule.AgendaFor(events, day))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

// FreeSlotResponse is the payload for free slot lookups. Fallback is true
// when the day had no room and a default slot was substituted.
type FreeSlotResponse struct {
	Slot     schedule.Slot `json:"slot"`
	Fallback bool          `json:"fallback"`
}

// GetFreeSlot returns the earliest open slot on a day. The anchor and block
// parameters override the stored settings for one lookup.
func GetFreeSlot(db *storage.DB) http.HandlerFunc {
	repo := storage.NewEventRepository(db)
	settingsRepo := storage.NewSettingsRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		day, ok := dayParam(r)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Unknown day: "+day)
			return
		}

		anchor, err := settingsRepo.GetInt(ctx, storage.SettingAnchorMinutes, schedule.DefaultAnchorMinutes)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to read settings")
			return
		}
		block, err := settingsRepo.GetInt(ctx, storage.SettingBlockMinutes, schedule.DefaultBlockMinutes)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to read settings")
			return
		}

		if raw := r.URL.Query().Get("anchor"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n < schedule.MinutesPerDay {
				anchor = n
			}
		}
		if raw := r.URL.Query().Get("block"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < schedule.MinutesPerDay {
				block = n
			}
		}

		events, err := repo.List(ctx)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query events")
			return
		}

		slot, found := schedule.NextFreeSlot(events, day, anchor, block)
		response := FreeSlotResponse{Slot: slot, Fallback: !found}
		if !found {
			response.Slot = schedule.FallbackSlot
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// GetSuggestions returns schedule improvement suggestions for a day.
func GetSuggestions(db *storage.DB) http.HandlerFunc {
	repo := storage.NewEventRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		day, ok := dayParam(r)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Unknown day: "+day)
			return
		}

		events, err := repo.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query events")
			return
		}

		suggestions := schedule.Suggestions(schedule.AgendaFor(events, day), day)
		if suggestions == nil {
			suggestions = []schedule.Suggestion{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(suggestions)
	}
}
