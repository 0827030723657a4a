package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lifesync/backend/internal/api/middleware"
	"github.com/lifesync/backend/internal/focus"
	"github.com/lifesync/backend/internal/storage"
)

// GetFocusState returns the current focus timer state.
func GetFocusState(manager *focus.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(manager.Snapshot())
	}
}

// StartFocus starts or resumes the focus timer, optionally tied to an event.
func StartFocus(db *storage.DB, manager *focus.Manager) http.HandlerFunc {
	repo := storage.NewEventRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			EventID string `json:"event_id"`
		}
		// An empty body starts an untied session.
		json.NewDecoder(r.Body).Decode(&req)

		title := ""
		if req.EventID != "" {
			event, err := repo.GetByID(r.Context(), req.EventID)
			if err != nil {
				middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query event")
				return
			}
			if event == nil {
				middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
				return
			}
			title = event.Title
		}

		state := manager.Start(req.EventID, title)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)
	}
}

// PauseFocus halts the countdown, keeping the remaining time.
func PauseFocus(manager *focus.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(manager.Pause())
	}
}

// ResetFocus stops the timer and restores the full phase length.
func ResetFocus(manager *focus.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(manager.Reset())
	}
}

// ConfigureFocus updates the phase lengths and persists them as settings.
func ConfigureFocus(db *storage.DB, manager *focus.Manager) http.HandlerFunc {
	settingsRepo := storage.NewSettingsRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req struct {
			FocusMinutes int `json:"focus_minutes"`
			BreakMinutes int `json:"break_minutes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		state, err := manager.Configure(req.FocusMinutes, req.BreakMinutes)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
			return
		}

		if err := settingsRepo.Set(ctx, storage.SettingFocusMinutes, strconv.Itoa(req.FocusMinutes)); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to save settings")
			return
		}
		if err := settingsRepo.Set(ctx, storage.SettingBreakMinutes, strconv.Itoa(req.BreakMinutes)); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to save settings")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)
	}
}
