package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lifesync/backend/internal/api/middleware"
	"github.com/lifesync/backend/internal/storage"
)

// SettingsResponse represents settings in API responses. Values are strings;
// numeric settings are parsed where they are consumed. The planner API key
// is write-only: it can be updated here but is never echoed back.
type SettingsResponse struct {
	ReminderWindowMin string `json:"reminder_window_min"`
	FocusMinutes      string `json:"focus_minutes"`
	BreakMinutes      string `json:"break_minutes"`
	AnchorMinutes     string `json:"anchor_minutes"`
	BlockMinutes      string `json:"block_minutes"`
	PlannerModel      string `json:"planner_model"`
	PlannerAPIKey     string `json:"planner_api_key,omitempty"`
}

// GetSettings returns all settings.
func GetSettings(db *storage.DB) http.HandlerFunc {
	repo := storage.NewSettingsRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := repo.GetAll(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query settings")
			return
		}

		// SettingPlannerAPIKey is deliberately absent from the response.
		response := SettingsResponse{
			ReminderWindowMin: settings[storage.SettingReminderWindowMin],
			FocusMinutes:      settings[storage.SettingFocusMinutes],
			BreakMinutes:      settings[storage.SettingBreakMinutes],
			AnchorMinutes:     settings[storage.SettingAnchorMinutes],
			BlockMinutes:      settings[storage.SettingBlockMinutes],
			PlannerModel:      settings[storage.SettingPlannerModel],
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// UpdateSettings updates settings. Empty fields are left unchanged.
func UpdateSettings(db *storage.DB) http.HandlerFunc {
	repo := storage.NewSettingsRepository(db)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req SettingsResponse
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		settings := map[string]string{
			storage.SettingReminderWindowMin: req.ReminderWindowMin,
			storage.SettingFocusMinutes:      req.FocusMinutes,
			storage.SettingBreakMinutes:      req.BreakMinutes,
			storage.SettingAnchorMinutes:     req.AnchorMinutes,
			storage.SettingBlockMinutes:      req.BlockMinutes,
			storage.SettingPlannerModel:      req.PlannerModel,
			storage.SettingPlannerAPIKey:     req.PlannerAPIKey,
		}

		for key, value := range settings {
			if value != "" {
				if err := repo.Set(ctx, key, value); err != nil {
					middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to update settings")
					return
				}
			}
		}

		// The key is stored but never echoed.
		req.PlannerAPIKey = ""

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(req)
	}
}
