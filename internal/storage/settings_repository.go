package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// Setting keys used across the application.
const (
	SettingReminderWindowMin = "reminder_window_min"
	SettingFocusMinutes      = "focus_minutes"
	SettingBreakMinutes      = "break_minutes"
	SettingAnchorMinutes     = "anchor_minutes"
	SettingBlockMinutes      = "block_minutes"
	SettingPlannerAPIKey     = "planner_api_key"
	SettingPlannerModel      = "planner_model"
)

// SettingsRepository provides access to the key/value settings table.
type SettingsRepository struct {
	BaseRepository
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Get returns the value for a key, or fallback when the key is absent.
func (r *SettingsRepository) Get(ctx context.Context, key, fallback string) (string, error) {
	var value string
	err := r.DB().QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, nil
}

// GetInt returns the value for a key parsed as an integer, or fallback when
// the key is absent or not numeric.
func (r *SettingsRepository) GetInt(ctx context.Context, key string, fallback int) (int, error) {
	raw, err := r.Get(ctx, key, "")
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, nil
	}
	return n, nil
}

// GetAll returns every stored setting.
func (r *SettingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.DB().QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

// Set upserts a setting value.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	if err != nil {
		return fmt.Errorf("updating setting %s: %w", key, err)
	}
	return nil
}
