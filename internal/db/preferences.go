package db

import (
	"database/sql"
	"fmt"
)

const (
	PrefPersonality   = "personality_mode"
	PrefEnergy        = "energy_level"
	PrefDiscordUserID = "discord_user_id"
)

var allowedPreferences = map[string]bool{
	PrefPersonality:   true,
	PrefEnergy:        true,
	PrefDiscordUserID: true,
}

// GetPreference returns "" for unset keys.
func (d *DB) GetPreference(key string) (string, error) {
	var value string
	err := d.conn.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting preference: %w", err)
	}
	return value, nil
}

func (d *DB) SetPreference(key, value string) error {
	if !allowedPreferences[key] {
		return fmt.Errorf("unknown preference %q", key)
	}
	_, err := d.conn.Exec(
		"INSERT INTO preferences (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = datetime('now')",
		key, value, value,
	)
	if err != nil {
		return fmt.Errorf("setting preference: %w", err)
	}
	return nil
}

// Preferences returns the stored energy level and personality mode.
// Unset values come back empty and are defaulted by domain.Assemble.
func (d *DB) Preferences() (energy, personality string, err error) {
	if energy, err = d.GetPreference(PrefEnergy); err != nil {
		return "", "", err
	}
	if personality, err = d.GetPreference(PrefPersonality); err != nil {
		return "", "", err
	}
	return energy, personality, nil
}
