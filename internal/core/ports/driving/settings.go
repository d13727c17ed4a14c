package driving

import "github.com/custodia-labs/dupes-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves the effective application settings.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single configuration key.
	Set(key, value string) error

	// Keys returns every configurable key in display order.
	Keys() []string

	// Value returns the effective value of key rendered as text.
	Value(key string) (string, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
