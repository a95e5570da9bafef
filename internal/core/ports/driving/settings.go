package driving

import "github.com/custodia-labs/acronyms/internal/core/domain"

// SettingsService manages engine settings.
type SettingsService interface {
	// Get retrieves current engine settings, falling back to defaults
	// for anything not configured.
	Get() (*domain.EngineSettings, error)

	// Save persists engine settings.
	Save(settings *domain.EngineSettings) error

	// Set parses and stores a single setting by key.
	Set(key, value string) error

	// Values returns the current value of every setting as a string.
	Values() (map[string]string, error)

	// Keys returns the recognised setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.EngineSettings
}
