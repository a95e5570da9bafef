package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
	"github.com/custodia-labs/acronyms/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyWindowSize         = "engine.window_size"
	keyRequireCapitalized = "engine.require_capitalized"
	keyExtractionTimeout  = "extraction.timeout_seconds"
	keyFetchRate          = "extraction.fetch_rate"
	keyPreferPDFToText    = "extraction.pdftotext"
	keyRefreshInterval    = "refresh.interval_minutes"
)

var settingKeys = []string{
	keyWindowSize,
	keyRequireCapitalized,
	keyExtractionTimeout,
	keyFetchRate,
	keyPreferPDFToText,
	keyRefreshInterval,
}

// SettingsService manages engine settings stored in the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current engine settings.
func (s *SettingsService) Get() (*domain.EngineSettings, error) {
	defaults := domain.DefaultEngineSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.EngineSettings{
		WindowSize:         s.getInt(keyWindowSize, defaults.WindowSize),
		RequireCapitalized: s.getBool(keyRequireCapitalized, defaults.RequireCapitalized),
		ExtractionTimeout: time.Duration(
			s.getInt(keyExtractionTimeout, int(defaults.ExtractionTimeout/time.Second)),
		) * time.Second,
		FetchRate:       s.getFloat(keyFetchRate, defaults.FetchRate),
		PreferPDFToText: s.getBool(keyPreferPDFToText, defaults.PreferPDFToText),
		RefreshInterval: time.Duration(
			s.getInt(keyRefreshInterval, int(defaults.RefreshInterval/time.Minute)),
		) * time.Minute,
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save persists engine settings.
func (s *SettingsService) Save(settings *domain.EngineSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	values := map[string]any{
		keyWindowSize:         settings.WindowSize,
		keyRequireCapitalized: settings.RequireCapitalized,
		keyExtractionTimeout:  int(settings.ExtractionTimeout / time.Second),
		keyFetchRate:          settings.FetchRate,
		keyPreferPDFToText:    settings.PreferPDFToText,
		keyRefreshInterval:    int(settings.RefreshInterval / time.Minute),
	}
	for _, key := range settingKeys {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set parses and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	var parsed any
	var err error
	switch key {
	case keyWindowSize, keyExtractionTimeout, keyRefreshInterval:
		var n int
		n, err = strconv.Atoi(value)
		if err == nil && (n < 0 || (key == keyWindowSize && n == 0)) {
			err = fmt.Errorf("out of range: %d", n)
		}
		parsed = n
	case keyRequireCapitalized, keyPreferPDFToText:
		parsed, err = strconv.ParseBool(value)
	case keyFetchRate:
		var f float64
		f, err = strconv.ParseFloat(value, 64)
		if err == nil && f < 0 {
			err = fmt.Errorf("out of range: %g", f)
		}
		parsed = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.configStore.Set(key, parsed)
}

// Values returns the current value of every setting, formatted as Set
// accepts it.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		keyWindowSize:         strconv.Itoa(settings.WindowSize),
		keyRequireCapitalized: strconv.FormatBool(settings.RequireCapitalized),
		keyExtractionTimeout:  strconv.Itoa(int(settings.ExtractionTimeout / time.Second)),
		keyFetchRate:          strconv.FormatFloat(settings.FetchRate, 'g', -1, 64),
		keyPreferPDFToText:    strconv.FormatBool(settings.PreferPDFToText),
		keyRefreshInterval:    strconv.Itoa(int(settings.RefreshInterval / time.Minute)),
	}, nil
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.EngineSettings {
	return domain.DefaultEngineSettings()
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, def bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetBool(key)
}

// getFloat accepts both TOML floats and integers.
func (s *SettingsService) getFloat(key string, def float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return def
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return def
	}
}
