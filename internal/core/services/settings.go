package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySidebarWidth  = "canvas.sidebar_width"
	keyMargin        = "canvas.margin"
	keyMinDragPixels = "canvas.min_drag_pixels"
	keyHistoryMax    = "history.max_size"
	keyDefaultColor  = "colors.default"
	keyDataDir       = "data.dir"
	keyAutosaveRate  = "view.autosave_per_second"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a #RRGGBB colour.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Canvas: domain.CanvasSettings{
			SidebarWidth:  s.getFloat(keySidebarWidth, defaults.Canvas.SidebarWidth),
			Margin:        s.getFloat(keyMargin, defaults.Canvas.Margin),
			MinDragPixels: s.getFloat(keyMinDragPixels, defaults.Canvas.MinDragPixels),
		},
		History: domain.HistorySettings{
			MaxSize: s.getInt(keyHistoryMax, defaults.History.MaxSize),
		},
		Colors: domain.ColorSettings{
			Default: s.getColor(keyDefaultColor, defaults.Colors.Default),
		},
		Data: domain.DataSettings{
			Dir: s.getString(keyDataDir, defaults.Data.Dir),
		},
		View: domain.ViewSettings{
			AutosavePerSecond: s.getFloat(keyAutosaveRate, defaults.View.AutosavePerSecond),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if !IsHexColor(settings.Colors.Default) {
		return fmt.Errorf("%w: default colour %q", domain.ErrInvalidInput, settings.Colors.Default)
	}

	values := []struct {
		key   string
		value any
	}{
		{keySidebarWidth, settings.Canvas.SidebarWidth},
		{keyMargin, settings.Canvas.Margin},
		{keyMinDragPixels, settings.Canvas.MinDragPixels},
		{keyHistoryMax, settings.History.MaxSize},
		{keyDefaultColor, settings.Colors.Default},
		{keyDataDir, settings.Data.Dir},
		{keyAutosaveRate, settings.View.AutosavePerSecond},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keySidebarWidth, keyMargin, keyMinDragPixels, keyAutosaveRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		switch key {
		case keySidebarWidth:
			settings.Canvas.SidebarWidth = f
		case keyMargin:
			settings.Canvas.Margin = f
		case keyMinDragPixels:
			settings.Canvas.MinDragPixels = f
		default:
			settings.View.AutosavePerSecond = f
		}
	case keyHistoryMax:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.History.MaxSize = n
	case keyDefaultColor:
		settings.Colors.Default = value
	case keyDataDir:
		settings.Data.Dir = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keySidebarWidth, keyMargin, keyMinDragPixels,
		keyHistoryMax, keyDefaultColor, keyDataDir, keyAutosaveRate,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getColor(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if !IsHexColor(val) {
		return defaultVal
	}
	return val
}
