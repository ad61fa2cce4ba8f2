package domain

// Settings holds application configuration read from the config store.
type Settings struct {
	Canvas  CanvasSettings
	History HistorySettings
	Colors  ColorSettings
	Data    DataSettings
	View    ViewSettings
}

// CanvasSettings controls canvas layout and gesture handling.
type CanvasSettings struct {
	// SidebarWidth is reserved for the tree panel when computing base scale.
	SidebarWidth float64

	// Margin is subtracted from the available width when computing base scale.
	Margin float64

	// MinDragPixels is the gesture noise threshold.
	MinDragPixels float64
}

// HistorySettings controls undo/redo depth.
type HistorySettings struct {
	MaxSize int
}

// ColorSettings holds colour defaults for new projects.
type ColorSettings struct {
	Default string
}

// DataSettings controls where data is stored.
type DataSettings struct {
	Dir string
}

// ViewSettings controls view-state persistence.
type ViewSettings struct {
	// AutosavePerSecond limits how often zoom/rotation/page are persisted.
	AutosavePerSecond float64
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Canvas: CanvasSettings{
			SidebarWidth:  320,
			Margin:        48,
			MinDragPixels: DefaultMinDragPixels,
		},
		History: HistorySettings{MaxSize: DefaultHistorySize},
		Colors:  ColorSettings{Default: "#3B82F6"},
		Data:    DataSettings{Dir: ""},
		View:    ViewSettings{AutosavePerSecond: 2},
	}
}

// Validate checks that settings are usable.
func (s Settings) Validate() error {
	if s.History.MaxSize < 1 {
		return ErrInvalidInput
	}
	if s.Canvas.MinDragPixels < 0 || s.Canvas.SidebarWidth < 0 || s.Canvas.Margin < 0 {
		return ErrInvalidInput
	}
	if s.View.AutosavePerSecond <= 0 {
		return ErrInvalidInput
	}
	return nil
}
