package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(settingsCmd.Commands()))
	for _, cmd := range settingsCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set", "wizard", "reset"}, names)
}

func TestSettingsShowCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "[canvas]")
	assert.Contains(t, out, "[history]")
	assert.Contains(t, out, "  canvas.margin = 48")
	assert.Contains(t, out, "  history.max_size = 20")
	assert.Contains(t, out, "  colors.default = #3B82F6")
	assert.Contains(t, out, "  data.dir = (default)")
}

func TestSettingsSetCmd(t *testing.T) {
	t.Run("stores value", func(t *testing.T) {
		env := setupTestServices(t)

		out, err := execute(t, "settings", "set", "history.max_size", "50")
		require.NoError(t, err)
		assert.Contains(t, out, "Set history.max_size = 50")

		s, err := env.settings.Get()
		require.NoError(t, err)
		assert.Equal(t, 50, s.History.MaxSize)
	})

	t.Run("unknown key", func(t *testing.T) {
		setupTestServices(t)
		_, err := execute(t, "settings", "set", "canvas.colour", "red")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("bad value", func(t *testing.T) {
		setupTestServices(t)
		_, err := execute(t, "settings", "set", "canvas.margin", "wide")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("requires two args", func(t *testing.T) {
		setupTestServices(t)
		_, err := execute(t, "settings", "set", "canvas.margin")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 2 arg(s)")
	})
}

func TestSettingsWizardCmd(t *testing.T) {
	env := setupTestServices(t)
	// Keys in order: canvas.margin, canvas.min_drag_pixels, canvas.sidebar_width,
	// colors.default, data.dir, history.max_size, view.autosave_per_second.
	rootCmd.SetIn(strings.NewReader("60\n\n\nnot-a-colour\n\n50\n\n"))

	out, err := execute(t, "settings", "wizard")
	require.NoError(t, err)
	assert.Contains(t, out, "canvas.margin [48]: ")
	assert.Contains(t, out, "Skipped:")
	assert.Contains(t, out, "Updated 2 setting(s).")

	s, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.Canvas.Margin)
	assert.Equal(t, 50, s.History.MaxSize)
	assert.Equal(t, "#3B82F6", s.Colors.Default)
}

func TestSettingsResetCmd(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.Set("canvas.margin", "10"))

	out, err := execute(t, "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "restored to defaults")

	s, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings().Canvas.Margin, s.Canvas.Margin)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	settingsService = nil

	_, err := execute(t, "settings", "show")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingValues(t *testing.T) {
	s := domain.DefaultSettings()
	values := settingValues(&s)
	assert.Equal(t, "320", values["canvas.sidebar_width"])
	assert.Equal(t, "2", values["view.autosave_per_second"])
	assert.Equal(t, "", values["data.dir"])
}
