package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change canvas, history, colour and storage settings.

Settings live in ~/.plancanvas/config.toml and can also be edited there; a
running TUI picks up changes to that file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Step through every setting. Press Enter to keep the current value.`,
	RunE:  runSettingsWizard,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	values := settingValues(settings)

	cmd.Println("Current Settings")
	cmd.Println("================")
	section := ""
	for _, key := range settingsService.Keys() {
		if s, _, _ := strings.Cut(key, "."); s != section {
			section = s
			cmd.Println()
			cmd.Printf("[%s]\n", section)
		}
		cmd.Printf("  %s = %s\n", key, valueOr(values[key], "(default)"))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	values := settingValues(settings)

	cmd.Println("plancanvas Settings Wizard")
	cmd.Println("==========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	changed := 0
	for _, key := range settingsService.Keys() {
		cmd.Printf("%s [%s]: ", key, values[key])
		input := readLine(reader)
		if input == "" || input == values[key] {
			continue
		}
		if err := settingsService.Set(key, input); err != nil {
			cmd.Printf("  Skipped: %v\n", err)
			continue
		}
		changed++
	}

	cmd.Println()
	cmd.Printf("Updated %d setting(s).\n", changed)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

// settingValues renders settings keyed by config key.
func settingValues(s *domain.Settings) map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return map[string]string{
		"canvas.sidebar_width":     f(s.Canvas.SidebarWidth),
		"canvas.margin":            f(s.Canvas.Margin),
		"canvas.min_drag_pixels":   f(s.Canvas.MinDragPixels),
		"history.max_size":         strconv.Itoa(s.History.MaxSize),
		"colors.default":           s.Colors.Default,
		"data.dir":                 s.Data.Dir,
		"view.autosave_per_second": f(s.View.AutosavePerSecond),
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
