package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// accentColor is the StudentWeb blue
const accentColor = "33"

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// GetTheme constructs the form theme around the accent color.
func GetTheme() *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(accentColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// RunTUI launches the main menu. It loops until the user picks "Quit".
func RunTUI(configPath string, log zerolog.Logger) error {
	for {
		var action string

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("🎓 Check for new grades", "check"),
						huh.NewOption("🔍 Dry run (show changes, send nothing)", "dry-run"),
						huh.NewOption("📋 Show stored results", "results"),
						huh.NewOption("⚙️ Settings", "config"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "check", "dry-run":
			// A failed check is shown and the menu stays open
			if err := RunCheckTUI(configPath, action == "dry-run", log); err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("\nCheck failed: %v\n", err)))
			}
		case "results":
			err = runResultsTUI(configPath)
		case "config":
			err = RunConfigTUI(configPath)
		case "quit":
			return nil
		}

		if err != nil {
			return err
		}
	}
}
