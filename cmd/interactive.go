package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"studentweb/pkg/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to run checks, browse stored results and edit settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		// Progress is shown by spinners, console logs would tear through them
		log := logger
		if logFile == "" {
			log = logger.Level(zerolog.ErrorLevel)
		}

		return tui.RunTUI(path, log)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
