package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"studentweb/pkg/tui"
	"studentweb/pkg/watch"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check StudentWeb once and email any grade changes",
	Long: `Log into StudentWeb, compare the results with the previous run and email
new or changed grades. The first run only records the current grades.

Exits non-zero if scraping, reading the stored results or sending the email fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		noScreenshot, _ := cmd.Flags().GetBool("no-screenshot")

		path, cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if noScreenshot {
			cfg.Portal.Screenshot = false
		}

		validate := cfg.Validate
		if dryRun {
			validate = cfg.ValidatePortal
		}
		if err := validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}

		spin := useSpinner(term.IsTerminal(int(os.Stdout.Fd())), logFile != "", logLevelChosen(cmd))
		log := logger
		if spin && logFile == "" {
			log = logger.Level(zerolog.ErrorLevel)
		}

		runner := watch.NewRunner(cfg, log)
		opts := watch.RunOptions{DryRun: dryRun}

		var report *watch.Report
		if spin {
			if serr := tui.Spin(func() { report, err = runner.Run(cmd.Context(), opts) }); serr != nil {
				return serr
			}
		} else {
			report, err = runner.Run(cmd.Context(), opts)
		}

		tui.PrintReport(os.Stdout, report, cfg.Mail.To, dryRun)
		return err
	},
}

// useSpinner reports whether the check runs behind a spinner. Console logs
// asked for with an explicit level are left alone so they stay readable.
func useSpinner(stdoutTTY, logToFile, levelChosen bool) bool {
	if !stdoutTTY {
		return false
	}
	return logToFile || !levelChosen
}

func logLevelChosen(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("log-level") || os.Getenv("STUDENTWEB_LOG_LEVEL") != ""
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("dry-run", false, "Print the notification instead of sending it and keep the stored results")
	checkCmd.Flags().Bool("no-screenshot", false, "Do not attach a screenshot of the results page")
}
