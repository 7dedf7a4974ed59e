package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/rs/zerolog"

	"studentweb/pkg/config"
	"studentweb/pkg/watch"
)

// RunCheckTUI performs one check behind a spinner and prints the outcome
func RunCheckTUI(configPath string, dryRun bool, log zerolog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	validate := cfg.Validate
	if dryRun {
		validate = cfg.ValidatePortal
	}
	if err := validate(); err != nil {
		return fmt.Errorf("configuration incomplete, open Settings first: %w", err)
	}

	runner := watch.NewRunner(cfg, log)

	var report *watch.Report
	_ = Spin(func() {
		report, err = runner.Run(context.Background(), watch.RunOptions{DryRun: dryRun})
	})

	PrintReport(os.Stdout, report, cfg.Mail.To, dryRun)
	return err
}

// Spin runs action behind the check spinner and returns once it is done
func Spin(action func()) error {
	return spinner.New().
		Title("Logging into StudentWeb and checking results...").
		Action(action).
		Run()
}

// PrintReport writes a human summary of a check run to w
func PrintReport(w io.Writer, report *watch.Report, recipient string, dryRun bool) {
	if report == nil {
		return
	}

	baseline := "No previous %s results found, stored %d course(s) as the baseline."
	if dryRun {
		baseline = "No previous %s results found, %d course(s) would become the baseline."
	}
	for _, v := range report.Baseline {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(baseline, v, len(report.Current[v].Records))))
	}

	switch {
	case report.Message == nil:
		fmt.Fprintln(w, accentStyle.Render("No changes in results found."))
	case dryRun:
		fmt.Fprintln(w, accentStyle.Bold(true).Render(report.Message.Subject))
		fmt.Fprintln(w, report.Message.Body)
		fmt.Fprintln(w, mutedStyle.Render("Dry run: nothing was sent or saved."))
	case report.Delivered:
		fmt.Fprintln(w, accentStyle.Render(fmt.Sprintf("✅ Sent %d grade change(s) to %s", report.Changes(), recipient)))
	}

	for _, pw := range report.PersistWarnings {
		fmt.Fprintln(w, warnStyle.Render("Warning: "+pw.Error()))
	}
}
