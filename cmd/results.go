package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studentweb/pkg/grades"
	"studentweb/pkg/tui"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the grades stored by the last check",
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, _ := cmd.Flags().GetString("variant")

		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}

		variants := cfg.Tables().Tracked()
		if variant != "" {
			v := grades.Variant(variant)
			if v != grades.Full && v != grades.Partial {
				return fmt.Errorf("unknown variant %q (use full or partial)", variant)
			}
			variants = []grades.Variant{v}
		}

		return tui.ShowResults(os.Stdout, cfg, variants)
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().StringP("variant", "v", "", "Only show one results table (full or partial)")
}
