package cmd

import (
	"fmt"
	"net/mail"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"studentweb/pkg/config"
	"studentweb/pkg/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage studentweb configuration",
	Long:  "View or edit your login, mail and check settings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, cfg, err := loadConfig()
		if err != nil {
			return err
		}

		setRecipient, _ := cmd.Flags().GetString("set-recipient")
		if setRecipient != "" {
			if _, err := mail.ParseAddress(setRecipient); err != nil {
				return fmt.Errorf("invalid recipient address %q: %w", setRecipient, err)
			}
			cfg.Mail.To = setRecipient
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("✅ Notifications will be sent to: %s\n", setRecipient)
			return nil
		}

		show, _ := cmd.Flags().GetBool("show")
		if show || !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Printf("Config file: %s\n", path)
			tui.PrintConfig(os.Stdout, cfg)
			if err := cfg.Validate(); err != nil {
				fmt.Printf("\nIncomplete: %v\n", err)
			}
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI(path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-recipient", "r", "", "Set the address notifications are sent to")
	configCmd.Flags().BoolP("show", "s", false, "Print the current configuration with secrets masked")
}
