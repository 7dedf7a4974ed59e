package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"studentweb/pkg/config"
	"studentweb/pkg/logutils"
)

var (
	configPath string
	logLevel   string
	logFile    string

	logger    = zerolog.Nop()
	logCloser = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "studentweb",
	Short: "Get an email when new grades show up on StudentWeb",
	Long: `studentweb logs into FS StudentWeb, compares your current grades with the
ones seen on the previous run and emails you what changed.

Run 'studentweb config' once to enter your login and mail settings, then
schedule 'studentweb check' with cron.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, closer, err := logutils.New(logLevel, logFile)
		if err != nil {
			return fmt.Errorf("could not set up logging: %w", err)
		}
		logger = l
		logCloser = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logCloser()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logCloser()
		os.Exit(1)
	}
}

// resolveConfigPath picks the --config flag, then $STUDENTWEB_CONFIG, then ~/.studentweb.yaml
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	if p := os.Getenv("STUDENTWEB_CONFIG"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

func loadConfig() (string, *config.AppConfig, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.studentweb.yaml, env STUDENTWEB_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("STUDENTWEB_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", os.Getenv("STUDENTWEB_LOG_FILE"), "Append JSON logs to this file instead of stderr")
}
