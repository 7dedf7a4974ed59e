package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"studentweb/pkg/grades"
	"studentweb/pkg/portal"
	"studentweb/pkg/scraper"
)

// Environment variables that override secrets stored in the config file
const (
	EnvSSN          = "STUDENTWEB_SSN"
	EnvPIN          = "STUDENTWEB_PIN"
	EnvMailFrom     = "STUDENTWEB_MAIL_FROM"
	EnvMailPassword = "STUDENTWEB_MAIL_PASSWORD"
	EnvMailTo       = "STUDENTWEB_MAIL_TO"
)

// PortalConfig holds login details and page layout for StudentWeb
type PortalConfig struct {
	LoginURL       string `yaml:"login_url"`
	ResultsURL     string `yaml:"results_url"`
	SSN            string `yaml:"ssn,omitempty"`
	PIN            string `yaml:"pin,omitempty"`
	Headless       bool   `yaml:"headless"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Screenshot     bool   `yaml:"screenshot"`
	FullTableID    string `yaml:"full_table_id"`
	PartialTableID string `yaml:"partial_table_id"` // empty disables the partial results variant
}

// MailConfig holds the outbound SMTP account and the single recipient
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from,omitempty"`
	Password string `yaml:"password,omitempty"`
	To       string `yaml:"to,omitempty"`
}

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	Portal  PortalConfig `yaml:"portal"`
	Mail    MailConfig   `yaml:"mail"`
	DataDir string       `yaml:"data_dir,omitempty"`
}

// Default returns the configuration used when no config file exists
func Default() *AppConfig {
	return &AppConfig{
		Portal: PortalConfig{
			LoginURL:       portal.DefaultLoginURL,
			ResultsURL:     portal.DefaultResultsURL,
			Headless:       true,
			TimeoutSeconds: 60,
			Screenshot:     true,
			FullTableID:    scraper.DefaultFullTableID,
			PartialTableID: scraper.DefaultPartialTableID,
		},
		Mail: MailConfig{
			Host: "smtp.gmail.com",
			Port: 465,
		},
	}
}

// DefaultPath returns the absolute path to ~/.studentweb.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".studentweb.yaml"), nil
}

// DefaultDataDir returns the directory holding the grade snapshots (~/.studentweb)
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".studentweb"), nil
}

// Load reads the application configuration from path.
// Returns the defaults if the file does not exist. Secrets found in a .env file in
// the working directory or in the environment take precedence over the file.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	// .env is optional, it only feeds the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the application configuration back to disk.
// The file can hold credentials and is only readable by the owner.
func Save(path string, cfg *AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *AppConfig) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{EnvSSN, &c.Portal.SSN},
		{EnvPIN, &c.Portal.PIN},
		{EnvMailFrom, &c.Mail.From},
		{EnvMailPassword, &c.Mail.Password},
		{EnvMailTo, &c.Mail.To},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.dst = v
		}
	}
}

// applyDefaults sets default values for unset options that cannot be zero
func (c *AppConfig) applyDefaults() error {
	defaults := Default()
	if c.Portal.TimeoutSeconds == 0 {
		c.Portal.TimeoutSeconds = defaults.Portal.TimeoutSeconds
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = defaults.Mail.Port
	}
	if c.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}
	return nil
}

// Timeout returns the overall browser session timeout
func (c *AppConfig) Timeout() time.Duration {
	return time.Duration(c.Portal.TimeoutSeconds) * time.Second
}

// Tables returns the results tables to track, keyed by variant
func (c *AppConfig) Tables() scraper.TableIDs {
	return scraper.TableIDs{
		grades.Full:    c.Portal.FullTableID,
		grades.Partial: c.Portal.PartialTableID,
	}
}

// PortalOptions maps the config onto the browser client options
func (c *AppConfig) PortalOptions() portal.Options {
	return portal.Options{
		LoginURL:   c.Portal.LoginURL,
		ResultsURL: c.Portal.ResultsURL,
		Headless:   c.Portal.Headless,
		Timeout:    c.Timeout(),
		Screenshot: c.Portal.Screenshot,
	}
}

// Credentials returns the StudentWeb login
func (c *AppConfig) Credentials() portal.Credentials {
	return portal.Credentials{SSN: c.Portal.SSN, PIN: c.Portal.PIN}
}
