package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentweb/pkg/grades"
	"studentweb/pkg/scraper"
)

// isolate points HOME and the working directory at temp dirs so no real
// config or .env leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home) // For Windows compatibility in tests
	t.Chdir(t.TempDir())
	for _, env := range []string{EnvSSN, EnvPIN, EnvMailFrom, EnvMailPassword, EnvMailTo} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	return home
}

func validConfig(t *testing.T) *AppConfig {
	t.Helper()
	cfg := Default()
	cfg.Portal.SSN = "01019912345"
	cfg.Portal.PIN = "1234"
	cfg.Mail.From = "grades-bot@example.com"
	cfg.Mail.Password = "app-password"
	cfg.Mail.To = "student@example.com"
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestConfigLoadMissing(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(filepath.Join(home, ".studentweb.yaml"))
	require.NoError(t, err, "a missing config file falls back to defaults")

	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.True(t, cfg.Portal.Headless)
	assert.Equal(t, filepath.Join(home, ".studentweb"), cfg.DataDir)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestConfigLoadSave(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "conf", "studentweb.yaml")

	cfg := validConfig(t)
	cfg.Portal.PartialTableID = ""
	cfg.Portal.TimeoutSeconds = 90

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, []grades.Variant{grades.Full}, loaded.Tables().Tracked())
}

func TestConfigParseError(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".studentweb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("portal: [unclosed"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestConfigEnvOverrides(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".studentweb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("portal:\n  ssn: \"111\"\n  pin: \"0000\"\n"), 0o644))

	t.Setenv(EnvPIN, "9876")
	t.Setenv(EnvMailPassword, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "111", cfg.Portal.SSN)
	assert.Equal(t, "9876", cfg.Portal.PIN)
	assert.Equal(t, "from-env", cfg.Mail.Password)
	assert.Equal(t, scraper.DefaultFullTableID, cfg.Portal.FullTableID, "unset keys keep their defaults")
}

func TestConfigDotEnv(t *testing.T) {
	home := isolate(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".env"), []byte(EnvMailTo+"=dotenv@example.com\n"), 0o600))

	cfg, err := Load(filepath.Join(home, ".studentweb.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "dotenv@example.com", cfg.Mail.To)
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

func TestValidate_MissingSecrets(t *testing.T) {
	cfg := Default()
	cfg.DataDir = t.TempDir()

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	var fields []string
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{
		"portal.ssn", "portal.pin", "mail.from", "mail.password", "mail.to",
	}, fields)
}

func TestValidate_InvalidValues(t *testing.T) {
	cfg := validConfig(t)
	cfg.Portal.LoginURL = "/login.jsf"
	cfg.Mail.To = "not an address"
	cfg.Mail.Port = 0

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}

func TestValidatePortal_IgnoresMail(t *testing.T) {
	cfg := validConfig(t)
	cfg.Mail = MailConfig{}

	assert.NoError(t, cfg.ValidatePortal())
	assert.Error(t, cfg.Validate())
}
