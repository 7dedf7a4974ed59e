package config

import (
	"fmt"
	"net/mail"
	"net/url"

	"github.com/hay-kot/criterio"
)

// Validate checks that everything a check run needs is configured.
// All problems are reported at once as criterio field errors.
func (c *AppConfig) Validate() error {
	return criterio.ValidateStruct(
		c.ValidatePortal(),
		c.validateMail(),
	)
}

// ValidatePortal checks only what is needed to scrape and store results,
// which is enough for a dry run.
func (c *AppConfig) ValidatePortal() error {
	return criterio.ValidateStruct(
		c.validatePortal(),
		criterio.Run("data_dir", c.DataDir, required),
	)
}

func (c *AppConfig) validatePortal() error {
	var errs criterio.FieldErrorsBuilder

	if err := absoluteURL(c.Portal.LoginURL); err != nil {
		errs = errs.Append("portal.login_url", err)
	}
	if err := absoluteURL(c.Portal.ResultsURL); err != nil {
		errs = errs.Append("portal.results_url", err)
	}
	if c.Portal.SSN == "" {
		errs = errs.Append("portal.ssn", fmt.Errorf("is required (or set %s)", EnvSSN))
	}
	if c.Portal.PIN == "" {
		errs = errs.Append("portal.pin", fmt.Errorf("is required (or set %s)", EnvPIN))
	}
	if c.Portal.TimeoutSeconds < 1 {
		errs = errs.Append("portal.timeout_seconds", fmt.Errorf("must be at least 1"))
	}
	if c.Portal.FullTableID == "" {
		errs = errs.Append("portal.full_table_id", fmt.Errorf("is required"))
	}

	return errs.ToError()
}

func (c *AppConfig) validateMail() error {
	var errs criterio.FieldErrorsBuilder

	if c.Mail.Host == "" {
		errs = errs.Append("mail.host", fmt.Errorf("is required"))
	}
	if c.Mail.Port < 1 || c.Mail.Port > 65535 {
		errs = errs.Append("mail.port", fmt.Errorf("must be between 1 and 65535"))
	}
	if err := address(c.Mail.From); err != nil {
		errs = errs.Append("mail.from", err)
	}
	if c.Mail.Password == "" {
		errs = errs.Append("mail.password", fmt.Errorf("is required (or set %s)", EnvMailPassword))
	}
	if err := address(c.Mail.To); err != nil {
		errs = errs.Append("mail.to", err)
	}

	return errs.ToError()
}

func required(s string) error {
	if s == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func address(s string) error {
	if s == "" {
		return fmt.Errorf("is required")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("invalid address %q: %w", s, err)
	}
	return nil
}

func absoluteURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", s, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL, got %q", s)
	}
	return nil
}
