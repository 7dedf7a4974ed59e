package tui

import (
	"fmt"
	"io"
	"net/mail"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"studentweb/pkg/config"
	"studentweb/pkg/scraper"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI(configPath string) error {
	for {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set StudentWeb Login", "login"),
						huh.NewOption("Set Mail Delivery", "mail"),
						huh.NewOption("Set Check Options", "options"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "login":
			err = runSetLoginTUI(configPath, cfg)
		case "mail":
			err = runSetMailTUI(configPath, cfg)
		case "options":
			err = runSetOptionsTUI(configPath, cfg)
		case "view":
			fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- Current Configuration (%s) ---", configPath)))
			PrintConfig(os.Stdout, cfg)
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

func runSetLoginTUI(configPath string, cfg *config.AppConfig) error {
	ssn := cfg.Portal.SSN
	pin := cfg.Portal.PIN

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("National identity number (fødselsnummer)").
				Value(&ssn).
				Validate(digits(11)),
			huh.NewInput().
				Title("StudentWeb PIN").
				EchoMode(huh.EchoModePassword).
				Value(&pin).
				Validate(notEmpty),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Portal.SSN = strings.TrimSpace(ssn)
	cfg.Portal.PIN = strings.TrimSpace(pin)
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ StudentWeb login saved\n"))
	return nil
}

func runSetMailTUI(configPath string, cfg *config.AppConfig) error {
	from := cfg.Mail.From
	password := cfg.Mail.Password
	to := cfg.Mail.To
	host := cfg.Mail.Host
	port := strconv.Itoa(cfg.Mail.Port)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Sender address").Value(&from).Validate(emailAddress),
			huh.NewInput().Title("Sender password").EchoMode(huh.EchoModePassword).Value(&password).Validate(notEmpty),
			huh.NewInput().Title("Send notifications to").Value(&to).Validate(emailAddress),
		),
		huh.NewGroup(
			huh.NewInput().Title("SMTP host").Value(&host).Validate(notEmpty),
			huh.NewInput().Title("SMTP port").Description("465 uses implicit TLS").Value(&port).Validate(portNumber),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Mail.From = strings.TrimSpace(from)
	cfg.Mail.Password = password
	cfg.Mail.To = strings.TrimSpace(to)
	cfg.Mail.Host = strings.TrimSpace(host)
	cfg.Mail.Port, _ = strconv.Atoi(strings.TrimSpace(port))

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Notifications will be sent to: %s\n", cfg.Mail.To)))
	return nil
}

func runSetOptionsTUI(configPath string, cfg *config.AppConfig) error {
	screenshot := cfg.Portal.Screenshot
	partial := cfg.Portal.PartialTableID != ""
	headless := cfg.Portal.Headless

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Attach a screenshot of the results page?").Value(&screenshot),
			huh.NewConfirm().Title("Track partial (interim) results as well?").Value(&partial),
			huh.NewConfirm().Title("Run the browser headless?").Value(&headless),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Portal.Screenshot = screenshot
	cfg.Portal.Headless = headless
	switch {
	case !partial:
		cfg.Portal.PartialTableID = ""
	case cfg.Portal.PartialTableID == "":
		cfg.Portal.PartialTableID = scraper.DefaultPartialTableID
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Check options saved\n"))
	return nil
}

// PrintConfig writes the configuration with secrets masked
func PrintConfig(w io.Writer, cfg *config.AppConfig) {
	fmt.Fprintf(w, "Login URL:       %s\n", cfg.Portal.LoginURL)
	fmt.Fprintf(w, "Results URL:     %s\n", cfg.Portal.ResultsURL)
	fmt.Fprintf(w, "SSN:             %s\n", mask(cfg.Portal.SSN, 6))
	fmt.Fprintf(w, "PIN:             %s\n", mask(cfg.Portal.PIN, 0))
	fmt.Fprintf(w, "Screenshot:      %t\n", cfg.Portal.Screenshot)
	fmt.Fprintf(w, "Partial results: %t\n", cfg.Portal.PartialTableID != "")
	fmt.Fprintf(w, "SMTP server:     %s:%d\n", cfg.Mail.Host, cfg.Mail.Port)
	fmt.Fprintf(w, "Sender:          %s\n", orNotSet(cfg.Mail.From))
	fmt.Fprintf(w, "Sender password: %s\n", mask(cfg.Mail.Password, 0))
	fmt.Fprintf(w, "Recipient:       %s\n", orNotSet(cfg.Mail.To))
	fmt.Fprintf(w, "Data directory:  %s\n", cfg.DataDir)
}

// mask hides s except for its first keep characters
func mask(s string, keep int) string {
	if s == "" {
		return "Not set"
	}
	r := []rune(s)
	if keep > len(r) {
		keep = len(r)
	}
	return string(r[:keep]) + strings.Repeat("*", len(r)-keep)
}

func orNotSet(s string) string {
	if s == "" {
		return "Not set"
	}
	return s
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this field is required")
	}
	return nil
}

func digits(n int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if len(s) != n {
			return fmt.Errorf("must be %d digits", n)
		}
		for _, c := range s {
			if c < '0' || c > '9' {
				return fmt.Errorf("must be %d digits", n)
			}
		}
		return nil
	}
}

func emailAddress(s string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("not a valid email address")
	}
	return nil
}

func portNumber(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("must be a port number")
	}
	return nil
}
