package watch

import (
	"time"

	"github.com/rs/zerolog"

	"studentweb/pkg/config"
	"studentweb/pkg/notify"
	"studentweb/pkg/portal"
	"studentweb/pkg/snapshot"
)

// NewRunner wires the production collaborators described by cfg
func NewRunner(cfg *config.AppConfig, log zerolog.Logger) *Runner {
	return &Runner{
		Fetcher: portal.NewClient(cfg.PortalOptions()),
		Store:   snapshot.NewStore(cfg.DataDir),
		Notifier: notify.NewMailer(notify.SMTPSettings{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.From,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			To:       cfg.Mail.To,
		}),
		Credentials: cfg.Credentials(),
		Tables:      cfg.Tables(),
		Now:         time.Now,
		Log:         log,
	}
}
