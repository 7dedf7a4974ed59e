package portal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{})

	assert.Equal(t, DefaultLoginURL, c.opts.LoginURL)
	assert.Equal(t, DefaultResultsURL, c.opts.ResultsURL)
	assert.Equal(t, 60*time.Second, c.opts.Timeout)
}

func TestNewClient_KeepsOptions(t *testing.T) {
	c := NewClient(Options{LoginURL: "http://localhost/login", Timeout: 5 * time.Second, Screenshot: true})

	assert.Equal(t, "http://localhost/login", c.opts.LoginURL)
	assert.Equal(t, 5*time.Second, c.opts.Timeout)
	assert.True(t, c.opts.Screenshot)
}

func TestFetchResults_MissingCredentials(t *testing.T) {
	c := NewClient(Options{})

	_, err := c.FetchResults(context.Background(), Credentials{SSN: "01019912345"})

	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestActions_Screenshot(t *testing.T) {
	var page Page
	without := NewClient(Options{}).actions(Credentials{SSN: "1", PIN: "2"}, &page)
	with := NewClient(Options{Screenshot: true}).actions(Credentials{SSN: "1", PIN: "2"}, &page)

	assert.Len(t, with, len(without)+1)
}

func TestScreenshotQuality_CapturesPNG(t *testing.T) {
	assert.Equal(t, 100, screenshotQuality, "lower qualities make chromedp capture JPEG")
}
