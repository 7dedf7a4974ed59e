package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Default StudentWeb endpoints for OsloMet (FSHIOA)
const (
	DefaultLoginURL   = "https://fsweb.no/studentweb/login.jsf?inst=FSHIOA"
	DefaultResultsURL = "https://fsweb.no/studentweb/resultater.jsf"
)

// The portal is emulated as a phone, its mobile layout is the easiest to navigate
const (
	mobileUserAgent = "Mozilla/5.0 (Linux; Android 4.2.1; en-us; Nexus 5 Build/JOP40D) AppleWebKit/535.19 (KHTML, like Gecko) Chrome/18.0.1025.166 Mobile Safari/535.19"
	mobileWidth     = 720
	mobileHeight    = 900
	mobileScale     = 3.0

	// chromedp only captures PNG at quality 100, anything lower is JPEG
	screenshotQuality = 100
)

// Element selectors on the login and results pages
const (
	ssnField   = `[id*="fodselsnummer"]`
	pinField   = `[id*="pincode"]`
	loginBtn   = `[id*=":login"]`
	viewToggle = `[id*="resultatlisteForm:j_idt154:1"]`
)

// settleDelay gives the JSF page time to re-render after a click
const settleDelay = time.Second

// ErrMissingCredentials is returned before a browser is started without a login
var ErrMissingCredentials = errors.New("missing StudentWeb credentials")

// Credentials identify the student on the login page
type Credentials struct {
	SSN string // fødselsnummer
	PIN string
}

// Page is the scraped results page
type Page struct {
	HTML       string
	Screenshot []byte // PNG, empty unless screenshots are enabled
}

// Options configure a Client
type Options struct {
	LoginURL   string
	ResultsURL string
	Headless   bool
	Timeout    time.Duration
	Screenshot bool
}

// Client drives a headless Chrome session against StudentWeb
type Client struct {
	opts Options
}

// NewClient creates a new portal client, filling in defaults for empty options
func NewClient(opts Options) *Client {
	if opts.LoginURL == "" {
		opts.LoginURL = DefaultLoginURL
	}
	if opts.ResultsURL == "" {
		opts.ResultsURL = DefaultResultsURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{opts: opts}
}

// FetchResults logs in, opens the full results view and returns its markup.
// The browser is always shut down before returning.
func (c *Client) FetchResults(ctx context.Context, creds Credentials) (*Page, error) {
	if creds.SSN == "" || creds.PIN == "" {
		return nil, ErrMissingCredentials
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.opts.Headless),
		chromedp.UserAgent(mobileUserAgent),
		chromedp.WindowSize(mobileWidth, mobileHeight),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, c.opts.Timeout)
	defer cancelRun()

	page := &Page{}
	if err := chromedp.Run(runCtx, c.actions(creds, page)...); err != nil {
		return nil, fmt.Errorf("failed to fetch results from %s: %w", c.opts.ResultsURL, err)
	}

	return page, nil
}

func (c *Client) actions(creds Credentials, page *Page) []chromedp.Action {
	actions := []chromedp.Action{
		chromedp.EmulateViewport(mobileWidth, mobileHeight, chromedp.EmulateScale(mobileScale), chromedp.EmulateMobile),

		chromedp.Navigate(c.opts.LoginURL),
		chromedp.WaitVisible(ssnField, chromedp.ByQuery),
		chromedp.SendKeys(ssnField, creds.SSN, chromedp.ByQuery),
		chromedp.SendKeys(pinField, creds.PIN, chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.Click(loginBtn, chromedp.ByQuery),
		chromedp.Sleep(settleDelay),

		chromedp.Navigate(c.opts.ResultsURL),
		chromedp.Reload(),
		chromedp.Sleep(settleDelay),
		// The first click on the "all results" toggle does not always stick
		chromedp.Click(viewToggle, chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.Click(viewToggle, chromedp.ByQuery),
		chromedp.Sleep(settleDelay),

		chromedp.OuterHTML("html", &page.HTML, chromedp.ByQuery),
	}

	if c.opts.Screenshot {
		actions = append(actions, chromedp.FullScreenshot(&page.Screenshot, screenshotQuality))
	}

	return actions
}
