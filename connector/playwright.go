package connector

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// PlaywrightDriver connects through playwright-go. Each Connect starts its own driver process,
// which is stopped when the returned Browser is closed.
type PlaywrightDriver struct {
	Log *zap.SugaredLogger
	// Browser is the browser type the server was launched with: chromium, firefox or webkit.
	Browser string
	// Install installs the playwright driver before connecting. Browsers are never installed, they run on the server.
	Install bool
}

func (d *PlaywrightDriver) Connect(endpoint string) (Browser, error) {
	opts := &playwright.RunOptions{SkipInstallBrowsers: true}
	if d.Install {
		d.logger().Debug("installing playwright driver")
		err := playwright.Install(opts)
		if err != nil {
			return nil, fmt.Errorf("installing playwright driver: %w", err)
		}
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("starting playwright driver: %w", err)
	}

	browserType, err := d.browserType(pw)
	if err != nil {
		d.stop(pw)
		return nil, err
	}

	b, err := browserType.Connect(endpoint)
	if err != nil {
		d.stop(pw)
		return nil, err
	}
	return &playwrightBrowser{pw: pw, browser: b}, nil
}

func (d *PlaywrightDriver) browserType(pw *playwright.Playwright) (playwright.BrowserType, error) {
	switch d.Browser {
	case "", "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", d.Browser)
	}
}

func (d *PlaywrightDriver) logger() *zap.SugaredLogger {
	if d.Log == nil {
		return zap.NewNop().Sugar()
	}
	return d.Log
}

func (d *PlaywrightDriver) stop(pw *playwright.Playwright) {
	if err := pw.Stop(); err != nil {
		d.logger().Debugf("error stopping playwright driver: %s", err)
	}
}

type playwrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func (b *playwrightBrowser) NewPage() (Page, error) {
	p, err := b.browser.NewPage()
	if err != nil {
		return nil, err
	}
	return &playwrightPage{page: p}, nil
}

// Close disconnects from the server, which keeps running, and stops the local driver.
func (b *playwrightBrowser) Close() error {
	closeErr := b.browser.Close()
	stopErr := b.pw.Stop()
	return errors.Join(closeErr, stopErr)
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(url string) error {
	_, err := p.page.Goto(url)
	return err
}

func (p *playwrightPage) Title() (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	})
	return err
}
