package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/spboyer/quizpilot/internal/config"
	"github.com/spboyer/quizpilot/internal/verify"
)

// Launch starts a playwright browser for the configured engine and returns a
// Driver bound to a fresh page. Close the driver to stop the browser.
func Launch(cfg *config.Config, locator Clicker, gate verify.Gate) (*Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch cfg.Browser.Engine {
	case "firefox", "":
		bt = pw.Firefox
	case "chromium":
		bt = pw.Chromium
	case "webkit":
		bt = pw.WebKit
	default:
		_ = pw.Stop()
		return nil, fmt.Errorf("unknown browser engine %q", cfg.Browser.Engine)
	}

	browser, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.IsHeadless()),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching %s: %w", cfg.Browser.Engine, err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	page.SetDefaultTimeout(millis(cfg.Timing.ElementTimeout))

	return newDriver(&playwrightPage{pw: pw, browser: browser, page: page}, cfg, locator, gate), nil
}

type playwrightPage struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

var _ browserPage = (*playwrightPage)(nil)

func millis(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}

// translate marks playwright timeouts as missing elements.
func translate(err error) error {
	if err != nil && errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", errMissing, err)
	}
	return err
}

func (p *playwrightPage) Goto(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return translate(err)
}

func (p *playwrightPage) Count(selector string) (int, error) {
	n, err := p.page.Locator(selector).Count()
	return n, translate(err)
}

func (p *playwrightPage) Fill(selector, value string) error {
	return translate(p.page.Locator(selector).First().Fill(value))
}

func (p *playwrightPage) Click(selector string, timeout time.Duration) error {
	loc := p.page.Locator(selector).First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(millis(timeout)),
	}); err != nil {
		return translate(err)
	}
	return translate(loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(millis(timeout)),
	}))
}

func (p *playwrightPage) Type(text string) error {
	return translate(p.page.Keyboard().Type(text))
}

func (p *playwrightPage) InnerText(selector string, timeout time.Duration) (string, error) {
	text, err := p.page.Locator(selector).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(millis(timeout)),
	})
	return text, translate(err)
}

func (p *playwrightPage) DispatchClick(selector string) error {
	return translate(p.page.Locator(selector).First().DispatchEvent("click", nil))
}

func (p *playwrightPage) Reload() error {
	_, err := p.page.Reload()
	return translate(err)
}

func (p *playwrightPage) Close() error {
	return errors.Join(p.browser.Close(), p.pw.Stop())
}
