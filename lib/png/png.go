// Package png converts a rendered vector document to a PNG by loading it
// in a headless Chromium instance and screenshotting it.
package png

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Scale is the device-scale factor used when screenshotting; it doubles
// the effective resolution so text stays crisp.
const Scale = 2.0

type Playwright struct {
	PW      *playwright.Playwright
	Browser playwright.Browser
	Page    playwright.Page
}

func (pw *Playwright) RestartBrowser() (Playwright, error) {
	if err := pw.Browser.Close(); err != nil {
		return Playwright{}, fmt.Errorf("failed to close Playwright browser: %w", err)
	}
	return startPlaywright(pw.PW)
}

func (pw *Playwright) Cleanup() error {
	if err := pw.Browser.Close(); err != nil {
		return fmt.Errorf("failed to close Playwright browser: %w", err)
	}
	if err := pw.PW.Stop(); err != nil {
		return fmt.Errorf("failed to stop Playwright: %w", err)
	}
	return nil
}

func startPlaywright(pw *playwright.Playwright) (Playwright, error) {
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Args: []string{
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-background-timer-throttling",
			"--disable-backgrounding-occluded-windows",
			"--disable-features=TranslateUI",
			"--disable-ipc-flooding-protection",
		},
	})
	if err != nil {
		return Playwright{}, fmt.Errorf("failed to launch Chromium: %w", err)
	}
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		DeviceScaleFactor: playwright.Float(Scale),
	})
	if err != nil {
		return Playwright{}, fmt.Errorf("failed to start new Playwright browser context: %w", err)
	}
	page, err := context.NewPage()
	if err != nil {
		return Playwright{}, fmt.Errorf("failed to start new Playwright page: %w", err)
	}
	return Playwright{PW: pw, Browser: browser, Page: page}, nil
}

func InitPlaywright() (Playwright, error) {
	if err := playwright.Install(&playwright.RunOptions{Verbose: false, Browsers: []string{"chromium"}}); err != nil {
		return Playwright{}, fmt.Errorf("failed to install Playwright: %w", err)
	}
	pw, err := playwright.Run()
	if err != nil {
		return Playwright{}, fmt.Errorf("failed to run Playwright: %w", err)
	}
	return startPlaywright(pw)
}

func InitPlaywrightWithPrompt() (Playwright, error) {
	if os.Getenv("CI") != "" {
		return InitPlaywright()
	}

	fmt.Print("railroad needs to install Chromium to render PNGs. Continue? (y/N): ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return Playwright{}, fmt.Errorf("failed to read user input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		return Playwright{}, fmt.Errorf("chromium installation cancelled by user")
	}
	return InitPlaywright()
}

func MountSVG(page playwright.Page, svgMarkup string) error {
	html := `<!doctype html><meta charset="utf-8">
<style>
  html,body{margin:0;background:#fff}
  #stage{display:inline-block}
</style>
<div id="stage">` + svgMarkup + `</div>`
	_, err := page.Goto("data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html)))
	if err != nil {
		return err
	}
	locator, err := page.Locator("svg")
	if err != nil {
		return err
	}
	first, err := locator.First()
	if err != nil {
		return err
	}
	return first.WaitFor()
}

func ScreenshotSVG(page playwright.Page) ([]byte, error) {
	locator, err := page.Locator("svg")
	if err != nil {
		return nil, err
	}
	first, err := locator.First()
	if err != nil {
		return nil, err
	}
	return first.Screenshot()
}

// ConvertSVG rasterizes a rendered vector document to PNG bytes.
func ConvertSVG(browser playwright.Browser, svg []byte) ([]byte, error) {
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		DeviceScaleFactor: playwright.Float(Scale),
	})
	if err != nil {
		return nil, err
	}
	defer context.Close()

	page, err := context.NewPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := MountSVG(page, string(svg)); err != nil {
		return nil, err
	}

	png, err := ScreenshotSVG(page)
	if err != nil {
		return nil, err
	}
	return png, nil
}
