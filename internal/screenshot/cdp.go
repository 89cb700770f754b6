package screenshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// CDPDriver keeps one headless browser alive and captures over the DevTools
// protocol. Close must be called to stop the browser.
type CDPDriver struct {
	browserCtx    context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
	wait          time.Duration
	window        Window
	logger        *slog.Logger
}

// CDPConfig configures a CDPDriver.
type CDPConfig struct {
	// BrowserPath is the browser binary. Empty lets chromedp find one.
	BrowserPath string

	// VirtualTimeBudget is how long to wait after load before capturing, in milliseconds.
	VirtualTimeBudget int

	// Window is the viewport size.
	Window Window

	// Logger is used for debug output. Nil uses slog.Default.
	Logger *slog.Logger
}

// NewCDPDriver starts a headless browser.
func NewCDPDriver(ctx context.Context, cfg CDPConfig) (*CDPDriver, error) {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		cfg.Window = Window{Width: DefaultWindowWidth, Height: DefaultWindowHeight}
	}
	if cfg.VirtualTimeBudget <= 0 {
		cfg.VirtualTimeBudget = DefaultVirtualTimeBudget
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Headless,
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(cfg.Window.Width, cfg.Window.Height),
	)
	if cfg.BrowserPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.BrowserPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so a missing binary fails before the first capture.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: start browser: %w", ErrCaptureFailed, err)
	}

	return &CDPDriver{
		browserCtx:    browserCtx,
		allocCancel:   allocCancel,
		browserCancel: browserCancel,
		wait:          time.Duration(cfg.VirtualTimeBudget) * time.Millisecond,
		window:        cfg.Window,
		logger:        cfg.Logger,
	}, nil
}

// Name implements Driver.
func (d *CDPDriver) Name() string {
	return "cdp"
}

// Capture implements Driver. Each capture runs in its own tab.
func (d *CDPDriver) Capture(ctx context.Context, target, outPath string) error {
	tabCtx, cancel := chromedp.NewContext(d.browserCtx)
	defer cancel()

	// Stop the tab when the caller's context ends.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	d.logger.Debug("capturing", "target", target, "out", outPath)

	var buf []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(d.window.Width), int64(d.window.Height)),
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		chromedp.Sleep(d.wait),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCaptureFailed, target, err)
	}

	if err := os.WriteFile(outPath, buf, 0o644); err != nil { //nolint:gosec // screenshots are meant to be shared
		return fmt.Errorf("write screenshot %s: %w", outPath, err)
	}
	return nil
}

// Close stops the browser.
func (d *CDPDriver) Close() {
	d.browserCancel()
	d.allocCancel()
}
