package screenshot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// ExecDriver starts the browser binary once per capture.
type ExecDriver struct {
	browser           string
	virtualTimeBudget int
	window            Window
	logger            *slog.Logger
}

// ExecOption configures an ExecDriver.
type ExecOption func(*ExecDriver)

// WithBrowser sets the browser binary path.
func WithBrowser(path string) ExecOption {
	return func(d *ExecDriver) {
		if path != "" {
			d.browser = path
		}
	}
}

// WithVirtualTimeBudget sets the --virtual-time-budget value in milliseconds.
func WithVirtualTimeBudget(ms int) ExecOption {
	return func(d *ExecDriver) {
		if ms > 0 {
			d.virtualTimeBudget = ms
		}
	}
}

// WithWindow sets the --window-size value.
func WithWindow(w Window) ExecOption {
	return func(d *ExecDriver) {
		if w.Width > 0 && w.Height > 0 {
			d.window = w
		}
	}
}

// WithExecLogger sets the logger.
func WithExecLogger(logger *slog.Logger) ExecOption {
	return func(d *ExecDriver) {
		d.logger = logger
	}
}

// NewExecDriver creates an ExecDriver with the default browser and flags.
func NewExecDriver(opts ...ExecOption) *ExecDriver {
	d := &ExecDriver{
		browser:           DefaultBrowser,
		virtualTimeBudget: DefaultVirtualTimeBudget,
		window:            Window{Width: DefaultWindowWidth, Height: DefaultWindowHeight},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Name implements Driver.
func (d *ExecDriver) Name() string {
	return "exec"
}

// Args returns the browser arguments for one capture.
func (d *ExecDriver) Args(target, outPath string) []string {
	return []string{
		"--headless",
		"--disable-gpu",
		"--hide-scrollbars",
		"--screenshot=" + outPath,
		"--virtual-time-budget=" + strconv.Itoa(d.virtualTimeBudget),
		"--window-size=" + d.window.String(),
		target,
	}
}

// Capture implements Driver. A non-zero exit status is an error.
func (d *ExecDriver) Capture(ctx context.Context, target, outPath string) error {
	args := d.Args(target, outPath)
	d.logger.Debug("starting browser", "browser", d.browser, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, d.browser, args...) //nolint:gosec // browser path comes from user configuration
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: %s: %w: %s", ErrCaptureFailed, target, err, msg)
		}
		return fmt.Errorf("%w: %s: %w", ErrCaptureFailed, target, err)
	}
	return nil
}
