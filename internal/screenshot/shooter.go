package screenshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/vcindex/internal/model"
)

// Shooter captures every example with a Driver.
type Shooter struct {
	driver    Driver
	outputDir string
	viewerURL string
	mkdir     bool
	logger    *slog.Logger
}

// Option configures a Shooter.
type Option func(*Shooter)

// WithOutputDir sets the directory screenshots are written to.
func WithOutputDir(dir string) Option {
	return func(s *Shooter) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithViewerURL sets the prefix joined with each href.
func WithViewerURL(url string) Option {
	return func(s *Shooter) {
		if url != "" {
			s.viewerURL = url
		}
	}
}

// WithMkdir creates the output directory before the first capture.
func WithMkdir(mkdir bool) Option {
	return func(s *Shooter) {
		s.mkdir = mkdir
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shooter) {
		s.logger = logger
	}
}

// NewShooter creates a Shooter using driver.
func NewShooter(driver Driver, opts ...Option) *Shooter {
	s := &Shooter{
		driver:    driver,
		outputDir: DefaultOutputDir,
		viewerURL: DefaultViewerURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// OutputPath returns where the screenshot of href is written.
func (s *Shooter) OutputPath(href string) string {
	return filepath.Join(s.outputDir, FileName(href)+".png")
}

// CaptureAll captures each href in order and stops at the first failure.
// It returns the screenshots written before any failure.
func (s *Shooter) CaptureAll(ctx context.Context, hrefs []string) ([]model.Screenshot, error) {
	shots := make([]model.Screenshot, 0, len(hrefs))

	if s.mkdir {
		if err := os.MkdirAll(s.outputDir, 0o750); err != nil {
			return shots, fmt.Errorf("create screenshot directory: %w", err)
		}
	}

	for i, href := range hrefs {
		if err := ctx.Err(); err != nil {
			return shots, err
		}
		target := TargetURL(s.viewerURL, href)
		out := s.OutputPath(href)
		s.logger.Info("capturing screenshot",
			"driver", s.driver.Name(),
			"index", i+1,
			"total", len(hrefs),
			"target", target,
		)

		if err := s.driver.Capture(ctx, target, out); err != nil {
			return shots, err
		}
		shots = append(shots, model.Screenshot{Href: href, Path: out})
	}
	return shots, nil
}
