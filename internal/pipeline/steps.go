package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/vcindex/internal/collector"
	"github.com/nao1215/vcindex/internal/model"
	"github.com/nao1215/vcindex/internal/screenshot"
	"github.com/nao1215/vcindex/internal/tracktype"
)

// APIPagesStep lists the API example pages.
type APIPagesStep struct{}

// NewAPIPagesStep creates an APIPagesStep.
func NewAPIPagesStep() *APIPagesStep {
	return &APIPagesStep{}
}

// Name returns the step name.
func (s *APIPagesStep) Name() string {
	return "api_pages"
}

// Do fills catalog.APIPages from <BaseDir>/apis.
func (s *APIPagesStep) Do(_ context.Context, catalog *model.Catalog) error {
	pages, err := collector.APIPages(catalog.BaseDir)
	if err != nil {
		return err
	}
	catalog.APIPages = pages
	return nil
}

// LocalExamplesStep reads the local viewconfs.
type LocalExamplesStep struct{}

// NewLocalExamplesStep creates a LocalExamplesStep.
func NewLocalExamplesStep() *LocalExamplesStep {
	return &LocalExamplesStep{}
}

// Name returns the step name.
func (s *LocalExamplesStep) Name() string {
	return "local_examples"
}

// Do fills catalog.Local from <BaseDir>/viewconfs.
func (s *LocalExamplesStep) Do(_ context.Context, catalog *model.Catalog) error {
	examples, err := collector.LocalExamples(catalog.BaseDir)
	if err != nil {
		return err
	}
	catalog.Local = examples
	return nil
}

// RemoteExamplesStep downloads the curated remote examples.
type RemoteExamplesStep struct {
	collector *collector.RemoteCollector
	skip      bool
}

// NewRemoteExamplesStep creates a RemoteExamplesStep. When skip is true the
// step leaves catalog.Remote empty and makes no requests.
func NewRemoteExamplesStep(rc *collector.RemoteCollector, skip bool) *RemoteExamplesStep {
	return &RemoteExamplesStep{collector: rc, skip: skip}
}

// Name returns the step name.
func (s *RemoteExamplesStep) Name() string {
	return "remote_examples"
}

// Do fills catalog.Remote.
func (s *RemoteExamplesStep) Do(ctx context.Context, catalog *model.Catalog) error {
	examples, err := s.collector.Collect(ctx, s.skip)
	if err != nil {
		return err
	}
	catalog.Remote = examples
	return nil
}

// TrackTypesStep computes the sorted track-type union of all examples.
type TrackTypesStep struct{}

// NewTrackTypesStep creates a TrackTypesStep.
func NewTrackTypesStep() *TrackTypesStep {
	return &TrackTypesStep{}
}

// Name returns the step name.
func (s *TrackTypesStep) Name() string {
	return "track_types"
}

// Do fills catalog.TrackTypes.
func (s *TrackTypesStep) Do(_ context.Context, catalog *model.Catalog) error {
	catalog.TrackTypes = tracktype.Union(catalog.All()).Sorted()
	return nil
}

// ScreenshotStep captures a screenshot of every example.
type ScreenshotStep struct {
	shooter *screenshot.Shooter
	logger  *slog.Logger
}

// NewScreenshotStep creates a ScreenshotStep.
func NewScreenshotStep(shooter *screenshot.Shooter, logger *slog.Logger) *ScreenshotStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScreenshotStep{shooter: shooter, logger: logger}
}

// Name returns the step name.
func (s *ScreenshotStep) Name() string {
	return "screenshots"
}

// Do captures local examples first, then remote ones, and records the
// written files in catalog.Screenshots.
func (s *ScreenshotStep) Do(ctx context.Context, catalog *model.Catalog) error {
	shots, err := s.shooter.CaptureAll(ctx, catalog.Hrefs())
	catalog.Screenshots = shots
	if err != nil {
		return err
	}
	s.logger.Debug("screenshots captured", "count", len(shots))
	return nil
}
