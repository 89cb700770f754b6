package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/vcindex/internal/collector"
	"github.com/nao1215/vcindex/internal/model"
	"github.com/nao1215/vcindex/internal/screenshot"
)

// panicGetter fails the test if the network is touched.
type panicGetter struct {
	t *testing.T
}

func (g panicGetter) GetText(context.Context, string) (string, error) {
	g.t.Error("unexpected GetText call")
	return "", nil
}

func (g panicGetter) GetJSON(context.Context, string, any) error {
	g.t.Error("unexpected GetJSON call")
	return nil
}

type recordingDriver struct {
	targets []string
}

func (d *recordingDriver) Name() string { return "recording" }

func (d *recordingDriver) Capture(_ context.Context, target, _ string) error {
	d.targets = append(d.targets, target)
	return nil
}

func newExampleDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		filepath.Join(dir, "apis", "svg.html"):        "<html></html>",
		filepath.Join(dir, "viewconfs", "a.json"):     `{"tracks": [{"type": "heatmap"}, {"type": "line"}]}`,
		filepath.Join(dir, "viewconfs", "b.json"):     `{"tracks": [{"type":"bar"}]}`,
		filepath.Join(dir, "viewconfs", "empty.json"): `{}`,
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLocalRun(t *testing.T) {
	t.Parallel()

	dir := newExampleDir(t)
	driver := &recordingDriver{}
	shooter := screenshot.NewShooter(driver, screenshot.WithOutputDir(t.TempDir()))

	p := New()
	p.AddSteps(
		NewAPIPagesStep(),
		NewLocalExamplesStep(),
		NewRemoteExamplesStep(collector.NewRemoteCollector(panicGetter{t: t}, "unused"), true),
		NewTrackTypesStep(),
		NewScreenshotStep(shooter, nil),
	)

	catalog := model.NewCatalog(dir)
	if err := p.Execute(context.Background(), catalog); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(catalog.APIPages) != 1 || catalog.APIPages[0] != "svg.html" {
		t.Errorf("APIPages = %v", catalog.APIPages)
	}
	if len(catalog.Local) != 3 {
		t.Errorf("len(Local) = %d, want 3", len(catalog.Local))
	}
	if len(catalog.Remote) != 0 {
		t.Errorf("len(Remote) = %d, want 0", len(catalog.Remote))
	}

	wantTypes := []string{"bar", "heatmap", "line"}
	if len(catalog.TrackTypes) != len(wantTypes) {
		t.Fatalf("TrackTypes = %v, want %v", catalog.TrackTypes, wantTypes)
	}
	for i := range wantTypes {
		if catalog.TrackTypes[i] != wantTypes[i] {
			t.Errorf("TrackTypes[%d] = %q, want %q", i, catalog.TrackTypes[i], wantTypes[i])
		}
	}

	if len(driver.targets) != 3 || len(catalog.Screenshots) != 3 {
		t.Errorf("captured %d targets, %d screenshots; want 3", len(driver.targets), len(catalog.Screenshots))
	}
}

func TestStepsFailOnMissingDirectories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		step Step
	}{
		{name: "api pages", step: NewAPIPagesStep()},
		{name: "local examples", step: NewLocalExamplesStep()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.step.Do(context.Background(), model.NewCatalog(t.TempDir())); err == nil {
				t.Errorf("%s.Do() expected error", tt.step.Name())
			}
		})
	}
}

func TestTrackTypesStepEmpty(t *testing.T) {
	t.Parallel()

	catalog := model.NewCatalog(".")
	if err := NewTrackTypesStep().Do(context.Background(), catalog); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if catalog.TrackTypes == nil || len(catalog.TrackTypes) != 0 {
		t.Errorf("TrackTypes = %v, want empty", catalog.TrackTypes)
	}
}

type failingDriver struct{}

func (failingDriver) Name() string { return "failing" }

func (failingDriver) Capture(context.Context, string, string) error {
	return screenshot.ErrCaptureFailed
}

func TestScreenshotStepFailure(t *testing.T) {
	t.Parallel()

	catalog := model.NewCatalog(".")
	catalog.Local = []model.Example{model.NewExample("/viewconfs/a", "a", "{}", model.SourceLocal)}

	step := NewScreenshotStep(screenshot.NewShooter(failingDriver{}), nil)
	if err := step.Do(context.Background(), catalog); !errors.Is(err, screenshot.ErrCaptureFailed) {
		t.Errorf("Do() error = %v, want ErrCaptureFailed", err)
	}
}
