package screenshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type capture struct {
	target string
	out    string
}

// fakeDriver records captures and fails on the configured target.
type fakeDriver struct {
	captures []capture
	failOn   string
}

func (f *fakeDriver) Name() string { return "fake" }

func (f *fakeDriver) Capture(_ context.Context, target, outPath string) error {
	f.captures = append(f.captures, capture{target: target, out: outPath})
	if target == f.failOn {
		return ErrCaptureFailed
	}
	return nil
}

func TestShooterCaptureAll(t *testing.T) {
	t.Parallel()

	hrefs := []string{
		"/viewconfs/a.json",
		"https://higlass.io/api/v1/viewconfs/?d=xyz",
		"/viewconfs/b.json",
	}

	t.Run("captures in order with default paths", func(t *testing.T) {
		t.Parallel()

		d := &fakeDriver{}
		s := NewShooter(d)

		shots, err := s.CaptureAll(context.Background(), hrefs)
		if err != nil {
			t.Fatalf("CaptureAll() error = %v", err)
		}
		if len(shots) != 3 || len(d.captures) != 3 {
			t.Fatalf("got %d shots and %d captures, want 3", len(shots), len(d.captures))
		}

		wantOut := []string{
			"/tmp/screenshots/a.json.png",
			"/tmp/screenshots/xyz.png",
			"/tmp/screenshots/b.json.png",
		}
		for i := range hrefs {
			if d.captures[i].target != DefaultViewerURL+hrefs[i] {
				t.Errorf("capture[%d].target = %q", i, d.captures[i].target)
			}
			if d.captures[i].out != wantOut[i] {
				t.Errorf("capture[%d].out = %q, want %q", i, d.captures[i].out, wantOut[i])
			}
			if shots[i].Href != hrefs[i] || shots[i].Path != wantOut[i] {
				t.Errorf("shots[%d] = %+v", i, shots[i])
			}
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		t.Parallel()

		d := &fakeDriver{failOn: DefaultViewerURL + hrefs[1]}
		s := NewShooter(d, WithOutputDir(t.TempDir()))

		shots, err := s.CaptureAll(context.Background(), hrefs)
		if !errors.Is(err, ErrCaptureFailed) {
			t.Fatalf("CaptureAll() error = %v, want ErrCaptureFailed", err)
		}
		if len(d.captures) != 2 {
			t.Errorf("captures = %d, want 2", len(d.captures))
		}
		if len(shots) != 1 {
			t.Errorf("shots = %d, want 1", len(shots))
		}
	})

	t.Run("mkdir creates output directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "shots")
		s := NewShooter(&fakeDriver{}, WithOutputDir(dir), WithMkdir(true), WithViewerURL("http://viewer/?"))

		if _, err := s.CaptureAll(context.Background(), hrefs[:1]); err != nil {
			t.Fatalf("CaptureAll() error = %v", err)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("output directory not created: %v", err)
		}
	})

	t.Run("cancelled context stops before capture", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := &fakeDriver{}

		if _, err := NewShooter(d).CaptureAll(ctx, hrefs); !errors.Is(err, context.Canceled) {
			t.Errorf("CaptureAll() error = %v, want context.Canceled", err)
		}
		if len(d.captures) != 0 {
			t.Errorf("captures = %d, want 0", len(d.captures))
		}
	})
}
