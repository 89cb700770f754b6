package model

import (
	"slices"
	"testing"
)

// TestCatalog tests the Catalog helpers.
func TestCatalog(t *testing.T) {
	t.Parallel()

	newTestCatalog := func() *Catalog {
		c := NewCatalog("docs/examples")
		c.Local = append(c.Local,
			NewExample("/viewconfs/a.json", "a.json", `{"type": "heatmap"}`, SourceLocal),
		)
		c.Remote = append(c.Remote,
			NewExample("http://higlass.io/api/v1/viewconfs/?d=abc", "Remote", `{"type": "line"}`, SourceRemote),
		)
		return c
	}

	t.Run("NewCatalog initializes empty collections", func(t *testing.T) {
		t.Parallel()

		c := NewCatalog(".")
		if c.APIPages == nil || c.Local == nil || c.Remote == nil || c.TrackTypes == nil {
			t.Error("expected non-nil collections")
		}
		if c.GeneratedAt.IsZero() {
			t.Error("expected GeneratedAt to be set")
		}
	})

	t.Run("All returns local before remote", func(t *testing.T) {
		t.Parallel()

		all := newTestCatalog().All()
		if len(all) != 2 {
			t.Fatalf("expected 2 examples, got %d", len(all))
		}
		if all[0].Source != SourceLocal || all[1].Source != SourceRemote {
			t.Errorf("unexpected order: %v, %v", all[0].Source, all[1].Source)
		}
	})

	t.Run("Hrefs follows All order", func(t *testing.T) {
		t.Parallel()

		got := newTestCatalog().Hrefs()
		want := []string{"/viewconfs/a.json", "http://higlass.io/api/v1/viewconfs/?d=abc"}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("ExampleCount sums both sources", func(t *testing.T) {
		t.Parallel()

		if n := newTestCatalog().ExampleCount(); n != 2 {
			t.Errorf("expected 2, got %d", n)
		}
	})
}

// TestExampleFingerprint tests the Fingerprint method.
func TestExampleFingerprint(t *testing.T) {
	t.Parallel()

	t.Run("computes SHA3-256 of the viewconf", func(t *testing.T) {
		t.Parallel()

		e := NewExample("/viewconfs/a", "a", "abc", SourceLocal)

		// SHA3-256("abc")
		expected := "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
		if got := e.Fingerprint(); got != expected {
			t.Errorf("got %q, expected %q", got, expected)
		}
	})

	t.Run("same viewconf gives same fingerprint", func(t *testing.T) {
		t.Parallel()

		a := NewExample("/viewconfs/a", "a", `{"type": "line"}`, SourceLocal)
		b := NewExample("/viewconfs/b", "b", `{"type": "line"}`, SourceLocal)
		if a.Fingerprint() != b.Fingerprint() {
			t.Error("expected equal fingerprints")
		}
	})

	t.Run("empty viewconf gives empty fingerprint", func(t *testing.T) {
		t.Parallel()

		e := NewExample("/viewconfs/a", "a", "", SourceLocal)
		if got := e.Fingerprint(); got != "" {
			t.Errorf("expected empty fingerprint, got %q", got)
		}
	})
}
