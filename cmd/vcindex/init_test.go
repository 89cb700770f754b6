package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/vcindex/internal/config"
)

func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sub", ".vcindex")
		cmd := NewInitCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetArgs([]string{"-o", path})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Created configuration file") {
			t.Errorf("unexpected output: %q", out.String())
		}

		// The template must load without changing any default.
		cfg := config.NewConfig()
		if err := config.LoadConfigFile(path, cfg); err != nil {
			t.Fatalf("generated file does not load: %v", err)
		}
		if cfg.GistURL != config.DefaultGistURL {
			t.Errorf("template changed gist URL to %q", cfg.GistURL)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".vcindex")
		if err := os.WriteFile(path, []byte("format: json\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", path})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for existing file")
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".vcindex")
		if err := os.WriteFile(path, []byte("format: json\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", path, "-f"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path) //nolint:gosec // test file in temp dir
		if err != nil {
			t.Fatal(err)
		}
		if string(data) == "format: json\n" {
			t.Error("expected file to be replaced by the template")
		}
	})
}
