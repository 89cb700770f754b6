package screenshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// fakeBrowser writes a shell script that records its arguments and writes
// the --screenshot file, or fails when exitCode is non-zero.
func fakeBrowser(t *testing.T, exitCode int) (browser, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script browser is not supported on windows")
	}

	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	browser = filepath.Join(dir, "browser.sh")

	script := `#!/bin/sh
for arg in "$@"; do
  echo "$arg" >> "` + argsFile + `"
  case "$arg" in
    --screenshot=*) out="${arg#--screenshot=}" ;;
  esac
done
if [ "` + strconv.Itoa(exitCode) + `" != "0" ]; then
  echo "browser crashed" >&2
  exit ` + strconv.Itoa(exitCode) + `
fi
printf 'PNG' > "$out"
`
	if err := os.WriteFile(browser, []byte(script), 0o700); err != nil { //nolint:gosec // test fixture must be executable
		t.Fatalf("WriteFile() error = %v", err)
	}
	return browser, argsFile
}

func TestExecDriverArgs(t *testing.T) {
	t.Parallel()

	d := NewExecDriver()
	got := d.Args("http://localhost:8080/apis/svg.html?/viewconfs/a.json", "/tmp/screenshots/a.json.png")
	want := []string{
		"--headless",
		"--disable-gpu",
		"--hide-scrollbars",
		"--screenshot=/tmp/screenshots/a.json.png",
		"--virtual-time-budget=2000",
		"--window-size=500,1000",
		"http://localhost:8080/apis/svg.html?/viewconfs/a.json",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Args() = %v, want %v", got, want)
	}

	custom := NewExecDriver(WithVirtualTimeBudget(500), WithWindow(Window{Width: 800, Height: 600}))
	args := strings.Join(custom.Args("t", "o"), " ")
	if !strings.Contains(args, "--virtual-time-budget=500") || !strings.Contains(args, "--window-size=800,600") {
		t.Errorf("custom Args() = %s", args)
	}
}

func TestExecDriverCapture(t *testing.T) {
	t.Parallel()

	t.Run("success writes the file", func(t *testing.T) {
		t.Parallel()

		browser, argsFile := fakeBrowser(t, 0)
		out := filepath.Join(t.TempDir(), "x.png")
		d := NewExecDriver(WithBrowser(browser))

		if err := d.Capture(context.Background(), "http://localhost:8080/apis/svg.html?x", out); err != nil {
			t.Fatalf("Capture() error = %v", err)
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("screenshot not written: %v", err)
		}
		recorded, err := os.ReadFile(argsFile) //nolint:gosec // test file
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !strings.Contains(string(recorded), "--headless") {
			t.Errorf("browser args = %q, want --headless", recorded)
		}
	})

	t.Run("non-zero exit fails", func(t *testing.T) {
		t.Parallel()

		browser, _ := fakeBrowser(t, 1)
		d := NewExecDriver(WithBrowser(browser))

		err := d.Capture(context.Background(), "target", filepath.Join(t.TempDir(), "x.png"))
		if !errors.Is(err, ErrCaptureFailed) {
			t.Fatalf("Capture() error = %v, want ErrCaptureFailed", err)
		}
		if !strings.Contains(err.Error(), "browser crashed") {
			t.Errorf("Capture() error = %v, want stderr in message", err)
		}
	})

	t.Run("missing binary fails", func(t *testing.T) {
		t.Parallel()

		d := NewExecDriver(WithBrowser(filepath.Join(t.TempDir(), "no-such-browser")))
		if err := d.Capture(context.Background(), "target", "out.png"); !errors.Is(err, ErrCaptureFailed) {
			t.Errorf("Capture() error = %v, want ErrCaptureFailed", err)
		}
	})
}
