package screenshot

import (
	"context"
	"fmt"
	"regexp"
)

const (
	// DefaultViewerURL is prefixed to every href to build the capture target.
	DefaultViewerURL = "http://localhost:8080/apis/svg.html?"

	// DefaultOutputDir is where screenshots are written.
	DefaultOutputDir = "/tmp/screenshots"

	// DefaultBrowser is the browser binary started by ExecDriver.
	DefaultBrowser = "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"

	// DefaultVirtualTimeBudget is how long the page may run before capture, in milliseconds.
	DefaultVirtualTimeBudget = 2000

	// DefaultWindowWidth is the browser window width in pixels.
	DefaultWindowWidth = 500

	// DefaultWindowHeight is the browser window height in pixels.
	DefaultWindowHeight = 1000
)

// prefixPattern matches everything up to the last '/' or '=' of a line.
var prefixPattern = regexp.MustCompile(`.*[/=]`)

// FileName derives the screenshot base name (without extension) from an href
// by stripping everything up to and including the last '/' or '='.
func FileName(href string) string {
	return prefixPattern.ReplaceAllString(href, "")
}

// TargetURL builds the page the browser loads for href.
func TargetURL(viewerURL, href string) string {
	return viewerURL + href
}

// Driver takes one screenshot of target and writes it to outPath as PNG.
type Driver interface {
	// Capture loads target and writes the PNG to outPath.
	Capture(ctx context.Context, target, outPath string) error

	// Name returns the driver name for logging.
	Name() string
}

// Window is the browser viewport used for captures.
type Window struct {
	Width  int
	Height int
}

// String formats the window as the browser's --window-size value.
func (w Window) String() string {
	return fmt.Sprintf("%d,%d", w.Width, w.Height)
}
