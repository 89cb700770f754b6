package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// A run without configuration produces the published index and screenshots.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "vcindex"

	// DefaultBaseDir is the directory holding apis/ and viewconfs/.
	DefaultBaseDir = "."

	// DefaultGistURL is the curated list of higlass.io examples.
	// It is pinned to a revision so the index does not change under us.
	DefaultGistURL = "https://gist.githubusercontent.com/pkerpedjiev/104f6c37fbfd0d7d41c73a06010a3b7e/raw/4e65ed9bf8bb1bb24ecaea088bba2d718a18c233"

	// DefaultAppURLFragment is the part of a human-facing app URL that is
	// replaced to obtain the viewconf API URL.
	DefaultAppURLFragment = "/app/?config="

	// DefaultAPIURLFragment replaces DefaultAppURLFragment.
	DefaultAPIURLFragment = "/api/v1/viewconfs/?d="

	// DefaultLinkPrefix is prepended to an example href in the index table.
	DefaultLinkPrefix = "apis/svg.html?"

	// DefaultViewerURL is prepended to an example href to get the page
	// the browser screenshots. It expects the docs served on port 8080.
	DefaultViewerURL = "http://localhost:8080/apis/svg.html?"

	// DefaultBrowserPath is the Chrome binary used for screenshots.
	DefaultBrowserPath = "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"

	// DefaultScreenshotDir is where screenshots are written.
	DefaultScreenshotDir = "/tmp/screenshots"

	// DefaultVirtualTimeBudget is the virtual time, in milliseconds, Chrome
	// lets the page run before taking the screenshot.
	DefaultVirtualTimeBudget = 2000

	// DefaultWindowWidth and DefaultWindowHeight size the headless window.
	DefaultWindowWidth  = 500
	DefaultWindowHeight = 1000

	// DefaultTimeout of zero means HTTP requests are not bounded.
	DefaultTimeout time.Duration = 0

	// DefaultFetchConcurrency of one fetches remote viewconfs one at a time.
	DefaultFetchConcurrency = 1

	// DefaultMaxBodySize limits how much of a remote response is read.
	// Viewconfs are small; 20MB leaves room for inlined data.
	DefaultMaxBodySize = 20 * 1024 * 1024

	// DefaultUserAgent identifies vcindex in HTTP requests.
	DefaultUserAgent = "vcindex (+https://github.com/nao1215/vcindex)"
)

// Output formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatText     = "text"
)

// Screenshot drivers.
const (
	// DriverExec launches the browser binary once per example.
	DriverExec = "exec"

	// DriverCDP drives a browser over the Chrome DevTools Protocol.
	DriverCDP = "cdp"
)

// Config holds all configuration options for one vcindex run.
// It is populated from defaults, then the config file, then CLI flags,
// and passed down explicitly rather than kept in global state.
type Config struct {
	// BaseDir is the directory containing apis/ and viewconfs/.
	BaseDir string `yaml:"base_dir,omitempty"`

	// Stdout prints the rendered index to standard output.
	Stdout bool `yaml:"-"`

	// Local skips the remote example list. No network access is made.
	Local bool `yaml:"local,omitempty"`

	// Screenshots captures one screenshot per example.
	Screenshots bool `yaml:"-"`

	// Record saves the finished catalog in the history database.
	Record bool `yaml:"record,omitempty"`

	// GistURL is the URL of the remote JSON list of {url, title} objects.
	GistURL string `yaml:"gist_url,omitempty"`

	// AppURLFragment and APIURLFragment drive the app-to-API URL rewrite.
	AppURLFragment string `yaml:"app_url_fragment,omitempty"`
	APIURLFragment string `yaml:"api_url_fragment,omitempty"`

	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// FetchConcurrency is how many remote viewconfs are fetched at once.
	FetchConcurrency int `yaml:"fetch_concurrency,omitempty"`

	// Proxy is an optional SOCKS5 proxy in "host:port" form.
	Proxy string `yaml:"proxy,omitempty"`

	// UserAgent is sent with every HTTP request.
	UserAgent string `yaml:"user_agent,omitempty"`

	// MaxBodySize limits the bytes read from each HTTP response.
	MaxBodySize int64 `yaml:"max_body_size,omitempty"`

	// Format selects the renderer: html, markdown, json or text.
	Format string `yaml:"format,omitempty"`

	// OutputFile, when set, receives the rendered index.
	OutputFile string `yaml:"output,omitempty"`

	// Escape HTML-escapes interpolated values in the HTML index.
	// Off by default so the output matches the published page byte for byte.
	Escape bool `yaml:"escape,omitempty"`

	// LinkPrefix is prepended to example hrefs in the index table.
	LinkPrefix string `yaml:"link_prefix,omitempty"`

	// Driver selects how screenshots are taken: exec or cdp.
	Driver string `yaml:"driver,omitempty"`

	// BrowserPath is the browser binary (exec driver) or the binary
	// chromedp launches (cdp driver).
	BrowserPath string `yaml:"browser,omitempty"`

	// ScreenshotDir is where PNG files are written.
	ScreenshotDir string `yaml:"screenshot_dir,omitempty"`

	// CreateScreenshotDir creates ScreenshotDir before capturing.
	CreateScreenshotDir bool `yaml:"mkdir,omitempty"`

	// ViewerURL is prepended to example hrefs to form the screenshot target.
	ViewerURL string `yaml:"viewer_url,omitempty"`

	// VirtualTimeBudget is passed to the browser in milliseconds.
	VirtualTimeBudget int `yaml:"virtual_time_budget,omitempty"`

	// WindowWidth and WindowHeight size the headless browser window.
	WindowWidth  int `yaml:"window_width,omitempty"`
	WindowHeight int `yaml:"window_height,omitempty"`

	// DBDir is where the history database lives.
	DBDir string `yaml:"db_dir,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`

	// ConfigFilePath is the config file given on the command line, if any.
	ConfigFilePath string `yaml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseDir:           DefaultBaseDir,
		GistURL:           DefaultGistURL,
		AppURLFragment:    DefaultAppURLFragment,
		APIURLFragment:    DefaultAPIURLFragment,
		Timeout:           DefaultTimeout,
		FetchConcurrency:  DefaultFetchConcurrency,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		Format:            FormatHTML,
		LinkPrefix:        DefaultLinkPrefix,
		Driver:            DriverExec,
		BrowserPath:       DefaultBrowserPath,
		ScreenshotDir:     DefaultScreenshotDir,
		ViewerURL:         DefaultViewerURL,
		VirtualTimeBudget: DefaultVirtualTimeBudget,
		WindowWidth:       DefaultWindowWidth,
		WindowHeight:      DefaultWindowHeight,
		DBDir:             XDGDataDir(),
	}
}

// HasOutput reports whether the run produces anything.
// Without stdout, an output file or screenshots there is nothing to do.
func (c *Config) HasOutput() bool {
	return c.Stdout || c.OutputFile != "" || c.Screenshots
}

// XDGDataDir returns the XDG data directory for vcindex.
// On Linux: ~/.local/share/vcindex
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for vcindex.
// On Linux: ~/.config/vcindex
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return ErrNoBaseDir
	}

	switch c.Format {
	case FormatHTML, FormatMarkdown, FormatJSON, FormatText:
	default:
		return ErrInvalidFormat
	}

	switch c.Driver {
	case DriverExec, DriverCDP:
	default:
		return ErrInvalidDriver
	}

	if !c.Local && c.GistURL == "" {
		return ErrNoGistURL
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.FetchConcurrency <= 0 {
		return ErrInvalidFetchConcurrency
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.Screenshots {
		if c.Driver == DriverExec && c.BrowserPath == "" {
			return ErrNoBrowser
		}
		if c.ScreenshotDir == "" {
			return ErrNoScreenshotDir
		}
		if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
			return ErrInvalidWindowSize
		}
		if c.VirtualTimeBudget < 0 {
			return ErrInvalidVirtualTimeBudget
		}
	}

	return nil
}
