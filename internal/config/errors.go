package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers can match them with errors.Is.
var (
	// ErrNoBaseDir is returned when the examples directory is empty.
	ErrNoBaseDir = errors.New("no base directory specified")

	// ErrInvalidFormat is returned for an unknown output format.
	ErrInvalidFormat = errors.New("invalid format: must be html, markdown or json")

	// ErrInvalidDriver is returned for an unknown screenshot driver.
	ErrInvalidDriver = errors.New("invalid screenshot driver: must be exec or cdp")

	// ErrNoGistURL is returned when remote examples are wanted but no list URL is set.
	ErrNoGistURL = errors.New("no remote example list URL: set --gist-url or use --local")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 for no timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidFetchConcurrency is returned when fetch concurrency is not positive.
	ErrInvalidFetchConcurrency = errors.New("invalid fetch concurrency: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoBrowser is returned when screenshots need a browser binary and none is set.
	ErrNoBrowser = errors.New("no browser binary specified for screenshots")

	// ErrNoScreenshotDir is returned when screenshots have nowhere to go.
	ErrNoScreenshotDir = errors.New("no screenshot directory specified")

	// ErrInvalidWindowSize is returned when the browser window has no area.
	ErrInvalidWindowSize = errors.New("invalid window size: width and height must be positive")

	// ErrInvalidVirtualTimeBudget is returned when the virtual time budget is negative.
	ErrInvalidVirtualTimeBudget = errors.New("invalid virtual time budget: must be non-negative")
)
