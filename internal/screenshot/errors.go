package screenshot

import "errors"

// ErrCaptureFailed is returned when the browser could not produce a screenshot.
var ErrCaptureFailed = errors.New("screenshot capture failed")
