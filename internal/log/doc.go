// Package log provides the structured logger used by vcindex, built on top
// of the standard slog package.
//
// Logs always go to standard error; standard output is reserved for the
// rendered index. The RedactHandler masks credentials before they reach
// the output:
//   - attributes whose key names a secret (token, password, cookie, ...)
//   - values that look like bearer/basic credentials, JWTs or GitHub tokens
//   - userinfo passwords and secret query parameters inside URLs, so a
//     private gist URL such as https://host/raw?token=abc is logged as
//     https://host/raw?token=***REDACTED***
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Debug("fetching example list", "url", gistURL)
package log
