// Package screenshot captures one PNG per example by pointing a headless
// browser at the local viewer.
//
// Two drivers are available. ExecDriver starts the browser binary once per
// example with fixed headless flags and lets it write the file itself.
// CDPDriver keeps one browser running and drives it over the DevTools
// protocol, which avoids paying the browser start-up cost per example.
//
// Captures run one after another and the first failure stops the batch.
package screenshot
