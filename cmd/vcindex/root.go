package main

import (
	"fmt"
	"os"

	"github.com/nao1215/vcindex/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for vcindex.
// Running it without a subcommand regenerates the index.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vcindex",
		Short: "Regenerate the viewconf example index and screenshots",
		Long: `vcindex regenerates the example index page of a documentation tree.

It reads the API example pages in apis/ and the viewconfs in viewconfs/,
fetches the curated list of remote examples, and renders a table with one
row per example and one column per track type used by any example.

Nothing happens unless an output is requested: --stdout prints the index,
--output writes it to a file, and --screenshots captures one PNG per
example through a headless browser and then prints the index unless
--output is given. Without any of them the help is shown.

Examples:
  # Print the full index
  vcindex --stdout > index.html

  # Only local examples, no network access
  vcindex --stdout --local

  # Capture screenshots with the DevTools driver
  vcindex --screenshots --driver cdp --mkdir

  # Markdown index written to a file and recorded in the history
  vcindex --format markdown --output docs/examples.md --record`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRegenerateCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	// Modes
	cmd.Flags().Bool("stdout", false, "Print the index to standard output")
	cmd.Flags().Bool("local", false, "Skip remote examples; make no HTTP requests")
	cmd.Flags().Bool("screenshots", false, "Capture a screenshot of every example")

	// Input
	cmd.Flags().StringP("dir", "d", config.DefaultBaseDir,
		"Directory containing apis/ and viewconfs/")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .vcindex in current or home directory)")

	// Remote examples
	cmd.Flags().String("gist-url", config.DefaultGistURL, "URL of the remote example list")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request (0 disables it)")
	cmd.Flags().Int("fetch-concurrency", config.DefaultFetchConcurrency,
		"Number of remote viewconfs fetched at once")
	cmd.Flags().String("proxy", "", "SOCKS5 proxy for HTTP requests (host:port)")

	// Output
	cmd.Flags().StringP("format", "f", config.FormatHTML,
		"Output format: html, markdown, json or text")
	cmd.Flags().StringP("output", "o", "",
		"Write the index to this file (creates directories if needed)")
	cmd.Flags().Bool("escape", false, "HTML-escape titles, links and track types")

	// Screenshots
	cmd.Flags().String("driver", config.DriverExec, "Screenshot driver: exec or cdp")
	cmd.Flags().String("browser", config.DefaultBrowserPath, "Browser binary used for screenshots")
	cmd.Flags().String("screenshot-dir", config.DefaultScreenshotDir, "Directory screenshots are written to")
	cmd.Flags().String("viewer-url", config.DefaultViewerURL, "Viewer URL prefixed to each example href")
	cmd.Flags().Bool("mkdir", false, "Create the screenshot directory if it does not exist")

	// History
	cmd.Flags().Bool("record", false, "Save this run in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the history database")

	// Add subcommands
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
