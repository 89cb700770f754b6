package main

import (
	"fmt"
	"path"
	"runtime"
	"runtime/debug"

	"github.com/nao1215/vcindex/internal/config"
	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
)

// getVersion returns the version: ldflags, then module build info, then "(devel)".
func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// getCommit returns the short commit: ldflags, then vcs.revision, then "unknown".
func getCommit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value[:min(len(s.Value), 7)]
			}
		}
	}
	return "unknown"
}

// listRevision returns the gist revision pinned in the default example list URL.
func listRevision() string {
	return path.Base(config.DefaultGistURL)
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the vcindex version and commit, the Go version it was built with,
and the revision of the remote example list it fetches by default.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vcindex version %s\n", getVersion())
			fmt.Fprintf(out, "  commit:       %s\n", getCommit())
			fmt.Fprintf(out, "  go:           %s\n", runtime.Version())
			fmt.Fprintf(out, "  example list: %s\n", listRevision())
		},
	}
}
