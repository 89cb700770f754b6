package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/vcindex/internal/config"
	"github.com/nao1215/vcindex/internal/database"
	"github.com/nao1215/vcindex/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded with --record",
		Long: `History lists the runs saved with "vcindex --record", newest first.

Examples:
  # List recorded runs
  vcindex history

  # Compare the latest two runs
  vcindex history compare

  # Compare the latest run with run 3, as Markdown
  vcindex history compare --with-run 3 --markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(), "Directory of the history database")
	cmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	cmd.AddCommand(newHistoryCompareCmd())

	return cmd
}

func newHistoryCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the latest run with a previous one",
		Long: `Compare shows what changed between two recorded runs:
- track types that appeared or disappeared
- examples that were added or removed
- examples whose viewconf changed

By default the latest run is compared with the one before it.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCompareCmd,
	}

	cmd.Flags().Int64P("with-run", "i", 0,
		"Compare the latest run with this run ID (see 'vcindex history')")
	cmd.Flags().BoolP("markdown", "m", false, "Output in Markdown format")

	return cmd
}

// openHistory opens an existing history database.
func openHistory(cmd *cobra.Command) (*database.HistoryDB, error) {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// runHistoryCmd lists recorded runs.
func runHistoryCmd(cmd *cobra.Command, _ []string) (err error) {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	runs, err := db.ListRuns(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(runs)
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		fmt.Fprintln(out, "\nUse 'vcindex --stdout --record' to record a run.")
		return nil
	}

	fmt.Fprintf(out, "Recorded runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-6s  %-6s  %-6s  %s\n", "ID", "Date", "APIs", "Local", "Remote", "Track types")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 70))
	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-6d  %-6d  %-6d  %d\n",
			run.ID,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.APIPages,
			run.LocalCount,
			run.RemoteCount,
			len(run.TrackTypes),
		)
	}
	fmt.Fprintln(out, "\nUse 'vcindex history compare' to compare the latest two runs.")

	return nil
}

// runHistoryCompareCmd compares two recorded runs.
func runHistoryCompareCmd(cmd *cobra.Command, _ []string) (err error) {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return errors.New("--json and --markdown are mutually exclusive")
	}
	withRun, err := cmd.Flags().GetInt64("with-run")
	if err != nil {
		return err
	}

	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	current, previous, err := selectRuns(cmd.Context(), db, withRun)
	if err != nil {
		return err
	}

	comparison := database.Compare(previous, current)

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(comparison)
		return err
	case markdownOutput:
		return outputComparisonMarkdown(out, comparison)
	default:
		outputComparisonText(out, comparison)
		return nil
	}
}

// selectRuns returns the latest run and the run to compare it with.
func selectRuns(ctx context.Context, db *database.HistoryDB, withRun int64) (current, previous *database.Run, err error) {
	if withRun == 0 {
		return db.LatestRuns(ctx)
	}

	runs, err := db.ListRuns(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(runs) == 0 {
		return nil, nil, fmt.Errorf("%w (found 0)", database.ErrNotEnoughRuns)
	}
	if runs[0].ID == withRun {
		return nil, nil, fmt.Errorf("run %d is the latest run; choose an older one", withRun)
	}

	current, err = db.GetRun(ctx, runs[0].ID)
	if err != nil {
		return nil, nil, err
	}
	previous, err = db.GetRun(ctx, withRun)
	if err != nil {
		return nil, nil, err
	}
	return current, previous, nil
}

// outputComparisonText writes the comparison in human-readable text format.
func outputComparisonText(out io.Writer, c *database.Comparison) {
	fmt.Fprintf(out, "Run Comparison: #%d -> #%d\n", c.PreviousRun.ID, c.CurrentRun.ID)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nPrevious run: %s\n", c.PreviousRun.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Current run:  %s\n", c.CurrentRun.Timestamp.Local().Format("2006-01-02 15:04:05"))

	fmt.Fprintln(out, "\nSummary:")
	fmt.Fprintf(out, "  %-12s  %-10s  %-10s  %-10s\n", "", "Previous", "Current", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 47))
	summaryRows(c, func(label string, prev, cur int) {
		fmt.Fprintf(out, "  %-12s  %-10d  %-10d  %-10s\n", label, prev, cur, formatDelta(cur-prev))
	})

	if !c.HasChanges() {
		fmt.Fprintln(out, "\nNo changes.")
		return
	}

	if len(c.AddedTrackTypes) > 0 {
		fmt.Fprintf(out, "\nNew track types: %s\n", strings.Join(c.AddedTrackTypes, ", "))
	}
	if len(c.RemovedTrackTypes) > 0 {
		fmt.Fprintf(out, "Removed track types: %s\n", strings.Join(c.RemovedTrackTypes, ", "))
	}

	if len(c.AddedExamples) > 0 {
		fmt.Fprintf(out, "\nAdded examples (%d):\n", len(c.AddedExamples))
		for _, ex := range c.AddedExamples {
			fmt.Fprintf(out, "  [+] [%s] %s: %s\n", ex.Source, ex.Title, ex.Href)
		}
	}
	if len(c.RemovedExamples) > 0 {
		fmt.Fprintf(out, "\nRemoved examples (%d):\n", len(c.RemovedExamples))
		for _, ex := range c.RemovedExamples {
			fmt.Fprintf(out, "  [-] [%s] %s: %s\n", ex.Source, ex.Title, ex.Href)
		}
	}
	if len(c.ChangedExamples) > 0 {
		fmt.Fprintf(out, "\nChanged viewconfs (%d):\n", len(c.ChangedExamples))
		for _, ex := range c.ChangedExamples {
			fmt.Fprintf(out, "  [~] %s: %s\n", ex.Title, ex.Href)
			fmt.Fprintf(out, "      track types: %s -> %s\n",
				formatTypes(ex.PreviousTrackTypes), formatTypes(ex.CurrentTrackTypes))
		}
	}

	if c.UnchangedCount > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d examples\n", c.UnchangedCount)
	}
}

// outputComparisonMarkdown writes the comparison in Markdown format.
func outputComparisonMarkdown(out io.Writer, c *database.Comparison) error {
	md := markdown.NewMarkdown(out)

	md.H1f("Run Comparison: #%d -> #%d", c.PreviousRun.ID, c.CurrentRun.ID)
	md.PlainText("")

	rows := [][]string{
		{"Date",
			c.PreviousRun.Timestamp.Local().Format("2006-01-02 15:04"),
			c.CurrentRun.Timestamp.Local().Format("2006-01-02 15:04"),
			"-"},
	}
	summaryRows(c, func(label string, prev, cur int) {
		rows = append(rows, []string{label, strconv.Itoa(prev), strconv.Itoa(cur), formatDelta(cur - prev)})
	})
	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current", "Change"},
		Rows:   rows,
	})
	md.PlainText("")

	if !c.HasChanges() {
		md.Note("No changes between the two runs.")
		return md.Build()
	}

	if len(c.AddedTrackTypes) > 0 || len(c.RemovedTrackTypes) > 0 {
		md.H2("Track types")
		md.PlainText("")
		items := make([]string, 0, len(c.AddedTrackTypes)+len(c.RemovedTrackTypes))
		for _, t := range c.AddedTrackTypes {
			items = append(items, "added "+markdown.Code(t))
		}
		for _, t := range c.RemovedTrackTypes {
			items = append(items, "removed "+markdown.Code(t))
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if len(c.AddedExamples) > 0 {
		md.H2f("Added examples (%d)", len(c.AddedExamples))
		md.PlainText("")
		items := make([]string, len(c.AddedExamples))
		for i, ex := range c.AddedExamples {
			items[i] = markdown.Link(ex.Title, ex.Href) + " (" + string(ex.Source) + ")"
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if len(c.RemovedExamples) > 0 {
		md.H2f("Removed examples (%d)", len(c.RemovedExamples))
		md.PlainText("")
		items := make([]string, len(c.RemovedExamples))
		for i, ex := range c.RemovedExamples {
			items[i] = markdown.Strikethrough(ex.Title) + " " + markdown.Code(ex.Href)
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	if len(c.ChangedExamples) > 0 {
		md.H2f("Changed viewconfs (%d)", len(c.ChangedExamples))
		md.PlainText("")
		changed := make([][]string, len(c.ChangedExamples))
		for i, ex := range c.ChangedExamples {
			changed[i] = []string{
				markdown.Link(ex.Title, ex.Href),
				formatTypes(ex.PreviousTrackTypes),
				formatTypes(ex.CurrentTrackTypes),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Example", "Previous track types", "Current track types"},
			Rows:   changed,
		})
		md.PlainText("")
	}

	if c.UnchangedCount > 0 {
		md.HorizontalRule()
		md.PlainText("")
		md.PlainTextf("*%d examples unchanged*", c.UnchangedCount)
	}

	return md.Build()
}

// summaryRows calls row for each count compared in the summary table.
func summaryRows(c *database.Comparison, row func(label string, prev, cur int)) {
	row("API pages", c.PreviousRun.APIPages, c.CurrentRun.APIPages)
	row("Local", c.PreviousRun.LocalCount, c.CurrentRun.LocalCount)
	row("Remote", c.PreviousRun.RemoteCount, c.CurrentRun.RemoteCount)
	row("Track types", len(c.PreviousRun.TrackTypes), len(c.CurrentRun.TrackTypes))
}

// formatTypes joins track types for display.
func formatTypes(types []string) string {
	if len(types) == 0 {
		return "(none)"
	}
	return strings.Join(types, ", ")
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
