package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/vcindex/internal/collector"
	"github.com/nao1215/vcindex/internal/config"
	"github.com/nao1215/vcindex/internal/database"
	"github.com/nao1215/vcindex/internal/fetch"
	vclog "github.com/nao1215/vcindex/internal/log"
	"github.com/nao1215/vcindex/internal/model"
	"github.com/nao1215/vcindex/internal/pipeline"
	"github.com/nao1215/vcindex/internal/report"
	"github.com/nao1215/vcindex/internal/screenshot"
	"github.com/spf13/cobra"
)

// runRegenerateCmd executes the root command.
func runRegenerateCmd(cmd *cobra.Command, _ []string) error {
	// Without an output there is nothing to do. Decide this before any
	// config lookup so that a bare invocation touches nothing.
	wanted, err := outputRequested(cmd)
	if err != nil {
		return err
	}
	if !wanted {
		return cmd.Help()
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return err
	}
	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, logJSON)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	_, err = regenerate(ctx, cfg, cmd.OutOrStdout(), logger)
	return err
}

// outputRequested reports whether --stdout, --output or --screenshots was given.
func outputRequested(cmd *cobra.Command) (bool, error) {
	for _, name := range []string{"stdout", "screenshots"} {
		v, err := cmd.Flags().GetBool(name)
		if err != nil {
			return false, err
		}
		if v {
			return true, nil
		}
	}
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the config file and the flags
// the user set explicitly, in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit config path must exist; the default locations are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		if err := config.LoadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	// Modes are never read from the file.
	if cfg.Stdout, err = flags.GetBool("stdout"); err != nil {
		return nil, err
	}
	if cfg.Screenshots, err = flags.GetBool("screenshots"); err != nil {
		return nil, err
	}

	stringFlags := map[string]*string{
		"dir":            &cfg.BaseDir,
		"gist-url":       &cfg.GistURL,
		"proxy":          &cfg.Proxy,
		"format":         &cfg.Format,
		"output":         &cfg.OutputFile,
		"driver":         &cfg.Driver,
		"browser":        &cfg.BrowserPath,
		"screenshot-dir": &cfg.ScreenshotDir,
		"viewer-url":     &cfg.ViewerURL,
		"db-dir":         &cfg.DBDir,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}

	boolFlags := map[string]*bool{
		"local":  &cfg.Local,
		"escape": &cfg.Escape,
		"mkdir":  &cfg.CreateScreenshotDir,
		"record": &cfg.Record,
	}
	for name, dst := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, err
		}
	}

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("fetch-concurrency") {
		if cfg.FetchConcurrency, err = flags.GetInt("fetch-concurrency"); err != nil {
			return nil, err
		}
	}

	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Logs go to w, never to standard output, which carries the index.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return vclog.NewJSONLogger(w, verbose)
	}
	return vclog.NewLogger(w, verbose)
}

// regenerate collects the catalog, captures screenshots, writes the outputs
// and records the run, stopping at the first error.
func regenerate(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) (*model.Catalog, error) {
	logger.Debug("starting regeneration",
		"base_dir", cfg.BaseDir,
		"local", cfg.Local,
		"screenshots", cfg.Screenshots,
		"gist_url", cfg.GistURL,
	)

	var getter fetch.Getter
	if !cfg.Local {
		client, err := newHTTPClient(cfg)
		if err != nil {
			return nil, err
		}
		getter = client
	}

	remote := collector.NewRemoteCollector(getter, cfg.GistURL,
		collector.WithFragments(cfg.AppURLFragment, cfg.APIURLFragment),
		collector.WithConcurrency(cfg.FetchConcurrency),
		collector.WithLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewAPIPagesStep(),
		pipeline.NewLocalExamplesStep(),
		pipeline.NewRemoteExamplesStep(remote, cfg.Local),
		pipeline.NewTrackTypesStep(),
	)

	if cfg.Screenshots {
		driver, closeDriver, err := newDriver(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		defer closeDriver()

		shooter := screenshot.NewShooter(driver,
			screenshot.WithOutputDir(cfg.ScreenshotDir),
			screenshot.WithViewerURL(cfg.ViewerURL),
			screenshot.WithMkdir(cfg.CreateScreenshotDir),
			screenshot.WithLogger(logger),
		)
		p.AddStep(pipeline.NewScreenshotStep(shooter, logger))
	}

	catalog := model.NewCatalog(cfg.BaseDir)
	if err := p.Execute(ctx, catalog); err != nil {
		return catalog, err
	}

	logger.Debug("catalog collected",
		"api_pages", len(catalog.APIPages),
		"local", len(catalog.Local),
		"remote", len(catalog.Remote),
		"track_types", len(catalog.TrackTypes),
	)

	if err := writeOutputs(cfg, catalog, stdout); err != nil {
		return catalog, err
	}

	if cfg.Record {
		if err := recordRun(ctx, cfg, catalog, logger); err != nil {
			return catalog, err
		}
	}

	return catalog, nil
}

// newHTTPClient builds the client used for the remote examples.
func newHTTPClient(cfg *config.Config) (*fetch.Client, error) {
	opts := []fetch.Option{
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	}
	if cfg.Proxy != "" {
		opts = append(opts, fetch.WithSOCKS5Proxy(cfg.Proxy))
	}

	client, err := fetch.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return client, nil
}

// newDriver creates the configured screenshot driver and its cleanup.
func newDriver(ctx context.Context, cfg *config.Config, logger *slog.Logger) (screenshot.Driver, func(), error) {
	window := screenshot.Window{Width: cfg.WindowWidth, Height: cfg.WindowHeight}

	switch cfg.Driver {
	case config.DriverCDP:
		d, err := screenshot.NewCDPDriver(ctx, screenshot.CDPConfig{
			BrowserPath:       cdpBrowserPath(cfg.BrowserPath),
			VirtualTimeBudget: cfg.VirtualTimeBudget,
			Window:            window,
			Logger:            logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	default:
		d := screenshot.NewExecDriver(
			screenshot.WithBrowser(cfg.BrowserPath),
			screenshot.WithVirtualTimeBudget(cfg.VirtualTimeBudget),
			screenshot.WithWindow(window),
			screenshot.WithExecLogger(logger),
		)
		return d, func() {}, nil
	}
}

// cdpBrowserPath returns the browser for the cdp driver. The default macOS
// path is dropped when it does not exist so chromedp can locate a browser.
func cdpBrowserPath(path string) string {
	if path != config.DefaultBrowserPath {
		return path
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// printToStdout reports whether the index goes to standard output.
// A screenshot run prints it too unless it is written to a file.
func printToStdout(cfg *config.Config) bool {
	return cfg.Stdout || (cfg.Screenshots && cfg.OutputFile == "")
}

// writeOutputs renders the catalog to standard output and/or the output file.
func writeOutputs(cfg *config.Config, catalog *model.Catalog, stdout io.Writer) error {
	opts := report.Options{
		Escape:     cfg.Escape,
		LinkPrefix: cfg.LinkPrefix,
		Version:    getVersion(),
	}

	var writers []report.Writer
	if printToStdout(cfg) {
		w, err := report.NewWriter(cfg.Format, stdout, opts)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}

	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // the index is a public document
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		w, err := report.NewWriter(cfg.Format, f, opts)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}

	if len(writers) == 0 {
		return nil
	}

	if _, err := report.NewMultiWriter(writers...).Write(catalog); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// recordRun saves the catalog in the history database.
func recordRun(ctx context.Context, cfg *config.Config, catalog *model.Catalog, logger *slog.Logger) (err error) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	id, err := db.SaveRun(ctx, catalog)
	if err != nil {
		return err
	}

	logger.Info("run recorded", "id", id, "db", db.Path())
	return nil
}
