package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/vcindex/internal/fetch"
	"github.com/nao1215/vcindex/internal/model"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAppFragment is the part of a viewer URL that loads a viewconf in the app.
	DefaultAppFragment = "/app/?config="

	// DefaultAPIFragment replaces DefaultAppFragment to get the raw viewconf.
	DefaultAPIFragment = "/api/v1/viewconfs/?d="
)

// RemoteCollector downloads the curated example list and the viewconfs it
// references.
type RemoteCollector struct {
	getter      fetch.Getter
	listURL     string
	appFragment string
	apiFragment string
	concurrency int
	logger      *slog.Logger
}

// RemoteOption configures a RemoteCollector.
type RemoteOption func(*RemoteCollector)

// WithFragments overrides the URL fragments used to rewrite app links.
// Empty values keep the defaults.
func WithFragments(app, api string) RemoteOption {
	return func(r *RemoteCollector) {
		if app != "" {
			r.appFragment = app
		}
		if api != "" {
			r.apiFragment = api
		}
	}
}

// WithConcurrency sets how many viewconfs are downloaded at once.
// Values below 1 are ignored.
func WithConcurrency(n int) RemoteOption {
	return func(r *RemoteCollector) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RemoteOption {
	return func(r *RemoteCollector) {
		r.logger = logger
	}
}

// NewRemoteCollector creates a RemoteCollector reading the list at listURL.
func NewRemoteCollector(getter fetch.Getter, listURL string, opts ...RemoteOption) *RemoteCollector {
	r := &RemoteCollector{
		getter:      getter,
		listURL:     listURL,
		appFragment: DefaultAppFragment,
		apiFragment: DefaultAPIFragment,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// RewriteURL turns a viewer app link into the API link serving its viewconf.
// Every occurrence of the app fragment is replaced.
func (r *RemoteCollector) RewriteURL(url string) string {
	return strings.ReplaceAll(url, r.appFragment, r.apiFragment)
}

// Collect returns the remote examples in list order. When skip is true it
// returns an empty list without touching the network.
func (r *RemoteCollector) Collect(ctx context.Context, skip bool) ([]model.Example, error) {
	if skip {
		r.logger.Debug("remote collection skipped")
		return []model.Example{}, nil
	}

	var entries []model.RemoteEntry
	if err := r.getter.GetJSON(ctx, r.listURL, &entries); err != nil {
		return nil, fmt.Errorf("collect remote list: %w", err)
	}
	r.logger.Debug("fetched remote list", "url", r.listURL, "entries", len(entries))

	examples := make([]model.Example, len(entries))

	if r.concurrency == 1 {
		for i, entry := range entries {
			ex, err := r.fetchOne(ctx, entry)
			if err != nil {
				return nil, err
			}
			examples[i] = ex
		}
		return examples, nil
	}

	// Each goroutine writes only its own index, so gist order survives.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			ex, err := r.fetchOne(gctx, entry)
			if err != nil {
				return err
			}
			examples[i] = ex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return examples, nil
}

func (r *RemoteCollector) fetchOne(ctx context.Context, entry model.RemoteEntry) (model.Example, error) {
	href := r.RewriteURL(entry.URL)
	r.logger.Debug("fetching viewconf", "url", href, "title", entry.Title)

	body, err := r.getter.GetText(ctx, href)
	if err != nil {
		return model.Example{}, fmt.Errorf("collect remote viewconf %q: %w", entry.Title, err)
	}
	return model.NewExample(href, entry.Title, body, model.SourceRemote), nil
}
