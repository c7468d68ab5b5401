package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/torrust-index/internal/model"
)

// StatsSource returns tracker statistics for a torrent.
// *Client implements it.
type StatsSource interface {
	GetTorrentStats(ctx context.Context, infoHash string) (*TorrentStats, error)
}

// TorrentStore is the part of the database the Refresher needs.
// *database.Database implements it.
type TorrentStore interface {
	GetAllTorrentIDs(ctx context.Context) ([]model.TorrentCompact, error)
	UpdateTrackerInfo(ctx context.Context, infoHash string, seeders, leechers int64) (int64, error)
}

// RefreshSummary counts the outcome of one refresh run.
type RefreshSummary struct {
	// Total is the number of torrents in the database.
	Total int `json:"total"`

	// Updated is the number of torrents whose counts were written.
	Updated int `json:"updated"`

	// NotTracked is the number of torrents the tracker does not know.
	NotTracked int `json:"not_tracked"`

	// Failed is the number of torrents that could not be refreshed.
	Failed int `json:"failed"`

	// Elapsed is the wall time of the run.
	Elapsed time.Duration `json:"elapsed"`
}

// Refresher copies swarm statistics from the tracker into the database.
type Refresher struct {
	source      StatsSource
	store       TorrentStore
	concurrency int
	logger      *slog.Logger
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithRefreshLogger sets a custom logger.
func WithRefreshLogger(logger *slog.Logger) RefresherOption {
	return func(r *Refresher) {
		r.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent tracker requests.
// Default is 10 if not specified.
func WithConcurrency(n int) RefresherOption {
	return func(r *Refresher) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRefresher creates a Refresher reading from source and writing to store.
func NewRefresher(source StatsSource, store TorrentStore, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		source:      source,
		store:       store,
		concurrency: 10,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Refresh fetches statistics for every stored torrent and writes the
// seeder and leecher counts back. A failure for one torrent is logged and
// counted; it does not stop the others. Cancelling ctx stops the run and
// returns the context error together with the partial summary.
func (r *Refresher) Refresh(ctx context.Context) (RefreshSummary, error) {
	start := time.Now()

	torrents, err := r.store.GetAllTorrentIDs(ctx)
	if err != nil {
		return RefreshSummary{}, err
	}

	r.logger.Info("starting tracker refresh",
		"total_torrents", len(torrents),
		"concurrency", r.concurrency,
	)

	var updated, notTracked, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, t := range torrents {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			stats, err := r.source.GetTorrentStats(gctx, t.InfoHash)
			switch {
			case errors.Is(err, ErrTorrentNotTracked):
				notTracked.Add(1)
				r.logger.Debug("torrent not tracked", "torrent_id", t.TorrentID, "info_hash", t.InfoHash)
				return nil
			case err != nil:
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed.Add(1)
				r.logger.Warn("failed to fetch torrent stats",
					"torrent_id", t.TorrentID,
					"info_hash", t.InfoHash,
					"error", err,
				)
				return nil
			}

			if _, err := r.store.UpdateTrackerInfo(gctx, t.InfoHash, stats.Seeders, stats.Leechers); err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed.Add(1)
				r.logger.Warn("failed to store torrent stats",
					"torrent_id", t.TorrentID,
					"info_hash", t.InfoHash,
					"error", err,
				)
				return nil
			}

			updated.Add(1)
			r.logger.Debug("torrent stats updated",
				"torrent_id", t.TorrentID,
				"seeders", stats.Seeders,
				"leechers", stats.Leechers,
			)
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	summary := RefreshSummary{
		Total:      len(torrents),
		Updated:    int(updated.Load()),
		NotTracked: int(notTracked.Load()),
		Failed:     int(failed.Load()),
		Elapsed:    time.Since(start),
	}

	r.logger.Info("tracker refresh complete",
		"updated", summary.Updated,
		"not_tracked", summary.NotTracked,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed,
	)

	return summary, err
}
