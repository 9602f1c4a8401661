package recommend

import (
	"context"

	"MoodFM/config"
	"MoodFM/logger"
	"MoodFM/model"
)

// Searcher is the slice of the Deezer client the engine depends on.
// *deezer.Client satisfies it.
type Searcher interface {
	// SearchTracks fetches one page of results; an empty page means the
	// upstream stream is exhausted.
	SearchTracks(ctx context.Context, query string, limit, index int) ([]model.Track, error)
	// ResolveArtist returns the canonical name for a free-text artist name,
	// or "" with a nil error when nothing matched.
	ResolveArtist(ctx context.Context, name string) (string, error)
}

// SearchOptions control one search request. Zero fields fall back to the
// configured defaults; a nil Exclude set means no exclusions.
type SearchOptions struct {
	Count      int // desired number of unique tracks
	PageSize   int
	StartIndex int // pagination offset to start from
	MaxPages   int // page budget
	Exclude    map[int64]struct{}
}

// Recommender turns the paginated, duplicate-prone upstream search stream
// into deduplicated batches of tracks, tracking the offset a follow-up
// "more" request should resume from.
type Recommender struct {
	searcher       Searcher
	defaultCount   int
	defaultPerPage int
	defaultPages   int
}

// New creates a Recommender with defaults taken from the configuration.
func New(searcher Searcher, cfg *config.Config) *Recommender {
	return &Recommender{
		searcher:       searcher,
		defaultCount:   cfg.SearchDefaultCount,
		defaultPerPage: cfg.SearchPageSize,
		defaultPages:   cfg.SearchMaxPages,
	}
}

func (r *Recommender) withDefaults(opts SearchOptions) SearchOptions {
	if opts.Count <= 0 {
		opts.Count = r.defaultCount
	}
	if opts.PageSize <= 0 {
		opts.PageSize = r.defaultPerPage
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = r.defaultPages
	}
	if opts.StartIndex < 0 {
		opts.StartIndex = 0
	}
	return opts
}

// search runs the pagination loop: fetch a page, filter it against the
// exclusion set, repeat until the batch is full, the upstream runs dry, or
// the page budget is spent. The caller's exclusion set is copied at entry,
// so a failed or abandoned call leaks no exclusion state; callers persist
// exclusions from SelectedTrackIDs of an applied success only.
func (r *Recommender) search(ctx context.Context, query string, sctx model.SearchContext, opts SearchOptions) Result {
	opts = r.withDefaults(opts)

	exclude := make(map[int64]struct{}, len(opts.Exclude))
	for id := range opts.Exclude {
		exclude[id] = struct{}{}
	}

	selected := make([]model.Track, 0, opts.Count)
	index := opts.StartIndex

	for page := 0; page < opts.MaxPages; page++ {
		tracks, err := r.searcher.SearchTracks(ctx, query, opts.PageSize, index)
		if err != nil {
			// Transport failure discards partial picks on purpose; the
			// exclusion bookkeeping stays consistent because nothing from
			// this call is ever applied.
			logger.Warn("[search] upstream page fetch failed",
				logger.String("query", query),
				logger.Int("index", index),
				logger.ErrorField(err))
			return errorResult(ErrUpstreamUnavailable, upstreamUnavailableMessage)
		}

		// The page was scanned; "more" must never re-fetch it.
		index += opts.PageSize

		if len(tracks) == 0 {
			break
		}

		need := opts.Count - len(selected)
		selected = append(selected, pickUniqueTracks(tracks, exclude, need)...)

		if len(selected) == opts.Count {
			break
		}
	}

	if len(selected) == 0 {
		return errorResult(ErrNoMatch, noNewSongsMessage)
	}

	logger.Info("[search] batch selected",
		logger.String("kind", sctx.Kind),
		logger.String("value", sctx.Value),
		logger.Int("selected", len(selected)),
		logger.Int("nextIndex", index))

	return successResult(selected, sctx, index)
}
