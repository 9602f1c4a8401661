package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"MoodFM/logger"
	"MoodFM/model"
)

// ErrNoContext is returned by Continue when the session has no previous
// search to continue from. That situation is the caller's to report; the
// engine has no notion of "first request".
var ErrNoContext = errors.New("no previous search context for session")

// SearchByTrack searches by a track title using a title-biased query.
func (r *Recommender) SearchByTrack(ctx context.Context, title string, opts SearchOptions) Result {
	normalized := strings.TrimSpace(title)
	query := fmt.Sprintf("track:%q", normalized)
	return r.search(ctx, query, model.SearchContext{Kind: model.ContextTrack, Value: normalized}, opts)
}

// SearchByGenre searches using a genre-biased query.
func (r *Recommender) SearchByGenre(ctx context.Context, genre string, opts SearchOptions) Result {
	query := fmt.Sprintf("genre:%q", genre)
	return r.search(ctx, query, model.SearchContext{Kind: model.ContextGenre, Value: genre}, opts)
}

// SearchByMood searches using the normalized mood phrase as free text.
// This is the least precise search path by design of the upstream API.
func (r *Recommender) SearchByMood(ctx context.Context, mood string, opts SearchOptions) Result {
	normalized := strings.ToLower(strings.TrimSpace(mood))
	return r.search(ctx, normalized, model.SearchContext{Kind: model.ContextMood, Value: normalized}, opts)
}

// SearchByArtist first resolves the free-text artist name to its canonical
// form via the artist lookup endpoint, then searches with an artist-biased
// query. The canonical name becomes the result's context value so that
// "more" continues with the corrected name, not the user's original input.
func (r *Recommender) SearchByArtist(ctx context.Context, name string, opts SearchOptions) Result {
	input := strings.TrimSpace(name)

	canonical, err := r.searcher.ResolveArtist(ctx, input)
	if err != nil {
		logger.Warn("[SearchByArtist] artist resolution failed",
			logger.String("artist", input),
			logger.ErrorField(err))
		return errorResult(ErrUpstreamUnavailable, upstreamUnavailableMessage)
	}
	if canonical == "" {
		// The error names what the user typed, not a would-be correction.
		return errorResult(ErrNoMatch, fmt.Sprintf("Sorry, I couldn't find an artist matching '%s'.", input))
	}

	return r.searchArtistTracks(ctx, canonical, opts)
}

// searchArtistTracks searches tracks for an already-canonical artist name.
func (r *Recommender) searchArtistTracks(ctx context.Context, canonical string, opts SearchOptions) Result {
	query := fmt.Sprintf("artist:%q", canonical)
	return r.search(ctx, query, model.SearchContext{Kind: model.ContextArtist, Value: canonical}, opts)
}

// SearchByMoodWithGenreFallback maps the mood onto a genre when the static
// mapping knows it and tries the more precise genre search first. The mood
// text search is the fallback for unmapped moods and for genre searches
// that come back empty. A batch found via the mapped genre keeps its genre
// context, so "more" continues as a genre search.
func (r *Recommender) SearchByMoodWithGenreFallback(ctx context.Context, mood string, opts SearchOptions) Result {
	normalized := strings.ToLower(strings.TrimSpace(mood))

	if genre, ok := moodToGenre[normalized]; ok {
		genreResult := r.SearchByGenre(ctx, genre, opts)
		if genreResult.OK() && len(genreResult.Tracks) > 0 {
			return genreResult
		}
		logger.Debug("[SearchByMoodWithGenreFallback] genre search empty, falling back to mood",
			logger.String("mood", normalized),
			logger.String("genre", genre))
	}

	return r.SearchByMood(ctx, normalized, opts)
}

// Continue re-runs the session's last search with the accumulated seen set
// as exclusions and the stored continuation offset. Options other than
// Count/PageSize/MaxPages are taken from the memory, not from opts.
func (r *Recommender) Continue(ctx context.Context, mem *model.SessionMemory, opts SearchOptions) (Result, error) {
	if mem == nil || mem.LastContext == nil {
		return Result{}, ErrNoContext
	}

	opts.Exclude = mem.SeenSet()
	opts.StartIndex = mem.NextIndex

	last := mem.LastContext
	switch last.Kind {
	case model.ContextArtist:
		// The stored value is already canonical; no re-resolution.
		return r.searchArtistTracks(ctx, last.Value, opts), nil
	case model.ContextGenre:
		return r.SearchByGenre(ctx, last.Value, opts), nil
	case model.ContextMood:
		return r.SearchByMood(ctx, last.Value, opts), nil
	case model.ContextTrack:
		return r.SearchByTrack(ctx, last.Value, opts), nil
	default:
		return Result{}, fmt.Errorf("unknown search context kind %q", last.Kind)
	}
}
