package recommend

import (
	"MoodFM/model"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrKind classifies a failed search.
type ErrKind string

const (
	// ErrUpstreamUnavailable covers transport failures, timeouts and non-2xx
	// responses from either Deezer endpoint.
	ErrUpstreamUnavailable ErrKind = "upstream_unavailable"
	// ErrNoMatch means the search completed but produced nothing: artist
	// resolution found no candidate, or every fetched page was filtered away.
	ErrNoMatch ErrKind = "no_match"
)

// Fixed user-facing sentences.
const (
	upstreamUnavailableMessage = "Sorry, I couldn't process your request right now. Please try again later."
	noNewSongsMessage          = "Sorry, no new songs found matching your search (after filtering repeats)."
)

// Result is the outcome of one search request. Exactly one of the success
// fields (Tracks, SelectedTrackIDs, Context, NextIndex) or the error fields
// (ErrKind, Message) is meaningful, discriminated by Status.
type Result struct {
	Status           string               `json:"status"`
	Tracks           []model.Track        `json:"tracks,omitempty"`
	SelectedTrackIDs []int64              `json:"selected_track_ids,omitempty"`
	Context          *model.SearchContext `json:"context,omitempty"`
	NextIndex        int                  `json:"next_index,omitempty"`
	ResponseText     string               `json:"response_text,omitempty"`
	ErrKind          ErrKind              `json:"error_kind,omitempty"`
	Message          string               `json:"error_message,omitempty"`
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

func successResult(tracks []model.Track, ctx model.SearchContext, nextIndex int) Result {
	ids := make([]int64, 0, len(tracks))
	for _, t := range tracks {
		if t.ID != 0 {
			ids = append(ids, t.ID)
		}
	}
	return Result{
		Status:           StatusSuccess,
		Tracks:           tracks,
		SelectedTrackIDs: ids,
		Context:          &ctx,
		NextIndex:        nextIndex,
		ResponseText:     FormatTracks(tracks),
	}
}

func errorResult(kind ErrKind, message string) Result {
	return Result{
		Status:  StatusError,
		ErrKind: kind,
		Message: message,
	}
}
