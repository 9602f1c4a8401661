package model

import "time"

// Search context kinds recorded in session memory.
const (
	ContextArtist = "artist"
	ContextGenre  = "genre"
	ContextMood   = "mood"
	ContextTrack  = "track"
)

// SearchContext tags what produced a batch of recommendations: the resolved
// artist name, the literal genre, the normalized mood, or the track title.
// It is replayed verbatim when the user asks for "more".
type SearchContext struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// SessionMemory is the per-session continuation state: every track id the
// session has already been shown, the context of the last successful search,
// and the pagination offset to resume from.
type SessionMemory struct {
	SeenTrackIDs []int64        `json:"seen_track_ids"`
	LastContext  *SearchContext `json:"last_context"`
	NextIndex    int            `json:"next_index"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewSessionMemory returns empty defaults for a session seen for the first time.
func NewSessionMemory() *SessionMemory {
	return &SessionMemory{
		SeenTrackIDs: []int64{},
		NextIndex:    0,
		UpdatedAt:    time.Now().UTC(),
	}
}

// SeenSet returns the seen track ids as a set, ready to seed the dedup filter.
func (m *SessionMemory) SeenSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(m.SeenTrackIDs))
	for _, id := range m.SeenTrackIDs {
		set[id] = struct{}{}
	}
	return set
}

// Apply merges a successful search into the memory: the selected ids join the
// seen set (ids never leave it), and the context and continuation offset are
// overwritten with the new result's values.
func (m *SessionMemory) Apply(selectedIDs []int64, ctx SearchContext, nextIndex int) {
	seen := m.SeenSet()
	for _, id := range selectedIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		m.SeenTrackIDs = append(m.SeenTrackIDs, id)
	}
	m.LastContext = &SearchContext{Kind: ctx.Kind, Value: ctx.Value}
	m.NextIndex = nextIndex
	m.UpdatedAt = time.Now().UTC()
}
