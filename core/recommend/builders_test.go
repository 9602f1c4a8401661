package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"MoodFM/model"
)

func TestSearchByArtistUsesCanonicalName(t *testing.T) {
	fake := &fakeSearcher{
		canonical: "Adele",
		pages: map[int][]model.Track{
			0: manyTracks(100, 10),
		},
	}
	r := New(fake, testConfig())

	result := r.SearchByArtist(context.Background(), "Adel", SearchOptions{})

	if !result.OK() {
		t.Fatalf("result = %+v, want success", result)
	}
	if len(fake.resolveSeen) != 1 || fake.resolveSeen[0] != "Adel" {
		t.Errorf("resolved %v, want the raw input once", fake.resolveSeen)
	}
	// The corrected name, not the typo, is what continuations replay.
	if result.Context.Kind != model.ContextArtist || result.Context.Value != "Adele" {
		t.Errorf("context = %+v, want artist/Adele", result.Context)
	}
}

func TestSearchByArtistNotFound(t *testing.T) {
	fake := &fakeSearcher{canonical: ""}
	r := New(fake, testConfig())

	result := r.SearchByArtist(context.Background(), "zzxxyyqq", SearchOptions{})

	if result.OK() {
		t.Fatalf("result = %+v, want error", result)
	}
	if result.ErrKind != ErrNoMatch {
		t.Errorf("ErrKind = %q, want %q", result.ErrKind, ErrNoMatch)
	}
	if !strings.Contains(result.Message, "zzxxyyqq") {
		t.Errorf("message %q should name the user's input", result.Message)
	}
	if len(fake.fetches) != 0 {
		t.Errorf("track search ran %d times after failed resolution, want 0", len(fake.fetches))
	}
}

func TestSearchByArtistResolutionFailure(t *testing.T) {
	fake := &fakeSearcher{resolveErr: errors.New("timeout")}
	r := New(fake, testConfig())

	result := r.SearchByArtist(context.Background(), "Adele", SearchOptions{})

	if result.OK() || result.ErrKind != ErrUpstreamUnavailable {
		t.Fatalf("result = %+v, want upstream error", result)
	}
}

func TestSearchByMoodNormalizes(t *testing.T) {
	fake := &fakeSearcher{pages: map[int][]model.Track{
		0: manyTracks(100, 10),
	}}
	r := New(fake, testConfig())

	result := r.SearchByMood(context.Background(), "  NoStaLgiC  ", SearchOptions{})

	if !result.OK() {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.Context.Value != "nostalgic" {
		t.Errorf("context value = %q, want lowercased trimmed mood", result.Context.Value)
	}
}

func TestMoodFallbackPrefersMappedGenre(t *testing.T) {
	fake := &fakeSearcher{pages: map[int][]model.Track{
		0: manyTracks(100, 10),
	}}
	r := New(fake, testConfig())

	result := r.SearchByMoodWithGenreFallback(context.Background(), "Happy", SearchOptions{})

	if !result.OK() {
		t.Fatalf("result = %+v, want success", result)
	}
	// "happy" maps onto pop, and a genre hit keeps its genre context.
	if result.Context.Kind != model.ContextGenre || result.Context.Value != "pop" {
		t.Errorf("context = %+v, want genre/pop", result.Context)
	}
}

func TestMoodFallbackFallsBackWhenGenreEmpty(t *testing.T) {
	// No pages at all: the genre attempt finds nothing, then the mood text
	// search also finds nothing. Both attempts must have run.
	fake := &fakeSearcher{pages: map[int][]model.Track{}}
	r := New(fake, testConfig())

	result := r.SearchByMoodWithGenreFallback(context.Background(), "happy", SearchOptions{})

	if result.OK() {
		t.Fatalf("result = %+v, want no match", result)
	}
	if len(fake.fetches) != 2 {
		t.Errorf("upstream fetched %d times, want 2 (genre then mood)", len(fake.fetches))
	}
}

func TestMoodFallbackUnmappedMoodSkipsGenre(t *testing.T) {
	fake := &fakeSearcher{pages: map[int][]model.Track{
		0: manyTracks(100, 10),
	}}
	r := New(fake, testConfig())

	result := r.SearchByMoodWithGenreFallback(context.Background(), "discombobulated", SearchOptions{})

	if !result.OK() {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.Context.Kind != model.ContextMood {
		t.Errorf("context = %+v, want a mood search for an unmapped mood", result.Context)
	}
	if len(fake.fetches) != 1 {
		t.Errorf("upstream fetched %d times, want 1 (no genre attempt)", len(fake.fetches))
	}
}

func TestContinueReplaysContext(t *testing.T) {
	fake := &fakeSearcher{pages: map[int][]model.Track{
		50: manyTracks(500, 50),
	}}
	r := New(fake, testConfig())

	mem := &model.SessionMemory{
		SeenTrackIDs: []int64{500, 501},
		LastContext:  &model.SearchContext{Kind: model.ContextArtist, Value: "Adele"},
		NextIndex:    50,
	}

	result, err := r.Continue(context.Background(), mem, SearchOptions{})
	if err != nil {
		t.Fatalf("Continue returned error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("result = %+v, want success", result)
	}

	// The stored name is canonical already; continuation must not hit the
	// artist lookup again.
	if len(fake.resolveSeen) != 0 {
		t.Errorf("Continue re-resolved the artist: %v", fake.resolveSeen)
	}
	if fake.fetches[0] != 50 {
		t.Errorf("first fetch at %d, want the stored offset 50", fake.fetches[0])
	}
	for _, track := range result.Tracks {
		if track.ID == 500 || track.ID == 501 {
			t.Errorf("continuation repeated seen track %d", track.ID)
		}
	}
}

func TestContinueWithoutContext(t *testing.T) {
	r := New(&fakeSearcher{}, testConfig())

	tests := []struct {
		name string
		mem  *model.SessionMemory
	}{
		{"nil memory", nil},
		{"fresh memory", model.NewSessionMemory()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Continue(context.Background(), tt.mem, SearchOptions{})
			if !errors.Is(err, ErrNoContext) {
				t.Errorf("err = %v, want ErrNoContext", err)
			}
		})
	}
}

func TestContinueUnknownKind(t *testing.T) {
	r := New(&fakeSearcher{}, testConfig())
	mem := &model.SessionMemory{
		LastContext: &model.SearchContext{Kind: "playlist", Value: "x"},
	}

	if _, err := r.Continue(context.Background(), mem, SearchOptions{}); err == nil {
		t.Error("expected an error for an unknown context kind")
	}
}
