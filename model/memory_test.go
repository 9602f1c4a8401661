package model

import (
	"reflect"
	"testing"
)

func TestSessionMemoryApply(t *testing.T) {
	mem := NewSessionMemory()

	mem.Apply([]int64{1, 2, 3}, SearchContext{Kind: ContextArtist, Value: "Adele"}, 50)

	if !reflect.DeepEqual(mem.SeenTrackIDs, []int64{1, 2, 3}) {
		t.Errorf("SeenTrackIDs = %v", mem.SeenTrackIDs)
	}
	if mem.LastContext == nil || mem.LastContext.Value != "Adele" {
		t.Errorf("LastContext = %+v", mem.LastContext)
	}
	if mem.NextIndex != 50 {
		t.Errorf("NextIndex = %d, want 50", mem.NextIndex)
	}

	// A second batch grows the seen list without duplicating ids and
	// overwrites the context and offset.
	mem.Apply([]int64{3, 4}, SearchContext{Kind: ContextGenre, Value: "pop"}, 100)

	if !reflect.DeepEqual(mem.SeenTrackIDs, []int64{1, 2, 3, 4}) {
		t.Errorf("SeenTrackIDs after second apply = %v", mem.SeenTrackIDs)
	}
	if mem.LastContext.Kind != ContextGenre || mem.LastContext.Value != "pop" {
		t.Errorf("LastContext = %+v, want genre/pop", mem.LastContext)
	}
	if mem.NextIndex != 100 {
		t.Errorf("NextIndex = %d, want 100", mem.NextIndex)
	}
}

func TestSessionMemorySeenSet(t *testing.T) {
	mem := &SessionMemory{SeenTrackIDs: []int64{7, 8, 7}}

	set := mem.SeenSet()
	if len(set) != 2 {
		t.Errorf("SeenSet has %d entries, want 2", len(set))
	}
	if _, ok := set[7]; !ok {
		t.Error("SeenSet missing id 7")
	}
}

func TestRecommendationHistoryTrackIDs(t *testing.T) {
	var h RecommendationHistory

	h.SetTrackIDs([]int64{10, 20, 30})
	if h.TrackIDs != "10,20,30" {
		t.Errorf("TrackIDs = %q", h.TrackIDs)
	}
	if h.TrackCount != 3 {
		t.Errorf("TrackCount = %d, want 3", h.TrackCount)
	}

	if got := h.TrackIDList(); !reflect.DeepEqual(got, []int64{10, 20, 30}) {
		t.Errorf("TrackIDList = %v", got)
	}

	h.TrackIDs = "10,bogus,30"
	if got := h.TrackIDList(); !reflect.DeepEqual(got, []int64{10, 30}) {
		t.Errorf("TrackIDList with malformed entry = %v", got)
	}

	h.TrackIDs = ""
	if got := h.TrackIDList(); got != nil {
		t.Errorf("TrackIDList on empty = %v, want nil", got)
	}
}
