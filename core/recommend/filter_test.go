package recommend

import (
	"reflect"
	"testing"

	"MoodFM/model"
)

func tr(id int64, title string) model.Track {
	return model.Track{ID: id, Title: title, Link: "https://example.com/track", Artist: model.Artist{Name: "Artist"}}
}

func TestPickUniqueTracks(t *testing.T) {
	tests := []struct {
		name    string
		tracks  []model.Track
		exclude map[int64]struct{}
		need    int
		wantIDs []int64
	}{
		{
			name:    "takes in order up to need",
			tracks:  []model.Track{tr(1, "a"), tr(2, "b"), tr(3, "c")},
			exclude: map[int64]struct{}{},
			need:    2,
			wantIDs: []int64{1, 2},
		},
		{
			name:    "skips excluded ids",
			tracks:  []model.Track{tr(1, "a"), tr(2, "b"), tr(3, "c")},
			exclude: map[int64]struct{}{2: {}},
			need:    3,
			wantIDs: []int64{1, 3},
		},
		{
			name:    "skips duplicates within the page",
			tracks:  []model.Track{tr(7, "a"), tr(7, "a again"), tr(8, "b")},
			exclude: map[int64]struct{}{},
			need:    3,
			wantIDs: []int64{7, 8},
		},
		{
			name:    "skips tracks without an id",
			tracks:  []model.Track{tr(0, "no id"), tr(4, "b")},
			exclude: map[int64]struct{}{},
			need:    2,
			wantIDs: []int64{4},
		},
		{
			name:    "empty input yields empty batch",
			tracks:  nil,
			exclude: map[int64]struct{}{},
			need:    5,
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickUniqueTracks(tt.tracks, tt.exclude, tt.need)

			gotIDs := make([]int64, 0, len(got))
			for _, track := range got {
				gotIDs = append(gotIDs, track.ID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("picked ids = %v, want %v", gotIDs, tt.wantIDs)
			}

			// Everything picked must now be in the exclusion set.
			for _, id := range tt.wantIDs {
				if _, ok := tt.exclude[id]; !ok {
					t.Errorf("picked id %d missing from exclusion set", id)
				}
			}
		})
	}
}

func TestPickUniqueTracksAcrossCalls(t *testing.T) {
	exclude := map[int64]struct{}{}

	first := pickUniqueTracks([]model.Track{tr(1, "a"), tr(2, "b")}, exclude, 5)
	if len(first) != 2 {
		t.Fatalf("first call picked %d tracks, want 2", len(first))
	}

	// A second call over an overlapping page must only pick new ids.
	second := pickUniqueTracks([]model.Track{tr(2, "b"), tr(3, "c")}, exclude, 5)
	if len(second) != 1 || second[0].ID != 3 {
		t.Fatalf("second call picked %+v, want only id 3", second)
	}
}
