package recommend

import (
	"encoding/json"
	"strings"
	"testing"

	"MoodFM/model"
)

func TestErrorResultJSONOmitsSuccessFields(t *testing.T) {
	body, err := json.Marshal(errorResult(ErrNoMatch, noNewSongsMessage))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"context"`, `"tracks"`, `"selected_track_ids"`, `"response_text"`} {
		if strings.Contains(string(body), key) {
			t.Errorf("error result JSON contains %s: %s", key, body)
		}
	}
}

func TestSuccessResultJSONCarriesContext(t *testing.T) {
	tracks := []model.Track{tr(1, "Hello")}
	result := successResult(tracks, model.SearchContext{Kind: model.ContextArtist, Value: "Adele"}, 25)

	body, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Context == nil {
		t.Fatal("success result JSON lost the search context")
	}
	if decoded.Context.Kind != model.ContextArtist || decoded.Context.Value != "Adele" {
		t.Errorf("context = %+v, want artist/Adele", decoded.Context)
	}
	if decoded.NextIndex != 25 {
		t.Errorf("next index = %d, want 25", decoded.NextIndex)
	}
}
