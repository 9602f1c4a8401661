package recommend

import (
	"strings"
	"testing"

	"MoodFM/model"
)

func TestFormatTracks(t *testing.T) {
	tracks := []model.Track{
		{ID: 1, Title: "Hello", Link: "https://www.deezer.com/track/1", Artist: model.Artist{Name: "Adele"}},
		{ID: 2, Title: "Someone Like You", Link: "https://www.deezer.com/track/2", Artist: model.Artist{Name: "Adele"}},
	}

	got := FormatTracks(tracks)

	if !strings.HasPrefix(got, "Here are some songs for you:\n\n") {
		t.Errorf("missing intro sentence, got %q", got)
	}
	if !strings.Contains(got, "| Title | Artist | Listen |") {
		t.Errorf("missing header row, got %q", got)
	}
	if !strings.Contains(got, "| Hello | Adele | [Listen](https://www.deezer.com/track/1) |") {
		t.Errorf("missing first track row, got %q", got)
	}

	// Two data rows plus intro, header and separator.
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 5 {
		t.Errorf("got %d lines, want 5:\n%s", len(lines), got)
	}
}

func TestFormatTracksPlaceholders(t *testing.T) {
	got := FormatTracks([]model.Track{{ID: 3}})

	if !strings.Contains(got, "| Unknown Title | Unknown Artist | [Listen](#) |") {
		t.Errorf("absent fields should degrade to placeholders, got %q", got)
	}
}

func TestFormatTracksEmpty(t *testing.T) {
	if got := FormatTracks(nil); got != NoResultsMessage {
		t.Errorf("empty batch = %q, want the fixed no-results sentence", got)
	}
}
