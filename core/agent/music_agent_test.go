package agent

import (
	"testing"

	"MoodFM/model"
)

func TestParseIntent(t *testing.T) {
	a := NewMusicAgent(&MusicAgentConfig{})

	tests := []struct {
		name      string
		content   string
		wantClean string
		wantKind  string
		wantValue string
		wantNil   bool
	}{
		{
			name:      "artist tag",
			content:   "Great choice!<search_artist>Daft Punk</search_artist>",
			wantClean: "Great choice!",
			wantKind:  model.ContextArtist,
			wantValue: "Daft Punk",
		},
		{
			name:      "genre tag",
			content:   "Here you go.<search_genre>jazz</search_genre>",
			wantClean: "Here you go.",
			wantKind:  model.ContextGenre,
			wantValue: "jazz",
		},
		{
			name:      "mood tag with padding",
			content:   "Something gentle.<search_mood>  sad  </search_mood>",
			wantClean: "Something gentle.",
			wantKind:  model.ContextMood,
			wantValue: "sad",
		},
		{
			name:      "track tag",
			content:   "A classic.<search_track>Hey Jude</search_track>",
			wantClean: "A classic.",
			wantKind:  model.ContextTrack,
			wantValue: "Hey Jude",
		},
		{
			name:      "more tag self closing",
			content:   "Coming right up.<more/>",
			wantClean: "Coming right up.",
			wantKind:  IntentMore,
			wantValue: "",
		},
		{
			name:      "more tag with space",
			content:   "On it.<more />",
			wantClean: "On it.",
			wantKind:  IntentMore,
			wantValue: "",
		},
		{
			name:      "no tag",
			content:   "Just chatting about music.",
			wantClean: "Just chatting about music.",
			wantNil:   true,
		},
		{
			name:      "first tag wins",
			content:   "Two tags.<search_genre>rock</search_genre><search_mood>happy</search_mood>",
			wantClean: "Two tags.",
			wantKind:  model.ContextGenre,
			wantValue: "rock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, intent := a.ParseIntent(tt.content)

			if clean != tt.wantClean {
				t.Errorf("clean = %q, want %q", clean, tt.wantClean)
			}
			if tt.wantNil {
				if intent != nil {
					t.Errorf("intent = %+v, want nil", intent)
				}
				return
			}
			if intent == nil {
				t.Fatal("intent = nil, want one")
			}
			if intent.Kind != tt.wantKind || intent.Value != tt.wantValue {
				t.Errorf("intent = %+v, want kind=%q value=%q", intent, tt.wantKind, tt.wantValue)
			}
		})
	}
}
