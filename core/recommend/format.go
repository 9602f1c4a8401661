package recommend

import (
	"fmt"
	"strings"

	"MoodFM/model"
)

// NoResultsMessage is the fixed sentence rendered for an empty batch.
const NoResultsMessage = "Sorry, I couldn't find any songs for your request."

// FormatTracks renders an already-selected batch as a markdown table with
// one row per track. Selection and history filtering happen before this is
// called; the formatter never fails, absent fields degrade to placeholders.
func FormatTracks(tracks []model.Track) string {
	if len(tracks) == 0 {
		return NoResultsMessage
	}

	var b strings.Builder
	b.WriteString("Here are some songs for you:\n\n")
	b.WriteString("| Title | Artist | Listen |\n")
	b.WriteString("| --- | --- | --- |\n")

	for _, t := range tracks {
		title := t.Title
		if title == "" {
			title = "Unknown Title"
		}
		artist := t.Artist.Name
		if artist == "" {
			artist = "Unknown Artist"
		}
		link := t.Link
		if link == "" {
			link = "#"
		}
		fmt.Fprintf(&b, "| %s | %s | [Listen](%s) |\n", title, artist, link)
	}

	return b.String()
}
