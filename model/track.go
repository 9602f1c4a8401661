package model

// Artist is the artist object embedded in a Deezer track.
type Artist struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Track is one song record from the Deezer search API. Only the fields the
// engine reads are modeled; the numeric ID is the dedup key and a zero ID
// means the upstream record carried none.
type Track struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Link   string `json:"link"`
	Artist Artist `json:"artist"`
}
