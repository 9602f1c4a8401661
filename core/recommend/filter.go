package recommend

import "MoodFM/model"

// pickUniqueTracks picks up to need tracks whose ids are not in exclude,
// preserving the upstream order. Every picked id is added to exclude before
// the function returns, so a later call with the same set can never pick it
// again. Tracks without an id are skipped: they cannot be deduplicated.
func pickUniqueTracks(tracks []model.Track, exclude map[int64]struct{}, need int) []model.Track {
	picked := make([]model.Track, 0, need)
	for _, t := range tracks {
		if t.ID == 0 {
			continue
		}
		if _, seen := exclude[t.ID]; seen {
			continue
		}
		picked = append(picked, t)
		exclude[t.ID] = struct{}{}
		if len(picked) == need {
			break
		}
	}
	return picked
}
