package recommend

// moodToGenre maps common mood expressions onto the genre most likely to
// match them. Lookups expect the mood already trimmed and lowercased.
var moodToGenre = map[string]string{
	// Happy / Uplifting
	"happy":          "pop",
	"excited":        "pop",
	"feeling great":  "pop",
	"positive":       "pop",
	"joyful":         "pop",
	"in a good mood": "pop",
	"cheerful":       "pop",

	// Sad / Emotional
	"sad":          "blues",
	"feeling down": "blues",
	"blue":         "blues",
	"heartbroken":  "blues",
	"lonely":       "blues",
	"depressed":    "blues",
	"melancholy":   "blues",

	// Romantic / Loving
	"romantic":               "r&b",
	"in love":                "r&b",
	"thinking about someone": "r&b",
	"longing":                "r&b",
	"crush":                  "r&b",
	"passionate":             "r&b",

	// Calm / Relaxed
	"relaxed":        "jazz",
	"calm":           "jazz",
	"peaceful":       "jazz",
	"easygoing":      "jazz",
	"laid back":      "jazz",
	"need to unwind": "jazz",

	// Spiritual / Uplifting
	"spiritual":           "religious",
	"uplifted":            "religious",
	"soulful":             "religious",
	"prayerful":           "religious",
	"looking for meaning": "religious",

	// Dramatic / Powerful
	"dramatic":  "classical",
	"emotional": "classical",
	"powerful":  "classical",
	"inspired":  "classical",
	"epic":      "classical",

	// Energetic / Workout
	"energetic":       "rock",
	"working out":     "rock",
	"need motivation": "rock",
	"pumped":          "rock",
	"ready to move":   "rock",

	// Angry / Tense
	"angry":      "metal",
	"furious":    "metal",
	"mad":        "metal",
	"frustrated": "metal",
	"tense":      "metal",

	// Chill / Mellow
	"chill":       "lo-fi",
	"chill vibes": "lo-fi",
	"laid-back":   "lo-fi",
	"mellow":      "lo-fi",
	"relaxing":    "lo-fi",
	"breezy":      "lo-fi",
}
