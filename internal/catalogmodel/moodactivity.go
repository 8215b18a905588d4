// ABOUTME: Mood and activity synonym resolution to a closed set of canonical categories
// ABOUTME: Falls back to a genre/tempo heuristic when no activity tags are present

package catalogmodel

// Canonical mood and activity categories per spec §4.1.
const (
	MoodCalm      = "calm"
	MoodRelaxed   = "relaxed"
	MoodEnergetic = "energetic"
	MoodUpbeat    = "upbeat"
	MoodHappy     = "happy"
	MoodSad       = "sad"
	MoodNostalgic = "nostalgic"
	MoodFocus     = "focus"
)

const (
	ActivityParty    = "party"
	ActivityWorkout  = "workout"
	ActivityRunning  = "running"
	ActivityStudying = "studying"
	ActivitySleep    = "sleep"
	ActivityDriving  = "driving"
)

var moodSynonyms = map[string]string{
	"chill":      MoodCalm,
	"chilled":    MoodCalm,
	"mellow":     MoodCalm,
	"peaceful":   MoodCalm,
	"laid back":  MoodRelaxed,
	"laidback":   MoodRelaxed,
	"easy":       MoodRelaxed,
	"hype":       MoodEnergetic,
	"energetic":  MoodEnergetic,
	"pumped":     MoodEnergetic,
	"upbeat":     MoodUpbeat,
	"feel good":  MoodHappy,
	"joyful":     MoodHappy,
	"happy":      MoodHappy,
	"melancholy": MoodSad,
	"melancholic": MoodSad,
	"sad":        MoodSad,
	"wistful":    MoodNostalgic,
	"nostalgic":  MoodNostalgic,
	"concentration": MoodFocus,
	"focus":      MoodFocus,
}

var activitySynonyms = map[string]string{
	"partying":  ActivityParty,
	"party":     ActivityParty,
	"club":      ActivityParty,
	"gym":       ActivityWorkout,
	"workout":   ActivityWorkout,
	"exercise":  ActivityWorkout,
	"run":       ActivityRunning,
	"running":   ActivityRunning,
	"jog":       ActivityRunning,
	"jogging":   ActivityRunning,
	"study":     ActivityStudying,
	"studying":  ActivityStudying,
	"work":      ActivityStudying,
	"sleep":     ActivitySleep,
	"sleeping":  ActivitySleep,
	"bedtime":   ActivitySleep,
	"drive":     ActivityDriving,
	"driving":   ActivityDriving,
	"road trip": ActivityDriving,
}

// highEnergyMood/Activity and lowEnergyMood/Activity feed the ordering
// agent's energy-level derivation (§4.5).
var highEnergyMood = map[string]bool{
	MoodEnergetic: true,
	MoodUpbeat:    true,
	MoodHappy:     true,
}

var lowEnergyMood = map[string]bool{
	MoodCalm:    true,
	MoodRelaxed: true,
	MoodSad:     true,
}

var highEnergyActivity = map[string]bool{
	ActivityParty:   true,
	ActivityWorkout: true,
	ActivityRunning: true,
}

var lowEnergyActivity = map[string]bool{
	ActivityStudying: true,
	ActivitySleep:    true,
}

func mapSynonyms(tags []string, table map[string]string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))

	for _, tag := range tags {
		folded := foldGenre(tag) // same lower/trim/collapse fold as genres
		canonical, ok := table[folded]

		if !ok {
			canonical = folded
		}

		if canonical == "" || seen[canonical] {
			continue
		}

		seen[canonical] = true
		out = append(out, canonical)
	}

	return out
}

// MapMood resolves raw mood tags to canonical mood categories.
func MapMood(tags []string) []string {
	return mapSynonyms(tags, moodSynonyms)
}

// MapActivity resolves raw activity tags to canonical activity categories.
func MapActivity(tags []string) []string {
	return mapSynonyms(tags, activitySynonyms)
}

// InferActivity derives an activity category from genre+tempo when no
// activity tag exists, e.g. fast electronic -> {workout, party}.
func InferActivity(normalizedGenres []string, bucket TempoBucket) []string {
	hasGenre := func(g string) bool {
		for _, ng := range normalizedGenres {
			if GenreRelated(ng, g) {
				return true
			}
		}

		return false
	}

	var out []string

	switch {
	case bucket == TempoFast && hasGenre("electronic"):
		out = append(out, ActivityWorkout, ActivityParty)
	case bucket == TempoFast:
		out = append(out, ActivityWorkout)
	case bucket == TempoSlow && (hasGenre("jazz") || hasGenre("classical")):
		out = append(out, ActivityStudying)
	case bucket == TempoSlow:
		out = append(out, ActivitySleep)
	}

	return out
}

// EnergyLevel classifies "high", "medium", or "low" from a track's mapped
// mood/activity, per the ordering agent's section-assignment rule (§4.5).
func EnergyLevel(mood, activity []string) string {
	for _, m := range mood {
		if highEnergyMood[m] {
			return "high"
		}
	}

	for _, a := range activity {
		if highEnergyActivity[a] {
			return "high"
		}
	}

	for _, m := range mood {
		if lowEnergyMood[m] {
			return "low"
		}
	}

	for _, a := range activity {
		if lowEnergyActivity[a] {
			return "low"
		}
	}

	return "medium"
}
