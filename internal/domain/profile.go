package domain

// Profile describes how a personality mode sounds.
type Profile struct {
	Tone     string
	Style    string
	Language string
	Closer   string
}

// ProfileFor returns the profile for a personality mode. Unknown modes get
// the coach profile.
func ProfileFor(mode string) Profile {
	switch mode {
	case PersonalityFriend:
		return Profile{
			Tone:     "casual and friendly",
			Style:    "like a helpful friend",
			Language: "conversational and relaxed",
			Closer:   "Hope this helps! 😊",
		}
	case PersonalityStrict:
		return Profile{
			Tone:     "direct and focused",
			Style:    "like an efficient executive assistant",
			Language: "clear and action-oriented",
			Closer:   "Execute immediately.",
		}
	case PersonalityZen:
		return Profile{
			Tone:     "calm and mindful",
			Style:    "like a mindfulness teacher",
			Language: "peaceful and reflective",
			Closer:   "Focus on this moment. 🧘",
		}
	default:
		return Profile{
			Tone:     "encouraging and supportive",
			Style:    "like a professional productivity coach",
			Language: "motivational but not pushy",
			Closer:   "You've got this! 💪",
		}
	}
}

// KnownPersonality reports whether mode is one of the four declared modes.
func KnownPersonality(mode string) bool {
	switch mode {
	case PersonalityCoach, PersonalityFriend, PersonalityStrict, PersonalityZen:
		return true
	}
	return false
}
