package domain

// Personality is the shared system-level instruction text shaping every
// session's tone and behavior. Exactly one profile is active at a time.
type Personality struct {
	Profile string `json:"profile"`
}

// UserProfile is the first-run setup record consumed to synthesize the
// initial system preamble when no personality file exists yet
type UserProfile struct {
	Name  string   `json:"name"`
	Age   string   `json:"age,omitempty"`
	Goals []string `json:"goals"`
	Tone  []string `json:"tone"`
}

// ProfileStore defines the interface for personality and user-profile
// persistence
type ProfileStore interface {
	// LoadPersonality returns the active profile text and whether a
	// readable personality file was found.
	LoadPersonality() (string, bool)

	// SavePersonality fully replaces the stored profile.
	SavePersonality(profile string) error

	// LoadUserProfile returns the setup record and whether a readable
	// user profile file was found.
	LoadUserProfile() (UserProfile, bool)

	// SaveUserProfile persists the setup record.
	SaveUserProfile(p UserProfile) error
}
