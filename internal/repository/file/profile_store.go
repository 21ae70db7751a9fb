package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	personalityFile = "personality.json"
	userProfileFile = "user_config.json"
)

// ProfileStore persists the personality profile and the first-run user
// profile under a single config directory
type ProfileStore struct {
	dir string
}

var _ domain.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates a profile store rooted at dir, creating it if
// needed
func NewProfileStore(dir string) (*ProfileStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return &ProfileStore{dir: dir}, nil
}

// LoadPersonality returns the active profile text. The second return is
// false when no readable personality file exists.
func (s *ProfileStore) LoadPersonality() (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, personalityFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("failed to read personality file")
		}
		return "", false
	}

	var p domain.Personality
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Msg("failed to parse personality file")
		return "", false
	}
	if p.Profile == "" {
		return "", false
	}
	return p.Profile, true
}

// SavePersonality fully replaces the stored profile
func (s *ProfileStore) SavePersonality(profile string) error {
	data, err := json.MarshalIndent(domain.Personality{Profile: profile}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal personality: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, personalityFile), data, sessionMode); err != nil {
		return fmt.Errorf("failed to write personality file: %w", err)
	}
	return nil
}

// LoadUserProfile returns the first-run setup record. The second return is
// false when no readable user profile file exists.
func (s *ProfileStore) LoadUserProfile() (domain.UserProfile, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, userProfileFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("failed to read user profile")
		}
		return domain.UserProfile{}, false
	}

	var p domain.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Msg("failed to parse user profile")
		return domain.UserProfile{}, false
	}
	if p.Name == "" {
		return domain.UserProfile{}, false
	}
	return p, true
}

// SaveUserProfile persists the first-run setup record
func (s *ProfileStore) SaveUserProfile(p domain.UserProfile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userProfileFile), data, sessionMode); err != nil {
		return fmt.Errorf("failed to write user profile: %w", err)
	}
	return nil
}
