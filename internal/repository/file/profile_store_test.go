package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStore_PersonalityRoundTrip(t *testing.T) {
	store, err := NewProfileStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.LoadPersonality()
	assert.False(t, ok)

	require.NoError(t, store.SavePersonality("You are a patient financial coach."))

	profile, ok := store.LoadPersonality()
	require.True(t, ok)
	assert.Equal(t, "You are a patient financial coach.", profile)
}

func TestProfileStore_CorruptPersonalityIsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewProfileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "personality.json"), []byte("not json"), 0o600))

	_, ok := store.LoadPersonality()
	assert.False(t, ok)
}

func TestProfileStore_UserProfileRoundTrip(t *testing.T) {
	store, err := NewProfileStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.LoadUserProfile()
	assert.False(t, ok)

	in := domain.UserProfile{
		Name:  "Jordan",
		Age:   "34",
		Goals: []string{"pay off debt", "build savings"},
		Tone:  []string{"direct", "encouraging"},
	}
	require.NoError(t, store.SaveUserProfile(in))

	out, ok := store.LoadUserProfile()
	require.True(t, ok)
	assert.Equal(t, in, out)
}
