package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	sessionExt  = ".json"
	sessionMode = 0o600
	dirMode     = 0o700
)

// record is the on-disk shape of one session file element. Element 0 may be
// a metadata record carrying only tooltip_summary; everything else is a
// conversational turn.
type record struct {
	Role           domain.TurnRole `json:"role,omitempty"`
	Content        string          `json:"content,omitempty"`
	Timestamp      *time.Time      `json:"timestamp,omitempty"`
	TooltipSummary string          `json:"tooltip_summary,omitempty"`
}

// SessionStore persists sessions as one JSON array file per session
type SessionStore struct {
	dir string
}

var _ domain.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a session store rooted at dir, creating it if
// needed
func NewSessionStore(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &SessionStore{dir: dir}, nil
}

func (s *SessionStore) path(name string) string {
	return filepath.Join(s.dir, name+sessionExt)
}

// Load returns the named session's conversational turns. Missing or corrupt
// files degrade to an empty history; a concurrent writer's partial file
// parses as corrupt and is treated the same way.
func (s *SessionStore) Load(name string) []domain.Turn {
	records, err := s.read(s.path(name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("session", name).Msg("failed to load session history")
		}
		return []domain.Turn{}
	}
	return turnsOf(records)
}

// Save overwrites the named session file with the given turns. Invalid
// turns are filtered; a non-empty tooltip is prepended as a metadata record.
func (s *SessionStore) Save(name string, turns []domain.Turn, tooltip string) error {
	records := make([]record, 0, len(turns)+1)
	if tooltip != "" {
		records = append(records, record{TooltipSummary: tooltip})
	}
	for _, t := range domain.FilterValid(turns) {
		records = append(records, record{Role: t.Role, Content: t.Content, Timestamp: t.Timestamp})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path(name), data, sessionMode); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// List returns all readable sessions, newest first by file modification
// time (the closest portable stand-in for creation time). Files that fail
// to parse are omitted rather than surfaced as errors.
func (s *SessionStore) List() []domain.SessionInfo {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", s.dir).Msg("failed to read session directory")
		return []domain.SessionInfo{}
	}

	sessions := make([]domain.SessionInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sessionExt) {
			continue
		}

		records, err := s.read(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping unreadable session file")
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		tooltip := ""
		for _, r := range records {
			if r.TooltipSummary != "" {
				tooltip = r.TooltipSummary
				break
			}
		}

		sessions = append(sessions, domain.SessionInfo{
			Name:      strings.TrimSuffix(entry.Name(), sessionExt),
			CreatedAt: info.ModTime(),
			Tooltip:   tooltip,
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions
}

// Delete removes the named session file. Deleting a nonexistent session is
// a no-op.
func (s *SessionStore) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Rename moves a session file to a new name
func (s *SessionStore) Rename(oldName, newName string) error {
	if err := os.Rename(s.path(oldName), s.path(newName)); err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}
	return nil
}

// All returns the conversational turns of every session on disk. Files are
// iterated in lexical filename order and unreadable files are skipped, so
// the result is a stable best-effort aggregation, not a chronological merge
// across sessions.
func (s *SessionStore) All() []domain.Turn {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", s.dir).Msg("failed to read session directory")
		return []domain.Turn{}
	}

	var all []domain.Turn
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sessionExt) {
			continue
		}
		records, err := s.read(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping corrupt session file")
			continue
		}
		for _, t := range turnsOf(records) {
			if t.Conversational() {
				all = append(all, t)
			}
		}
	}
	return all
}

func (s *SessionStore) read(path string) ([]record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return records, nil
}

// turnsOf filters records down to turns, dropping metadata records and
// anything missing role or content
func turnsOf(records []record) []domain.Turn {
	turns := make([]domain.Turn, 0, len(records))
	for _, r := range records {
		t := domain.Turn{Role: r.Role, Content: r.Content, Timestamp: r.Timestamp}
		if t.Valid() {
			turns = append(turns, t)
		}
	}
	return turns
}
