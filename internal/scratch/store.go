package scratch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/trusteetool/trustee/internal/draw"
)

// Store is a handle to the session's durable scratch copy of the
// assignment mapping. The handle is owned by the command that created
// it and must be released with Remove on every exit path; there is no
// package-level cleanup state.
type Store struct {
	path      string
	sessionID string
	removed   bool
}

type payload struct {
	SessionID   string            `json:"session_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Assignments map[string]string `json:"assignments"`
}

// Write serializes the assignment to a fresh temp file restricted to
// owner-only access. The file exists only for the session's lifetime.
func Write(a draw.Assignment) (*Store, error) {
	f, err := os.CreateTemp("", "santa_assign_*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	path := f.Name()

	// CreateTemp already uses 0600 on Unix; chmod covers platforms with
	// a looser default umask behavior.
	if err := f.Chmod(0600); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to restrict scratch file permissions: %w", err)
	}

	p := payload{
		SessionID:   uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Assignments: a.Pairs(),
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close scratch file: %w", err)
	}

	return &Store{path: path, sessionID: p.SessionID}, nil
}

// Load reads a scratch file back into a giver→receiver mapping.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scratch file: %w", err)
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse scratch file: %w", err)
	}
	return p.Assignments, nil
}

// Path returns the location of the scratch file.
func (s *Store) Path() string {
	return s.path
}

// SessionID returns the unique id recorded with this session's scratch copy.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Remove deletes the scratch file. Best-effort and idempotent: a second
// call, or a call after the file has already vanished, is not an error.
func (s *Store) Remove() error {
	if s == nil || s.removed {
		return nil
	}
	s.removed = true
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove scratch file: %w", err)
	}
	return nil
}
