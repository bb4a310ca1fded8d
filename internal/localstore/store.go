// Package localstore persists the bounded profile list on the local
// device. Reads and writes are synchronous and best-effort: a corrupt,
// invalid, or absent cache reads as an empty list, which is a valid
// bootstrap state: the synchronizer will create a default profile.
package localstore

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
)

// envelope is the on-disk layout: a versioned wrapper around the
// profile list.
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Profiles      []types.Profile `json:"profiles"`
}

// Store is a file-backed profile cache.
type Store struct {
	path string
}

// New creates a store backed by the given file path. The file is
// created lazily on first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the conventional cache location under the user
// config directory, falling back to the working directory when the
// config dir cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".resume-editor/profiles.json"
	}
	return filepath.Join(dir, "resume-editor", "profiles.json")
}

// List returns all cached profiles. Any read, parse, or schema failure
// degrades to an empty list rather than raising.
func (s *Store) List() []types.Profile {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("localstore: read failed, starting empty: %v", err)
		}
		return nil
	}

	if err := schemas.ValidateProfileCache(string(data)); err != nil {
		log.Printf("localstore: cache failed schema validation, starting empty: %v", err)
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("localstore: cache unreadable, starting empty: %v", err)
		return nil
	}
	if env.SchemaVersion != schemas.ProfileCacheVersion {
		log.Printf("localstore: unsupported cache schema version %d, starting empty", env.SchemaVersion)
		return nil
	}

	return env.Profiles
}

// Save writes the full profile list, replacing the previous contents.
// Failures are logged and swallowed: the editor must keep working on
// in-memory state when the device store is unavailable.
func (s *Store) Save(profiles []types.Profile) {
	env := envelope{
		SchemaVersion: schemas.ProfileCacheVersion,
		Profiles:      profiles,
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		log.Printf("localstore: marshal failed, skipping save: %v", err)
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("localstore: mkdir failed, skipping save: %v", err)
			return
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("localstore: write failed: %v", err)
	}
}
