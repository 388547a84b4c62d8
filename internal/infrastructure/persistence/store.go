// Package persistence saves and restores the player's loadout between runs.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

// DefaultFileName is the profile file used when no path is configured
const DefaultFileName = "petalarena-profile.json"

// ErrNoProfile is returned by Load when nothing has been saved yet
var ErrNoProfile = errors.New("no saved profile")

// Profile is the persisted player state
type Profile struct {
	ID      uuid.UUID      `json:"id" msgpack:"id"`
	Loadout entity.Loadout `json:"loadout" msgpack:"loadout"`
	SavedAt time.Time      `json:"savedAt" msgpack:"savedAt"`
}

// Codec encodes profiles on disk
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.MarshalIndent(v, "", "  ") }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// CodecFor picks msgpack for ".msgpack" paths and JSON otherwise
func CodecFor(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".msgpack") {
		return msgpackCodec{}
	}
	return jsonCodec{}
}

// FileStore keeps a single profile in one file
type FileStore struct {
	path  string
	codec Codec
	id    uuid.UUID
	now   func() time.Time
}

// NewFileStore creates a store for path; the format follows the extension
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	return &FileStore{
		path:  path,
		codec: CodecFor(path),
		now:   time.Now,
	}
}

// Path returns the profile file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the saved profile
func (s *FileStore) Load() (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", s.path, ErrNoProfile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var p Profile
	if err := s.codec.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	s.id = p.ID
	return &p, nil
}

// Save writes the profile, replacing the previous file atomically
func (s *FileStore) Save(p *Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.SavedAt = s.now().UTC()

	data, err := s.codec.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	s.id = p.ID
	return nil
}

// SaveLoadout stores l under the current profile ID
func (s *FileStore) SaveLoadout(l entity.Loadout) error {
	return s.Save(&Profile{ID: s.id, Loadout: l})
}
