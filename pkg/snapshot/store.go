package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studentweb/pkg/grades"
)

// ErrMalformedSnapshot is returned when a snapshot file exists but cannot be decoded.
// Callers must not fall back to an empty baseline, that would report every course as new.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Entry represents the disk data format
type Entry struct {
	SavedAt time.Time       `json:"saved_at"`
	Variant grades.Variant  `json:"variant"`
	Records []grades.Record `json:"records"`
}

// Store keeps one snapshot file per variant inside a directory
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir. The directory is created on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Path returns the snapshot file used for a variant
func (s *Store) Path(variant grades.Variant) string {
	return filepath.Join(s.dir, fmt.Sprintf("results_%s.json", variant))
}

// Load reads the snapshot for a variant.
// Returns nil without an error if no snapshot has been written yet.
func (s *Store) Load(variant grades.Variant) (*grades.Set, error) {
	path := s.Path(variant)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrMalformedSnapshot, path, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrMalformedSnapshot, path, err)
	}
	if entry.Variant != "" && entry.Variant != variant {
		return nil, fmt.Errorf("%w: %s holds %s results", ErrMalformedSnapshot, path, entry.Variant)
	}

	return &grades.Set{Variant: variant, Records: entry.Records}, nil
}

// Save overwrites the snapshot for set.Variant.
// The file is written next to its destination and renamed into place, so a
// failed write leaves the previous snapshot intact.
func (s *Store) Save(set grades.Set) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create snapshot directory: %w", err)
	}

	records := set.Records
	if records == nil {
		records = []grades.Record{}
	}

	data, err := json.MarshalIndent(Entry{
		SavedAt: s.now().UTC(),
		Variant: set.Variant,
		Records: records,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, fmt.Sprintf(".results_%s-*.json", set.Variant))
	if err != nil {
		return fmt.Errorf("failed to create temporary snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path(set.Variant)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
