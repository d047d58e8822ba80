package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/tandemlist/tandem/internal/model"
)

// Store persists the whole collection as one shared flat file.
//
// The file is the only coordination point between sessions. There is no
// lock, no lock server and no atomic rename: reads and overwrites are
// plain, and consistency between sessions comes from the id-based
// merge-on-write rule in Save. Writes from two sessions issued at the
// same instant can still interleave at the OS level; that window is a
// documented limitation of the single-file design, not something the
// store tries to mask.
type Store struct {
	path string

	// last is the content version this store most recently read or
	// wrote. Changed compares against it, so a session never treats
	// its own write as an external modification.
	last Version
}

// Version identifies file content. It is a hash of the bytes, not a
// modification time, so two sessions saving within the same clock tick
// still see each other's writes.
type Version string

// Open returns a store for the given file path. No I/O happens until
// the first Load/Save; a missing file is an empty collection.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the shared file path.
func (s *Store) Path() string { return s.path }

// Load reads the whole collection. A missing file yields an empty
// collection; malformed content is an error the caller must treat as
// fatal, since silently discarding a corrupt shared file would destroy
// other sessions' data.
//
// Records missing an id get a freshly generated one in this call only.
// The backfill is deliberately not written back: loading must stay a
// pure read, so a legacy file keeps producing different ids on every
// load until some mutation saves it. See DESIGN.md.
func (s *Store) Load() ([]model.Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.last = ""
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	items, err := decodeAll(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	s.last = hashBytes(b)
	return items, nil
}

// Save implements merge-on-write. It re-reads the current on-disk
// collection and appends to the candidate every item whose id the
// candidate doesn't know about, that is, items another session added after the
// candidate was derived. The union is sorted canonically and the whole
// file is overwritten.
//
// Guarantee: concurrent additions by other sessions survive a save.
// Non-guarantee: concurrent edits or deletes of the same id are last
// writer wins, and a save that doesn't know about a concurrent delete
// resurrects the item.
func (s *Store) Save(items []model.Item) error {
	current, err := s.read()
	if err != nil {
		return err
	}
	ours := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID != "" {
			ours[it.ID] = true
		}
	}
	merged := make([]model.Item, len(items), len(items)+len(current))
	copy(merged, items)
	for _, it := range current {
		if !ours[it.ID] {
			merged = append(merged, it)
		}
	}
	Sort(merged)
	return s.write(merged)
}

// Delete removes the item with the given id, authoritatively: it reads
// a fresh copy from disk, filters the id out and overwrites the file
// without the merge step. Bypassing the merge is what keeps a stale
// session's later Save from resurrecting the id. The cost is that an
// addition landing between this read and write is dropped; that race is
// inherent to the lock-free single-file design and is accepted.
func (s *Store) Delete(id string) error {
	current, err := s.read()
	if err != nil {
		return err
	}
	kept := current[:0]
	for _, it := range current {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return s.write(kept)
}

// Changed reports whether the file's content differs from the last
// version this store read or wrote.
func (s *Store) Changed() (bool, error) {
	v, err := s.version()
	if err != nil {
		return false, err
	}
	return v != s.last, nil
}

// version hashes the file's current content. Missing file hashes to the
// empty version.
func (s *Store) version() (Version, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", s.path, err)
	}
	return hashBytes(b), nil
}

// read loads the on-disk collection without touching the change
// tracking state. Used by the write paths for their fresh read.
func (s *Store) read() ([]model.Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	items, err := decodeAll(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return items, nil
}

func (s *Store) write(items []model.Item) error {
	records := make([]record, len(items))
	for i, it := range items {
		records[i] = encodeRecord(it)
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.last = hashBytes(b)
	return nil
}

func decodeAll(b []byte) ([]model.Item, error) {
	var records []record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	items := make([]model.Item, len(records))
	for i, r := range records {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		items[i] = decodeRecord(r)
	}
	return items, nil
}

// Sort puts the collection in canonical display order: grouped items
// first, case-insensitive by group then text, then ungrouped items
// case-insensitive by text.
func Sort(items []model.Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Less(items[j])
	})
}

func hashBytes(b []byte) Version {
	sum := sha256.Sum256(b)
	return Version(hex.EncodeToString(sum[:]))
}
