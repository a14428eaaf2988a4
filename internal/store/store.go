// Package store keeps named BigInt values on disk.
//
// Each value lives in its own msgpack file under <dir>/values, named by
// the BLAKE3 digest of the value's name. Writes go through a temp file and
// a rename so a crashed write never leaves a torn record behind.
package store

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"

	"bigword/internal/bignum"
)

// schemaVersion is bumped whenever Record changes shape.
const schemaVersion uint16 = 1

// ChecksumPrime is the modulus used for the integrity checksum of stored
// values. It is the largest prime below 2^32.
const ChecksumPrime uint32 = 4294967291

// MaxNameLen bounds value names in bytes.
const MaxNameLen = 128

var (
	// ErrNotFound is returned when no value has the requested name.
	ErrNotFound = errors.New("store: value not found")
	// ErrCorrupt is returned when a record fails schema or checksum checks.
	ErrCorrupt = errors.New("store: corrupt record")
	// ErrInvalidName is returned for empty, oversized or non-printable names.
	ErrInvalidName = errors.New("store: invalid name")
)

// Record is the on-disk form of a stored value.
type Record struct {
	Schema   uint16
	Name     string
	Value    bignum.BigInt
	Checksum uint32
	Saved    time.Time
}

// Entry summarizes one stored value for listings.
type Entry struct {
	Name     string
	Words    int
	Checksum uint32
	Saved    time.Time
}

// Store is a directory of named values. Safe for concurrent use within a
// process.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_DATA_HOME/bigword, falling back to
// ~/.local/share/bigword.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "bigword"), nil
}

// Open prepares dir for use, creating it when missing.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, fmt.Errorf("store: resolve default dir: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "values"), 0o755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string { return s.dir }

// ValidateName reports whether name can be used as a key.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLen || !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

func (s *Store) pathFor(name string) string {
	sum := blake3.Sum256([]byte(name))
	return filepath.Join(s.dir, "values", hex.EncodeToString(sum[:])+".mp")
}

// Put stores v under name, replacing any previous value.
func (s *Store) Put(name string, v bignum.BigInt) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	rec := Record{
		Schema:   schemaVersion,
		Name:     name,
		Value:    v,
		Checksum: v.Checksum(ChecksumPrime),
		Saved:    time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pathFor(name)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// After a successful rename the temp name is gone already.
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "store: failed to remove temp file: %v\n", rmErr)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&rec); err != nil {
		_ = f.Close()
		return fmt.Errorf("store: encode %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the value stored under name.
func (s *Store) Get(name string) (bignum.BigInt, error) {
	if err := ValidateName(name); err != nil {
		return bignum.BigInt{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := readRecord(s.pathFor(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return bignum.BigInt{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return bignum.BigInt{}, err
	}
	if rec.Name != name {
		return bignum.BigInt{}, fmt.Errorf("%w: %s holds %q, want %q", ErrCorrupt, s.pathFor(name), rec.Name, name)
	}
	return rec.Value, nil
}

// Delete removes the value stored under name.
func (s *Store) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return err
	}
	return nil
}

// List returns every stored value sorted by name. The first unreadable
// record aborts the listing.
func (s *Store) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths, err := filepath.Glob(filepath.Join(s.dir, "values", "*.mp"))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		rec, err := readRecord(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Name:     rec.Name,
			Words:    rec.Value.Len(),
			Checksum: rec.Checksum,
			Saved:    rec.Saved,
		})
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return entries, nil
}

// readRecord decodes and verifies the record at path.
func readRecord(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rec Record
	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if rec.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: %s: schema %d, want %d", ErrCorrupt, path, rec.Schema, schemaVersion)
	}
	if got := rec.Value.Checksum(ChecksumPrime); got != rec.Checksum {
		return nil, fmt.Errorf("%w: %s: checksum %d, recorded %d", ErrCorrupt, path, got, rec.Checksum)
	}
	return &rec, nil
}
