package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Table is a JSON file holding a mapping from record id to record. The
// file is pretty-printed so it stays human-diffable, and every save
// rewrites the whole table through a temp-file-then-rename.
//
// A missing file reads as an empty table (first-run bootstrap). Any
// other read or parse failure is surfaced to the caller instead of
// being silently treated as empty.
type Table[T any] struct {
	mu   sync.Mutex
	path string
}

func NewTable[T any](path string) *Table[T] {
	return &Table[T]{path: path}
}

// Load returns a fresh copy of the table contents.
func (t *Table[T]) Load() (map[string]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}

// Mutate runs fn over the current contents and, if fn succeeds,
// persists the result. The whole read-modify-write happens under the
// table lock, so id allocation and uniqueness checks inside fn are
// race-free within the process.
func (t *Table[T]) Mutate(fn func(records map[string]T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.load()
	if err != nil {
		return err
	}
	if err := fn(records); err != nil {
		return err
	}
	return t.save(records)
}

func (t *Table[T]) load() (map[string]T, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]T), nil
		}
		return nil, fmt.Errorf("store: read %s: %w", t.path, err)
	}

	records := make(map[string]T)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", t.path, err)
	}
	return records, nil
}

func (t *Table[T]) save(records map[string]T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", t.path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp for %s: %w", t.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", t.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close temp for %s: %w", t.path, err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: replace %s: %w", t.path, err)
	}
	return nil
}
