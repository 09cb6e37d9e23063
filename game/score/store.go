// Package score keeps best scores, one per game configuration.
//
// Stores implement Provider, which hands out an engine.ScoreStore bound to a
// single key. MemoryStore lives for the process; FileStore writes every new
// best score to a JSON file so it survives restarts.
package score

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/tile-merge-game/game/engine"
)

// Provider hands out best score stores keyed by configuration
type Provider interface {
	For(key string) engine.ScoreStore
}

// Entry is one best score
type Entry struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
}

type backend interface {
	Best(key string) int
	Record(key string, score int) error
}

// keyed adapts a backend to engine.ScoreStore for one key
type keyed struct {
	backend backend
	key     string
}

func (k *keyed) Get() int {
	return k.backend.Best(k.key)
}

func (k *keyed) Set(score int) {
	if err := k.backend.Record(k.key, score); err != nil {
		log.Error().Err(err).Str("key", k.key).Int("score", score).Msg("failed to record best score")
	}
}

// MemoryStore keeps best scores in memory
type MemoryStore struct {
	mu     sync.RWMutex
	scores map[string]int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string]int)}
}

// For returns a store bound to key
func (m *MemoryStore) For(key string) engine.ScoreStore {
	return &keyed{backend: m, key: key}
}

// Best returns the best score for key, zero if none
func (m *MemoryStore) Best(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scores[key]
}

// Record stores score as the best score for key
func (m *MemoryStore) Record(key string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[key] = score
	return nil
}

// FileStore keeps best scores in a JSON file
type FileStore struct {
	mu     sync.RWMutex
	path   string
	scores map[string]int
}

// NewFileStore opens the score file at path, creating its directory. A
// missing file starts an empty store.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create scores directory")
	}

	fs := &FileStore{path: path, scores: make(map[string]int)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scores file %s", path)
	}
	if len(data) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(data, &fs.scores); err != nil {
		return nil, errors.Wrapf(err, "failed to parse scores file %s", path)
	}

	return fs, nil
}

// For returns a store bound to key
func (f *FileStore) For(key string) engine.ScoreStore {
	return &keyed{backend: f, key: key}
}

// Best returns the best score for key, zero if none
func (f *FileStore) Best(key string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.scores[key]
}

// Record stores score for key and rewrites the file
func (f *FileStore) Record(key string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.scores[key] = score

	data, err := json.MarshalIndent(f.scores, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal scores")
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write scores file")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrap(err, "failed to replace scores file")
	}
	return nil
}

// Entries lists all best scores, highest first
func (f *FileStore) Entries() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries := make([]Entry, 0, len(f.scores))
	for k, v := range f.scores {
		entries = append(entries, Entry{Key: k, Score: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
