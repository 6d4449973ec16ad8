// Package favourites holds the ordered collection of favourited jokes and
// its disk-backed persistence.
package favourites

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"jokebox/internal/models"
	"jokebox/pkg/logger"
)

// Filename is the fixed name of the favourites file inside the storage
// directory.
const Filename = "savedFavourites"

// Store is an ordered, duplicate-tolerant collection of jokes. Appends keep
// insertion order; persistence is wholesale (the whole list is written on
// save and replaced on load).
type Store struct {
	mu    sync.RWMutex
	dir   string
	jokes []models.Joke
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the location of the favourites file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, Filename)
}

// Add appends a joke. Duplicates are permitted; the only idempotence guard
// lives in the session's added-flag.
func (s *Store) Add(joke models.Joke) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jokes = append(s.jokes, joke)
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []models.Joke {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneJokes(s.jokes)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jokes)
}

// Contains reports whether a structurally equal joke is already stored.
func (s *Store) Contains(joke models.Joke) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, j := range s.jokes {
		if j.Equal(joke) {
			return true
		}
	}
	return false
}

// Load replaces the collection wholesale with the contents of the favourites
// file. A missing or undecodable file leaves the collection empty; neither
// case is an error to the caller.
func (s *Store) Load() {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to read favourites file", logger.Err(err), logger.String("path", s.Path()))
		}
		return
	}

	var jokes []models.Joke
	if err := json.Unmarshal(data, &jokes); err != nil {
		logger.Warn("Failed to decode favourites file", logger.Err(err), logger.String("path", s.Path()))
		return
	}

	s.mu.Lock()
	s.jokes = jokes
	s.mu.Unlock()

	logger.Info("Loaded favourites", logger.Int("count", len(jokes)))
}

// Save writes the whole collection to the favourites file as a
// pretty-printed JSON array. The write is atomic: content lands in a temp
// file in the same directory and is renamed over the old file, so readers
// never see a partial write.
func (s *Store) Save() error {
	jokes := s.All()
	if jokes == nil {
		jokes = []models.Joke{}
	}

	data, err := json.MarshalIndent(jokes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode favourites: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, Filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write favourites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace favourites file: %w", err)
	}

	return nil
}

func cloneJokes(jokes []models.Joke) []models.Joke {
	if len(jokes) == 0 {
		return nil
	}
	dup := make([]models.Joke, len(jokes))
	copy(dup, jokes)
	return dup
}
