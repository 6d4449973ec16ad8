// Package session owns the currently displayed joke and its added-flag, and
// bridges user actions to the fetcher and the favourites store.
package session

import (
	"context"
	"sync"

	"jokebox/internal/client"
	"jokebox/internal/favourites"
	"jokebox/internal/models"
	"jokebox/pkg/logger"
)

// Session is the mutable state a UI renders: the most recently fetched joke
// plus a flag recording whether it has already been favourited. Subscribers
// are notified after every mutation, so any rendering layer can re-read the
// state without the session knowing about it.
type Session struct {
	mu        sync.Mutex
	fetcher   client.Fetcher
	favs      *favourites.Store
	current   models.Joke
	hasJoke   bool
	added     bool
	listeners []func()
}

func New(fetcher client.Fetcher, favs *favourites.Store) *Session {
	return &Session{
		fetcher: fetcher,
		favs:    favs,
	}
}

// Subscribe registers a hook invoked after every state change. Hooks run on
// the mutating goroutine and must not call back into the session.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Refresh fetches a new joke. On success it replaces the current joke and
// resets the added-flag; on failure the previous joke stays displayed and
// the error is logged. Rapid concurrent refreshes race independently and
// the last to complete wins.
func (s *Session) Refresh(ctx context.Context) error {
	joke, err := s.fetcher.FetchJoke(ctx)
	if err != nil {
		logger.Error("Failed to fetch joke", logger.Err(err))
		return err
	}

	s.mu.Lock()
	s.current = joke
	s.hasJoke = true
	s.added = false
	listeners := s.listeners
	s.mu.Unlock()

	logger.Debug("Fetched joke", logger.String("id", joke.ID))
	notify(listeners)
	return nil
}

// MarkFavourite appends the current joke to the favourites store unless the
// added-flag is already set. It reports whether an append happened. The
// guard is the flag alone, not a membership check, so a joke refetched later
// can be favourited again.
func (s *Session) MarkFavourite() bool {
	s.mu.Lock()
	if !s.hasJoke || s.added {
		s.mu.Unlock()
		return false
	}
	joke := s.current
	s.added = true
	listeners := s.listeners
	s.mu.Unlock()

	s.favs.Add(joke)
	logger.Debug("Joke added to favourites", logger.String("id", joke.ID))
	notify(listeners)
	return true
}

// Current returns the displayed joke and whether one has been fetched yet.
func (s *Session) Current() (models.Joke, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.hasJoke
}

// Added reports whether the displayed joke has been favourited.
func (s *Session) Added() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.added
}

func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
