package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"jokebox/internal/favourites"
	"jokebox/internal/lifecycle"
	"jokebox/internal/models"
	"jokebox/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", io.Discard)
	os.Exit(m.Run())
}

// fakeFetcher returns its queued jokes in order, then errors.
type fakeFetcher struct {
	jokes []models.Joke
	err   error
}

func (f *fakeFetcher) FetchJoke(ctx context.Context) (models.Joke, error) {
	if f.err != nil {
		return models.Joke{}, f.err
	}
	if len(f.jokes) == 0 {
		return models.Joke{}, errors.New("no jokes queued")
	}
	joke := f.jokes[0]
	f.jokes = f.jokes[1:]
	return joke, nil
}

func newTestSession(t *testing.T, fetcher *fakeFetcher) (*Session, *favourites.Store) {
	t.Helper()
	store := favourites.New(t.TempDir())
	return New(fetcher, store), store
}

func TestRefreshReplacesCurrent(t *testing.T) {
	joke := models.Joke{ID: "abc", Text: "Why did...", Status: 200}
	s, _ := newTestSession(t, &fakeFetcher{jokes: []models.Joke{joke}})

	if _, ok := s.Current(); ok {
		t.Fatal("new session should have no current joke")
	}

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	got, ok := s.Current()
	if !ok {
		t.Fatal("Current() has no joke after successful refresh")
	}
	if !got.Equal(joke) {
		t.Errorf("Current() = %+v, want %+v", got, joke)
	}
}

func TestRefreshFailureKeepsCurrent(t *testing.T) {
	joke := models.Joke{ID: "abc", Text: "Why did...", Status: 200}
	fetcher := &fakeFetcher{jokes: []models.Joke{joke}}
	s, _ := newTestSession(t, fetcher)

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	fetcher.err = errors.New("network unreachable")
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() expected error, got nil")
	}

	got, ok := s.Current()
	if !ok || !got.Equal(joke) {
		t.Errorf("Current() = %+v after failed refresh, want previous joke", got)
	}
}

func TestMarkFavourite(t *testing.T) {
	joke := models.Joke{ID: "abc", Text: "Why did...", Status: 200}
	s, store := newTestSession(t, &fakeFetcher{jokes: []models.Joke{joke}})

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if s.Added() {
		t.Fatal("Added() = true before marking")
	}

	if !s.MarkFavourite() {
		t.Fatal("MarkFavourite() = false, want true")
	}
	if !s.Added() {
		t.Error("Added() = false after marking")
	}

	got := store.All()
	if len(got) != 1 || !got[0].Equal(joke) {
		t.Errorf("favourites = %+v, want [%+v]", got, joke)
	}
}

func TestMarkFavouriteTwiceIsNoOp(t *testing.T) {
	joke := models.Joke{ID: "abc", Text: "Why did...", Status: 200}
	s, store := newTestSession(t, &fakeFetcher{jokes: []models.Joke{joke}})

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	s.MarkFavourite()
	if s.MarkFavourite() {
		t.Error("second MarkFavourite() = true, want false")
	}
	if store.Len() != 1 {
		t.Errorf("favourites length = %d, want 1", store.Len())
	}
}

func TestMarkFavouriteWithoutJoke(t *testing.T) {
	s, store := newTestSession(t, &fakeFetcher{})

	if s.MarkFavourite() {
		t.Error("MarkFavourite() = true with no current joke")
	}
	if store.Len() != 0 {
		t.Errorf("favourites length = %d, want 0", store.Len())
	}
}

func TestRefreshResetsAddedFlag(t *testing.T) {
	jokes := []models.Joke{
		{ID: "abc", Text: "first", Status: 200},
		{ID: "def", Text: "second", Status: 200},
	}
	s, store := newTestSession(t, &fakeFetcher{jokes: jokes})

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	s.MarkFavourite()

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	if s.Added() {
		t.Error("Added() = true after fetching a new joke")
	}
	if store.Len() != 1 {
		t.Errorf("favourites length = %d, want 1 (unchanged)", store.Len())
	}
}

func TestSubscribersNotified(t *testing.T) {
	joke := models.Joke{ID: "abc", Text: "first", Status: 200}
	s, _ := newTestSession(t, &fakeFetcher{jokes: []models.Joke{joke}})

	var notified int
	s.Subscribe(func() { notified++ })

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if notified != 1 {
		t.Errorf("notified = %d after refresh, want 1", notified)
	}

	s.MarkFavourite()
	if notified != 2 {
		t.Errorf("notified = %d after marking, want 2", notified)
	}

	s.MarkFavourite() // no-op, no notification
	if notified != 2 {
		t.Errorf("notified = %d after no-op mark, want 2", notified)
	}
}

// Exercises the full flow: fetch, favourite, fetch again, then persist on
// the background transition and verify the file contents.
func TestFetchMarkRefetchPersist(t *testing.T) {
	dir := t.TempDir()
	store := favourites.New(dir)
	store.Load()

	first := models.Joke{ID: "abc", Text: "Why did...", Status: 200}
	second := models.Joke{ID: "def", Text: "A different joke", Status: 200}
	s := New(&fakeFetcher{jokes: []models.Joke{first, second}}, store)

	observer := lifecycle.NewObserver()
	observer.OnBackground(func() {
		if err := store.Save(); err != nil {
			t.Errorf("Save() error = %v", err)
		}
	})

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if !s.MarkFavourite() {
		t.Fatal("MarkFavourite() = false")
	}

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}
	if s.Added() {
		t.Error("Added() = true after refetch")
	}
	if store.Len() != 1 {
		t.Fatalf("favourites length = %d, want 1", store.Len())
	}

	observer.Notify(lifecycle.PhaseBackground)

	data, err := os.ReadFile(filepath.Join(dir, favourites.Filename))
	if err != nil {
		t.Fatalf("favourites file not written: %v", err)
	}

	var persisted []models.Joke
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("Unmarshal persisted file: %v", err)
	}
	if len(persisted) != 1 || !persisted[0].Equal(first) {
		t.Errorf("persisted = %+v, want [%+v]", persisted, first)
	}
}
