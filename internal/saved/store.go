// Package saved keeps the persisted set of saved item titles.
package saved

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// StorageKey is the durable key holding the JSON array of saved titles.
const StorageKey = "savedVideos"

type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// PersistError reports that a mutation was applied in memory but could not be
// written to durable storage.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist saved items: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Store is an insertion-ordered set of titles with write-through persistence.
// The in-memory set is authoritative for the session even when a write fails.
type Store struct {
	kv     KV
	logger *slog.Logger

	mu     sync.Mutex
	titles []string
	index  map[string]struct{}
}

func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{kv: kv, logger: logger, index: make(map[string]struct{})}
}

// Load replaces the in-memory set with the durable copy. Missing or corrupt
// data yields an empty set; Load never fails.
func (s *Store) Load(ctx context.Context) []string {
	titles := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = s.titles[:0]
	s.index = make(map[string]struct{}, len(titles))
	for _, title := range titles {
		if _, ok := s.index[title]; ok {
			continue
		}
		s.index[title] = struct{}{}
		s.titles = append(s.titles, title)
	}
	return append([]string(nil), s.titles...)
}

func (s *Store) read(ctx context.Context) []string {
	raw, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Warn("saved items unreadable, starting empty", "err", err)
		return nil
	}
	if !found || raw == "" {
		return nil
	}
	var titles []string
	if err := json.Unmarshal([]byte(raw), &titles); err != nil {
		s.logger.Warn("saved items corrupt, starting empty", "err", err)
		return nil
	}
	return titles
}

func (s *Store) Contains(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[title]
	return ok
}

func (s *Store) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.titles...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.titles)
}

// Add inserts title and persists. changed is false when title was present.
func (s *Store) Add(ctx context.Context, title string) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.addLocked(title) {
		return false, nil
	}
	return true, s.flushLocked(ctx)
}

// Remove deletes title and persists. changed is false when title was absent.
func (s *Store) Remove(ctx context.Context, title string) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.removeLocked(title) {
		return false, nil
	}
	return true, s.flushLocked(ctx)
}

// Toggle flips membership of title and returns whether it is now saved.
func (s *Store) Toggle(ctx context.Context, title string) (saved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved = s.addLocked(title)
	if !saved {
		s.removeLocked(title)
	}
	return saved, s.flushLocked(ctx)
}

func (s *Store) addLocked(title string) bool {
	if _, ok := s.index[title]; ok {
		return false
	}
	s.index[title] = struct{}{}
	s.titles = append(s.titles, title)
	return true
}

func (s *Store) removeLocked(title string) bool {
	if _, ok := s.index[title]; !ok {
		return false
	}
	delete(s.index, title)
	for i, existing := range s.titles {
		if existing == title {
			s.titles = append(s.titles[:i], s.titles[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store) flushLocked(ctx context.Context) error {
	titles := s.titles
	if titles == nil {
		titles = []string{}
	}
	raw, err := json.Marshal(titles)
	if err != nil {
		return &PersistError{Err: err}
	}
	if err := s.kv.Set(ctx, StorageKey, string(raw)); err != nil {
		s.logger.Error("saved items not persisted", "err", err, "count", len(titles))
		return &PersistError{Err: err}
	}
	s.logger.Debug("saved items persisted", "count", len(titles))
	return nil
}
