package store

import (
	"context"
	"strings"
	"sync"

	"github.com/jsphweid/pianocoach/model"
	"github.com/patrickmn/go-cache"
)

const (
	sessionKeyPrefix = "session:"
	recentNotesKey   = "notes:recent"
)

// MemoryStore keeps sessions in process memory. Nothing expires; it is
// meant for tests, demos and `listen` runs that are not persisted.
type MemoryStore struct {
	// serializes read-modify-write; cache calls are already safe on their own
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (m *MemoryStore) GetSession(ctx context.Context, id string) (model.Session, error) {
	x, found := m.cache.Get(sessionKeyPrefix + id)
	if !found {
		return model.Session{}, ErrSessionNotFound
	}
	return cloneSession(x.(model.Session)), nil
}

func (m *MemoryStore) GetSessions(ctx context.Context) (model.SessionsById, error) {
	res := make(model.SessionsById)
	for key, item := range m.cache.Items() {
		if !strings.HasPrefix(key, sessionKeyPrefix) {
			continue
		}
		res[strings.TrimPrefix(key, sessionKeyPrefix)] = cloneSession(item.Object.(model.Session))
	}
	return res, nil
}

func (m *MemoryStore) UpdateSession(ctx context.Context, id string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s model.Session
	x, exists := m.cache.Get(sessionKeyPrefix + id)
	if exists {
		s = cloneSession(x.(model.Session))
	} else {
		s = model.Session{Id: id}
	}
	fn(&s, exists)
	s.Id = id
	m.cache.Set(sessionKeyPrefix+id, s, cache.NoExpiration)
	return nil
}

func (m *MemoryStore) PushRecentNote(ctx context.Context, note model.NoteEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var notes model.Notes
	if x, found := m.cache.Get(recentNotesKey); found {
		notes = x.(model.Notes)
	}
	m.cache.Set(recentNotesKey, pushRing(notes, note), cache.NoExpiration)
	return nil
}

func (m *MemoryStore) RecentNotes(ctx context.Context) (model.Notes, error) {
	if x, found := m.cache.Get(recentNotesKey); found {
		return append(model.Notes(nil), x.(model.Notes)...), nil
	}
	return model.Notes{}, nil
}
