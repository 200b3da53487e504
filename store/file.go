package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jsphweid/pianocoach/model"
)

const (
	notesFilename    = "notes.json"
	sessionsFilename = "sessions.json"
)

// FileStore keeps everything in two JSON files under one directory:
// notes.json (the recent-notes array) and sessions.json (sessions keyed by id).
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	fs := &FileStore{dir: dir}
	if err := fs.initFile(notesFilename, model.Notes{}); err != nil {
		return nil, err
	}
	if err := fs.initFile(sessionsFilename, model.SessionsById{}); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.dir, name)
}

func (fs *FileStore) initFile(name string, empty any) error {
	if _, err := os.Stat(fs.path(name)); err == nil {
		return nil
	}
	return fs.writeJSON(name, empty)
}

func (fs *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(fs.path(name))
	if err != nil {
		return fmt.Errorf("read %v: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %v: %w", name, err)
	}
	return nil
}

// writeJSON replaces the file through a rename so readers never see a
// partial write.
func (fs *FileStore) writeJSON(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %v: %w", name, err)
	}
	tmp, err := os.CreateTemp(fs.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %v: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %v: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %v: %w", name, err)
	}
	return os.Rename(tmp.Name(), fs.path(name))
}

func (fs *FileStore) loadSessions() (model.SessionsById, error) {
	sessions := make(model.SessionsById)
	if err := fs.readJSON(sessionsFilename, &sessions); err != nil {
		return nil, err
	}
	for id, s := range sessions {
		s.Id = id
		sessions[id] = s
	}
	return sessions, nil
}

func (fs *FileStore) GetSession(ctx context.Context, id string) (model.Session, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	sessions, err := fs.loadSessions()
	if err != nil {
		return model.Session{}, err
	}
	s, ok := sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (fs *FileStore) GetSessions(ctx context.Context) (model.SessionsById, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.loadSessions()
}

func (fs *FileStore) UpdateSession(ctx context.Context, id string, fn UpdateFunc) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	sessions, err := fs.loadSessions()
	if err != nil {
		return err
	}
	s, exists := sessions[id]
	if !exists {
		s = model.Session{Id: id}
	}
	fn(&s, exists)
	s.Id = id
	sessions[id] = s
	return fs.writeJSON(sessionsFilename, sessions)
}

func (fs *FileStore) PushRecentNote(ctx context.Context, note model.NoteEvent) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var notes model.Notes
	if err := fs.readJSON(notesFilename, &notes); err != nil {
		return err
	}
	return fs.writeJSON(notesFilename, pushRing(notes, note))
}

func (fs *FileStore) RecentNotes(ctx context.Context) (model.Notes, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var notes model.Notes
	if err := fs.readJSON(notesFilename, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
