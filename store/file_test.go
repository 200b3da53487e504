package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreCreatesEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	notes, err := os.ReadFile(filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(notes))

	sessions, err := os.ReadFile(filepath.Join(dir, "sessions.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(sessions))
}

func TestFileStoreReadsKeyedNotes(t *testing.T) {
	dir := t.TempDir()
	data := `{"abc": {"startTime": 1000, "endTime": 61000, "deviceInfo": "Web", "notes": {
		"n2": {"midiNote": 64, "velocity": 70, "timestamp": 1500, "isNoteOn": true},
		"n1": {"midiNote": 60, "velocity": 70, "timestamp": 1200, "isNoteOn": true}
	}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sessions.json"), []byte(data), 0644))

	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	s, err := fs.GetSession(context.Background(), "abc")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("abc", s.Id)
	assert.Equal([]int{60, 64}, s.Notes.MidiNotes())
	assert.Equal(int64(61000), *s.EndTime)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, SaveNote(ctx, fs, "keep", note(60, 1), testNow))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	s, err := reopened.GetSession(ctx, "keep")
	require.NoError(t, err)
	assert.Len(t, s.Notes, 1)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sessions.json"), []byte("{oops"), 0644))

	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	_, err = fs.GetSessions(context.Background())
	assert.Error(t, err)
}
