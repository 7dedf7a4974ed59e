package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentweb/pkg/grades"
)

func testRecords() []grades.Record {
	return []grades.Record{
		{Term: "2024 HØST", CourseName: "Programmering", CourseCode: "DATA1100", Grade: "B"},
		{Term: "2025 VÅR", CourseName: "Apputvikling", CourseCode: "DAVE3600", Grade: "A"},
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	set, err := store.Load(grades.Full)

	require.NoError(t, err, "a missing snapshot is the first run, not an error")
	assert.Nil(t, set)
}

func TestStore_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := NewStore(dir)
	savedAt := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return savedAt }

	err := store.Save(grades.Set{Variant: grades.Full, Records: testRecords()})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "results_full.json"))

	loaded, err := store.Load(grades.Full)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, grades.Full, loaded.Variant)
	assert.Equal(t, testRecords(), loaded.Records)

	data, err := os.ReadFile(store.Path(grades.Full))
	require.NoError(t, err)
	var entry Entry
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.True(t, savedAt.Equal(entry.SavedAt))

	// Variants are stored independently
	partial, err := store.Load(grades.Partial)
	require.NoError(t, err)
	assert.Nil(t, partial)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save(grades.Set{Variant: grades.Full, Records: testRecords()}))
	require.NoError(t, store.Save(grades.Set{Variant: grades.Full}))

	loaded, err := store.Load(grades.Full)
	require.NoError(t, err)
	require.NotNil(t, loaded, "an empty set is still a baseline")
	assert.Empty(t, loaded.Records)

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_LoadMalformed(t *testing.T) {
	store := NewStore(t.TempDir())
	err := os.WriteFile(store.Path(grades.Full), []byte("invalid json { content"), 0o644)
	require.NoError(t, err)

	set, err := store.Load(grades.Full)

	assert.ErrorIs(t, err, ErrMalformedSnapshot)
	assert.Nil(t, set)
}

func TestStore_LoadWrongVariant(t *testing.T) {
	store := NewStore(t.TempDir())
	data, err := json.Marshal(Entry{Variant: grades.Partial, Records: testRecords()})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(grades.Full), data, 0o644))

	_, err = store.Load(grades.Full)

	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestStore_SaveFailure(t *testing.T) {
	// A regular file where the data directory should be
	blocker := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewStore(blocker).Save(grades.Set{Variant: grades.Full, Records: testRecords()})

	assert.Error(t, err)
}
