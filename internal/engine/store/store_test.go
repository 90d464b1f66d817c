package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "channels.db"))
	require.NoError(t, err, "Open creates parent directories")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSeenAndMarkSeen(t *testing.T) {
	db := openTestDB(t)

	seen, err := db.Seen("UC1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, db.MarkSeen("UC1", 2))

	seen, err = db.Seen("UC1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = db.Seen("UC2")
	require.NoError(t, err)
	assert.False(t, seen, "other ids stay unseen")
}

func TestMarkSeenUpsert(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.MarkSeen("UC1", 0))
	require.NoError(t, db.MarkSeen("UC1", 3), "re-marking must not conflict")

	seen, err := db.Seen("UC1")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestNilStoreIsSafe(t *testing.T) {
	var db *DB
	seen, err := db.Seen("UC1")
	require.NoError(t, err)
	assert.False(t, seen)
	assert.NoError(t, db.MarkSeen("UC1", 1))
	assert.NoError(t, db.Close())
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.MarkSeen("UC1", 1))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	seen, err := db.Seen("UC1")
	require.NoError(t, err)
	assert.True(t, seen)
}
