package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersionsAreOrdered(t *testing.T) {
	require.NotEmpty(t, migrations)

	prev := 0
	for _, m := range migrations {
		assert.Greater(t, m.Version, prev, "migration versions must strictly increase")
		assert.NotEmpty(t, m.Description)
		assert.NotEmpty(t, m.SQL)
		prev = m.Version
	}
	assert.Equal(t, 1, migrations[0].Version)
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	// NewStore already migrated; a second pass must be a no-op.
	require.NoError(t, store.ApplyMigrations(context.Background()))

	version, err := store.GetLatestVersion()
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].Version, version)
}

func TestReopenExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	version, err := reopened.GetLatestVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}
