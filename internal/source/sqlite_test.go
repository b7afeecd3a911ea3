package source

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "points.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE sites (lon REAL, lat REAL, category TEXT);
		INSERT INTO sites VALUES (-97.5, 35.4, 'plant');
		INSERT INTO sites VALUES (-98.1, 36.0, NULL);
	`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSource(t *testing.T) {
	path := createTestDB(t)

	src, err := NewSQLite(context.Background(), path, "SELECT lon, lat, category FROM sites ORDER BY lon DESC")
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []string{"lon", "lat", "category"}, src.Header())

	require.True(t, src.Next())
	rec := src.Record()
	assert.Equal(t, 0, rec.Row())
	v, ok := rec.Field("category")
	require.True(t, ok)
	assert.Equal(t, "plant", v)
	lon, _ := rec.Field("lon")
	assert.Equal(t, "-97.5", lon)

	// NULL column reads as an absent field.
	require.True(t, src.Next())
	_, ok = src.Record().Field("category")
	assert.False(t, ok)

	assert.False(t, src.Next())
	assert.NoError(t, src.Err())
}

func TestSQLiteSource_BadQuery(t *testing.T) {
	path := createTestDB(t)

	_, err := NewSQLite(context.Background(), path, "SELECT * FROM missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: query")
}
