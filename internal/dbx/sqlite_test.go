package dbx

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	dir := t.TempDir()

	ro, err := SQLiteDSN(filepath.Join(dir, "a b.session"), true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ro, "file:"))
	assert.Contains(t, ro, "mode=ro")
	assert.Contains(t, ro, "a%20b.session")

	rw, err := SQLiteDSN("relative.session", false)
	require.NoError(t, err)
	assert.Contains(t, rw, "mode=rwc")
	assert.NotContains(t, rw, "file:relative", "relative paths are made absolute")
}

func TestOpenSQLite_ReadOnlyDoesNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.session")

	db, err := OpenSQLite(path, true)
	require.NoError(t, err)
	defer db.Close()

	_, err = TableExists(context.Background(), db, "sessions")
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTableExistsAndQueryFirstRow(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "x.session")

	db, err := OpenSQLite(path, false)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, n INTEGER, b BLOB, z TEXT)`)
	require.NoError(t, err)

	ok, err := TableExists(ctx, db, "kv")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TableExists(ctx, db, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	row, err := QueryFirstRow(ctx, db, `SELECT * FROM kv LIMIT 1`)
	require.NoError(t, err)
	assert.Nil(t, row)

	_, err = db.ExecContext(ctx, `INSERT INTO kv (k, n, b, z) VALUES (?, ?, ?, NULL)`, "a", 7, []byte{1, 2})
	require.NoError(t, err)

	row, err = QueryFirstRow(ctx, db, `SELECT * FROM kv WHERE k = ? LIMIT 1`, "a")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "a", row["k"])
	assert.Equal(t, int64(7), row["n"])
	assert.Equal(t, []byte{1, 2}, row["b"])
	assert.Nil(t, row["z"])
	_, hasMissing := row["missing"]
	assert.False(t, hasMissing)
}
