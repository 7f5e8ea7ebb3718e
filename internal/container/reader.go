// Package container reads and writes the SQLite session container used by
// MTProto client libraries.
//
// The Reader understands several legacy layouts: it takes the credential from
// the first sessions row and, when that row carries no user id, falls back to
// the self entry (id 0) of the entities table and then of the peers table.
// The Writer always produces the same fixed five-table schema inside a single
// transaction and removes the file if anything fails.
package container

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tgsession/internal/account"
	"github.com/dmitrijs2005/tgsession/internal/common"
	"github.com/dmitrijs2005/tgsession/internal/dbx"
)

// Reader extracts accounts from session containers.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the accounts stored in the container at path. A container
// holds at most one account, so the result has zero or one element.
func (r *Reader) Read(ctx context.Context, path string) ([]*account.Account, error) {
	a, err := r.ReadAccount(ctx, path)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return []*account.Account{}, nil
	}
	return []*account.Account{a}, nil
}

// ReadAccount returns the container's account, or (nil, nil) when none of
// the recognised tables holds a matching row.
//
// Errors wrap common.ErrNotFound when path is not a regular file and
// common.ErrParse for unreadable files or storage failures.
func (r *Reader) ReadAccount(ctx context.Context, path string) (*account.Account, error) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: session file %s", common.ErrNotFound, path)
	}

	if err := probeHeader(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrParse, path, err)
	}

	db, err := dbx.OpenSQLite(path, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrParse, path, err)
	}
	defer db.Close()

	f, found, err := extract(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrParse, path, err)
	}
	if !found {
		return nil, nil
	}
	return account.New(f), nil
}

// extract runs the lookup strategy. found is false when no step matched a row.
func extract(ctx context.Context, q dbx.DBTX) (f account.Fields, found bool, err error) {
	ok, err := fromSessions(ctx, q, &f)
	if err != nil {
		return f, false, err
	}
	found = ok

	fallbacks := []struct {
		table   string
		dateCol string
	}{
		{table: tableEntities, dateCol: "date"},
		{table: tablePeers, dateCol: "last_update_on"},
	}
	for _, fb := range fallbacks {
		if userResolved(f) {
			break
		}
		ok, err := fromSelfRow(ctx, q, fb.table, fb.dateCol, &f)
		if err != nil {
			return f, false, err
		}
		found = found || ok
	}
	return f, found, nil
}

func userResolved(f account.Fields) bool {
	return f.UserID != nil && *f.UserID != 0
}

// fromSessions fills the credential from the first sessions row. user_id and
// date are optional columns.
func fromSessions(ctx context.Context, q dbx.DBTX, f *account.Fields) (bool, error) {
	exists, err := dbx.TableExists(ctx, q, tableSessions)
	if err != nil || !exists {
		return false, err
	}

	row, err := dbx.QueryFirstRow(ctx, q, `SELECT * FROM sessions LIMIT 1`)
	if err != nil {
		return false, fmt.Errorf("read sessions: %w", err)
	}
	if row == nil {
		return false, nil
	}

	if dc, ok := asInt64(row["dc_id"]); ok {
		f.DCID = int(dc)
	}
	f.ServerAddress = asString(row["server_address"])
	if port, ok := asInt64(row["port"]); ok {
		f.Port = int(port)
	}
	f.AuthKey = asBytes(row["auth_key"])

	if uid, ok := asInt64(row["user_id"]); ok {
		f.UserID = &uid
	}
	if ts, ok := asEpoch(row["date"]); ok {
		f.RegisteredAt = ts
	}
	return true, nil
}

// fromSelfRow reads the id=0 row of table, taking hash as the user id and
// dateCol as the registration time.
func fromSelfRow(ctx context.Context, q dbx.DBTX, table, dateCol string, f *account.Fields) (bool, error) {
	exists, err := dbx.TableExists(ctx, q, table)
	if err != nil || !exists {
		return false, err
	}

	row, err := dbx.QueryFirstRow(ctx, q, `SELECT * FROM `+table+` WHERE id = 0 LIMIT 1`)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", table, err)
	}
	if row == nil {
		return false, nil
	}

	if uid, ok := asInt64(row["hash"]); ok {
		f.UserID = &uid
	}
	if ts, ok := asEpoch(row[dateCol]); ok {
		f.RegisteredAt = ts
	}
	return true, nil
}
