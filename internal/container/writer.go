package container

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tgsession/internal/account"
	"github.com/dmitrijs2005/tgsession/internal/common"
	"github.com/dmitrijs2005/tgsession/internal/dbx"
	"github.com/dmitrijs2005/tgsession/internal/filex"
	"github.com/dmitrijs2005/tgsession/internal/logging"
)

// Opener returns a read-write handle on the container at path.
type Opener func(path string) (*sql.DB, error)

func openReadWrite(path string) (*sql.DB, error) {
	return dbx.OpenSQLite(path, false)
}

// Writer materialises an Account as a new session container.
type Writer struct {
	open   Opener
	logger logging.Logger
}

// WriterOption customises a Writer.
type WriterOption func(*Writer)

// WithOpener replaces the SQLite opener, e.g. with a sqlmock handle in tests.
func WithOpener(o Opener) WriterOption {
	return func(w *Writer) { w.open = o }
}

// NewWriter returns a Writer that logs cleanup problems to logger.
func NewWriter(logger logging.Logger, opts ...WriterOption) *Writer {
	w := &Writer{open: openReadWrite, logger: logger}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write stores a at path: it creates the fixed schema if missing, inserts the
// sessions row and the version marker, and commits, all in one transaction.
//
// Any failure rolls the transaction back and closes the handle. A file this
// call created is then removed together with its SQLite sidecars; a file that
// already existed is kept as the rollback left it. A directory or other
// non-regular entry at path is refused before anything is opened. Errors wrap
// common.ErrGeneration; an account failing its credential checks also
// matches common.ErrInvalidCredential and leaves the filesystem untouched.
func (w *Writer) Write(ctx context.Context, a *account.Account, path string) (err error) {
	dcID, err := a.DCID()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeneration, err)
	}
	authKey, err := a.AuthKey()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeneration, err)
	}
	defer common.WipeByteArray(authKey)

	existed, err := filex.RegularFileExists(path)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeneration, err)
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeneration, err)
	}

	defer func() {
		if err == nil {
			return
		}
		// A file that was already there is left to the rollback.
		if existed {
			err = fmt.Errorf("%w: session file %s: %w", common.ErrGeneration, path, err)
			return
		}
		if rmErr := filex.RemoveArtifacts(path); rmErr != nil {
			w.logger.Warn(ctx, "failed to remove partial session file", "path", path, "error", rmErr)
		}
		err = fmt.Errorf("%w: session file %s: %w", common.ErrGeneration, path, err)
	}()

	db, err := w.open(path)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
		}

		addr := sql.NullString{String: a.ServerAddress(), Valid: a.ServerAddress() != ""}
		if _, err := tx.ExecContext(ctx, insertSessionSQL, dcID, addr, a.Port(), authKey); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertVersionSQL, common.SchemaVersion); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
		return nil
	})

	// The handle must be released before the deferred cleanup removes the file.
	if cerr := db.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close: %w", cerr)
	}
	if err != nil {
		return err
	}

	w.logger.Debug(ctx, "session file written", "path", path, "dc_id", dcID, "key_id", a.KeyID())
	return nil
}
