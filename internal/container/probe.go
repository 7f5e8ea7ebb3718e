package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/tgsession/internal/binx"
)

// sqliteMagic opens every SQLite 3 database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// errNotContainer marks files that fail the header probe.
var errNotContainer = errors.New("not a session container")

// probeHeader checks that path starts with the SQLite file header. An empty
// or shorter file fails.
func probeHeader(path string) error {
	c, err := binx.Open(path)
	if err != nil {
		return err
	}
	defer c.Close()

	if c.Size() == 0 {
		return fmt.Errorf("%w: empty file", errNotContainer)
	}

	magic, err := c.ReadBytes(len(sqliteMagic))
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %d byte file is too short", errNotContainer, c.Size())
	}
	if err != nil {
		return err
	}
	if !bytes.Equal(magic, sqliteMagic) {
		return fmt.Errorf("%w: bad header", errNotContainer)
	}
	return nil
}
