// Package tdata handles the Telegram Desktop "tdata" directory format.
//
// Decoding the encrypted local storage is delegated to an external lookup
// service; this package only checks the directory layout, asks the service
// for the account records and turns them into Accounts. Writing tdata is not
// supported.
package tdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tgsession/internal/binx"
)

const (
	dirSuffix   = "tdata"
	keyDataFile = "key_datas"

	// keyDataMagic opens every encrypted local-storage file.
	keyDataMagic = "TDF$"
)

// requiredFiles must all be regular files inside a usable tdata directory.
var requiredFiles = []string{
	filepath.Join("D877F783D5D3EF8C", "maps"),
	"D877F783D5D3EF8Cs",
	keyDataFile,
}

var errBadKeyData = errors.New("key_datas is not a local storage file")

// NormalizePath appends "/tdata" to path unless it already ends in "tdata".
func NormalizePath(path string) string {
	if strings.HasSuffix(path, dirSuffix) {
		return path
	}
	return path + "/" + dirSuffix
}

// CheckLayout reports whether dir holds the files of a logged-in account.
func CheckLayout(dir string) error {
	for _, name := range requiredFiles {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !fi.Mode().IsRegular() {
			return fmt.Errorf("no account tdata directory at %s: missing %s", dir, name)
		}
	}
	return nil
}

// ProbeKeyData reads the key_datas header and returns the application
// version recorded in it.
func ProbeKeyData(dir string) (int32, error) {
	c, err := binx.Open(filepath.Join(dir, keyDataFile))
	if err != nil {
		return 0, err
	}
	defer c.Close()

	magic, err := c.ReadString(len(keyDataMagic))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errBadKeyData, err)
	}
	if magic != keyDataMagic {
		return 0, fmt.Errorf("%w: magic %q", errBadKeyData, magic)
	}

	version, err := c.ReadInt32()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errBadKeyData, err)
	}
	return version, nil
}
