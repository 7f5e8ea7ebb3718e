package tdata

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tgsession/internal/account"
	"github.com/dmitrijs2005/tgsession/internal/common"
	"github.com/dmitrijs2005/tgsession/internal/logging"
)

// Reader turns a tdata directory into accounts through a Lookup.
type Reader struct {
	lookup Lookup
	logger logging.Logger
}

// NewReader returns a Reader backed by lookup.
func NewReader(lookup Lookup, logger logging.Logger) *Reader {
	return &Reader{lookup: lookup, logger: logger}
}

// Read returns every account the lookup reports for the directory at path.
// path may name the tdata directory itself or its parent.
func (r *Reader) Read(ctx context.Context, path string) ([]*account.Account, error) {
	dir := NormalizePath(path)

	if err := CheckLayout(dir); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrParse, err)
	}
	version, err := ProbeKeyData(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrParse, dir, err)
	}
	r.logger.Debug(ctx, "tdata directory accepted", "dir", dir, "app_version", version)

	records, err := r.lookup.LookupAccounts(ctx, dir)
	if err != nil {
		return nil, err
	}

	accounts := make([]*account.Account, 0, len(records))
	for i, rec := range records {
		f, err := account.DecodeFields(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", common.ErrParse, i, err)
		}
		accounts = append(accounts, account.New(f))
	}
	return accounts, nil
}
