package tdata

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tgsession/internal/account"
	"github.com/dmitrijs2005/tgsession/internal/common"
)

// Writer would produce a tdata directory. Only the credential checks are
// implemented; every valid account is reported as not implemented.
type Writer struct{}

// NewWriter returns a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write validates a and fails with common.ErrGeneration. Nothing is written.
func (w *Writer) Write(_ context.Context, a *account.Account, path string) error {
	if _, err := a.DCID(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeneration, err)
	}
	key, err := a.AuthKey()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrGeneration, err)
	}
	common.WipeByteArray(key)

	return fmt.Errorf("%w: tdata output %s: %w", common.ErrGeneration, path, common.ErrNotImplemented)
}
