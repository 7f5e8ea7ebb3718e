// Package converter is the single entry point for reading and producing
// account credentials in either on-disk format.
package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/tgsession/internal/account"
	"github.com/dmitrijs2005/tgsession/internal/common"
	"github.com/dmitrijs2005/tgsession/internal/container"
	"github.com/dmitrijs2005/tgsession/internal/logging"
	"github.com/dmitrijs2005/tgsession/internal/tdata"
	"github.com/go-playground/validator/v10"
)

// Output formats accepted by Generate.
const (
	FormatSession = "session"
	FormatTData   = "tdata"
)

// AccountReader extracts accounts from a path.
type AccountReader interface {
	Read(ctx context.Context, path string) ([]*account.Account, error)
}

// AccountWriter stores one account at a path.
type AccountWriter interface {
	Write(ctx context.Context, a *account.Account, path string) error
}

// Converter dispatches to the format-specific readers and writers.
type Converter struct {
	sessionReader AccountReader
	sessionWriter AccountWriter
	tdataReader   AccountReader
	tdataWriter   AccountWriter

	validate *validator.Validate
	logger   logging.Logger
}

// Option customises a Converter.
type Option func(*Converter)

// WithSessionWriter replaces the session container writer.
func WithSessionWriter(w AccountWriter) Option {
	return func(c *Converter) { c.sessionWriter = w }
}

// WithTDataReader replaces the tdata reader.
func WithTDataReader(r AccountReader) Option {
	return func(c *Converter) { c.tdataReader = r }
}

// New returns a Converter that decodes tdata directories through lookup.
func New(lookup tdata.Lookup, logger logging.Logger, opts ...Option) *Converter {
	c := &Converter{
		sessionReader: container.NewReader(),
		sessionWriter: container.NewWriter(logger),
		tdataReader:   tdata.NewReader(lookup, logger),
		tdataWriter:   tdata.NewWriter(),
		validate:      newValidator(),
		logger:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse reads the accounts stored at path. A directory is treated as tdata,
// any other existing entry as a session container.
func (c *Converter) Parse(ctx context.Context, path string) ([]*account.Account, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidPath, path)
	}

	var accounts []*account.Account
	if fi.IsDir() {
		accounts, err = c.tdataReader.Read(ctx, path)
	} else {
		accounts, err = c.sessionReader.Read(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "parsed", "path", path, "accounts", len(accounts))
	return accounts, nil
}

// requiredFields lists the keys Generate cannot do without. A key is missing
// when it is absent or null.
type requiredFields struct {
	UserID  any `json:"user_id" validate:"required"`
	DCID    any `json:"dc_id" validate:"required"`
	AuthKey any `json:"auth_key" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// Generate builds an account from fields and writes it to path in format,
// which defaults to FormatSession.
func (c *Converter) Generate(ctx context.Context, fields map[string]any, path, format string) error {
	if err := c.checkRequired(fields); err != nil {
		return err
	}

	f, err := account.DecodeFields(fields)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", common.ErrGeneration, common.ErrInvalidCredential, err)
	}
	a := account.New(f)

	var w AccountWriter
	switch format {
	case "", FormatSession:
		format = FormatSession
		w = c.sessionWriter
	case FormatTData:
		w = c.tdataWriter
	default:
		return fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format)
	}

	if err := w.Write(ctx, a, path); err != nil {
		return err
	}

	c.logger.Info(ctx, "generated", "path", path, "format", format, "key_id", fmt.Sprintf("%016x", a.KeyID()))
	return nil
}

func (c *Converter) checkRequired(fields map[string]any) error {
	in := requiredFields{
		UserID:  fields["user_id"],
		DCID:    fields["dc_id"],
		AuthKey: fields["auth_key"],
	}

	err := c.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return fmt.Errorf("%w: missing account fields: %s", common.ErrInvalidPath, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %w", common.ErrInvalidPath, err)
}
