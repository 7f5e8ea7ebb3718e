package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tgsession/internal/common"
	"github.com/dmitrijs2005/tgsession/internal/converter"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	out        string
	fieldsFile string
	format     string
	dcID       int
	userID     int64
	authKey    string
	archive    bool
}

type generateResult struct {
	Path       string `json:"path" yaml:"path"`
	Format     string `json:"format" yaml:"format"`
	ArchiveKey string `json:"archive_key,omitempty" yaml:"archive_key,omitempty"`
}

func (a *App) newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write an account to a new session file",
		Long: `Write an account to a new session file.

Account fields come from a JSON object (--fields) and/or individual flags;
flags win. user_id, dc_id and auth_key (hex) are required.

Examples:
  # From flags
  tgsession generate --out acc.session --dc-id 121 --user-id 42 --auth-key 0a1b...

  # From a JSON file, then archive the result
  tgsession generate --out acc.session --fields account.json --archive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.out, "out", "", "output path")
	fs.StringVar(&opts.fieldsFile, "fields", "", "JSON file with account fields")
	fs.StringVar(&opts.format, "type", converter.FormatSession, "output type (session, tdata)")
	fs.IntVar(&opts.dcID, "dc-id", 0, "data-center id")
	fs.Int64Var(&opts.userID, "user-id", 0, "user id")
	fs.StringVar(&opts.authKey, "auth-key", "", "auth key as hex")
	fs.BoolVar(&opts.archive, "archive", false, "upload the result to the configured S3 bucket")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (a *App) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()

	fields, err := loadFields(opts.fieldsFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dc-id") {
		fields["dc_id"] = opts.dcID
	}
	if flags.Changed("user-id") {
		fields["user_id"] = opts.userID
	}
	if flags.Changed("auth-key") {
		fields["auth_key"] = opts.authKey
	}

	if err := a.converter().Generate(ctx, fields, opts.out, opts.format); err != nil {
		return err
	}

	result := generateResult{Path: opts.out, Format: opts.format}
	if opts.archive {
		up, err := a.newUploader(ctx, a.archiveSettings())
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrExternalService, err)
		}
		if result.ArchiveKey, err = up.Upload(ctx, opts.out); err != nil {
			return err
		}
		a.logger.Info(ctx, "archived", "path", opts.out, "key", result.ArchiveKey)
	}

	p := a.printer()
	p.Success("Session written to " + opts.out)
	pairs := [][2]string{{"Path", result.Path}, {"Format", result.Format}}
	if result.ArchiveKey != "" {
		pairs = append(pairs, [2]string{"Archive key", result.ArchiveKey})
	}
	return p.Print(result, pairs)
}

// loadFields reads a JSON object of account fields. Numbers are kept as
// json.Number so 64-bit ids survive.
func loadFields(path string) (map[string]any, error) {
	fields := map[string]any{}
	if path == "" {
		return fields, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: fields file: %w", common.ErrInvalidPath, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: fields file %s: %w", common.ErrParse, path, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
