// Package cli wires the tgsession commands: parse, generate and version.
package cli

import (
	"context"
	"io"

	"github.com/dmitrijs2005/tgsession/internal/archive"
	"github.com/dmitrijs2005/tgsession/internal/config"
	"github.com/dmitrijs2005/tgsession/internal/converter"
	"github.com/dmitrijs2005/tgsession/internal/logging"
	"github.com/dmitrijs2005/tgsession/internal/tdata"
	"github.com/spf13/cobra"
)

// Uploader archives a generated file and returns its object key.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// App carries the state shared by all commands.
type App struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer
	logger logging.Logger

	newUploader func(ctx context.Context, s archive.Settings) (Uploader, error)
}

func newApp(cfg *config.Config, out, errOut io.Writer) *App {
	return &App{
		cfg:         cfg,
		out:         out,
		errOut:      errOut,
		logger:      logging.Discard(),
		newUploader: newS3Uploader,
	}
}

func newS3Uploader(ctx context.Context, s archive.Settings) (Uploader, error) {
	client, err := archive.NewClient(ctx, s)
	if err != nil {
		return nil, err
	}
	return archive.NewUploader(client, s.Bucket, s.Prefix), nil
}

// Execute runs the command line in args (without the program name).
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	root := newApp(cfg, out, errOut).rootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tgsession",
		Short: "Convert Telegram account credentials between storage formats",
		Long: `tgsession reads and writes Telegram account credentials.

It understands the SQLite session container used by MTProto client libraries
and, through a local decoding service, Telegram Desktop tdata directories.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	config.BindFlags(root.PersistentFlags(), a.cfg)

	root.AddCommand(a.newParseCommand())
	root.AddCommand(a.newGenerateCommand())
	root.AddCommand(a.newVersionCommand())
	return root
}

// setup validates the merged configuration and builds the logger.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	format := a.cfg.LogFormat
	if format == "" {
		format = logging.FormatJSON
		if isTerminal(a.errOut) {
			format = logging.FormatText
		}
	}

	logger, err := logging.New(a.errOut, a.cfg.LogLevel, format)
	if err != nil {
		return err
	}
	a.logger = logger.With("command", cmd.Name())
	return nil
}

func (a *App) converter() *converter.Converter {
	var opts []tdata.HTTPOption
	if a.cfg.LookupSecret != "" {
		opts = append(opts, tdata.WithSecret([]byte(a.cfg.LookupSecret)))
	}
	return converter.New(tdata.NewHTTPLookup(a.cfg.LookupURL, opts...), a.logger)
}

func (a *App) printer() *Printer {
	format, err := ParseFormat(a.cfg.Output)
	if err != nil {
		format = FormatTable
	}
	return NewPrinter(a.out, format, isTerminal(a.out))
}

func (a *App) archiveSettings() archive.Settings {
	return archive.Settings{
		Bucket:       a.cfg.S3Bucket,
		Region:       a.cfg.S3Region,
		BaseEndpoint: a.cfg.S3BaseEndpoint,
		AccessKey:    a.cfg.S3AccessKey,
		SecretKey:    a.cfg.S3SecretKey,
		Prefix:       a.cfg.S3Prefix,
	}
}
