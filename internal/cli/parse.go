package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func (a *App) newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <path>",
		Short: "Print the accounts stored in a session file or tdata directory",
		Long: `Print the accounts stored at path.

A directory is treated as Telegram Desktop tdata (its parent may be given
too) and decoded through the lookup service. Any other path is read as a
session container.

Examples:
  # Table view
  tgsession parse ./account.session

  # Full credentials as JSON
  tgsession parse ./account.session -o json

  # tdata through an authenticated lookup service
  tgsession parse ~/.local/share/TelegramDesktop --lookup-secret s3cr3t`,
		Args: cobra.ExactArgs(1),
		RunE: a.runParse,
	}
}

func (a *App) runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if a.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.LookupTimeout)
		defer cancel()
	}

	accounts, err := a.converter().Parse(ctx, args[0])
	if err != nil {
		return err
	}

	list := newAccountList(accounts)
	return a.printer().PrintList(list, len(list) == 0, "No accounts found.", list)
}
