package cli

import (
	"github.com/spf13/cobra"
)

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot (needs COURTGRID_TELEGRAM_TOKEN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			return runBotLoop(ctx, a)
		},
	}
}
