package cli

import (
	"context"
	"errors"

	"github.com/pfrederiksen/courtgrid/internal/bot"
	"github.com/pfrederiksen/courtgrid/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	flagAddr    string
	flagWithBot bool
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grid images, pages and calendar feeds over HTTP",
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from COURTGRID_HTTP_ADDR)")
	cmd.Flags().BoolVar(&flagWithBot, "bot", false, "Also run the Telegram bot")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if flagAddr != "" {
		a.cfg.HTTPAddr = flagAddr
	}
	if flagWithBot && a.cfg.TelegramToken == "" {
		return errors.New("--bot requires COURTGRID_TELEGRAM_TOKEN")
	}

	ctx, stop := signalContext()
	defer stop()

	srv := server.New(server.Options{
		Addr:      a.cfg.HTTPAddr,
		Facility:  a.cfg.Facility,
		Days:      a.cfg.Days,
		Location:  a.loc,
		SourceURL: a.cfg.SourceURL,
	}, a.collector, a.renderer, a.links, a.log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if flagWithBot {
		g.Go(func() error {
			return runBotLoop(ctx, a)
		})
	}

	return g.Wait()
}

func runBotLoop(ctx context.Context, a *app) error {
	d := bot.NewDispatcher(a.cfg.BotPrefix, bot.DefaultCommands(a.links, a.cfg.Today), a.log)
	return bot.Run(ctx, a.cfg.TelegramToken, d, a.log)
}
