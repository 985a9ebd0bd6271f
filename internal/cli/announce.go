package cli

import (
	"fmt"

	"github.com/pfrederiksen/courtgrid/internal/logger"
	"github.com/pfrederiksen/courtgrid/internal/notifier"
	"github.com/spf13/cobra"
)

var flagDryRun bool

func newAnnounceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Post the weekly availability announcement",
		Long: `Collects the week starting at --date, counts the free slots and posts a short
announcement linking to the grid page. Twitter credentials are read from
TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_SECRET.`,
		RunE: runAnnounce,
	}

	cmd.Flags().StringVar(&flagDate, "date", "", "First day as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the post instead of publishing it")

	return cmd
}

func runAnnounce(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	start, err := a.startDate()
	if err != nil {
		return err
	}

	var n notifier.Notifier
	if flagDryRun {
		n = notifier.NewDryRunNotifier().WithWriter(cmd.OutOrStdout())
	} else {
		tn, err := notifier.NewTwitterNotifier()
		if err != nil {
			return err
		}
		n = tn
	}

	ctx, stop := signalContext()
	defer stop()

	week, err := a.collector.Collect(ctx, start, a.cfg.Days)
	if err != nil {
		return fmt.Errorf("collecting week of %s: %w", start.Format("2006-01-02"), err)
	}

	announcement := notifier.Announcement{
		Facility: a.cfg.Facility,
		Start:    start,
		Days:     a.cfg.Days,
		PageURL:  a.links.HTMLLink(start),
		ImageURL: a.links.ImageLink(start),
	}
	for _, day := range week.Days {
		announcement.FreeSlots += day.Tennis.FreeCount() + day.Shared.FreeCount()
	}

	if err := n.Notify(announcement); err != nil {
		return err
	}

	a.log.Info("Announcement sent", logger.Fields{
		"start":      start.Format("2006-01-02"),
		"free_slots": announcement.FreeSlots,
		"dry_run":    flagDryRun,
	})
	return nil
}
