package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Print the public links for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			start, err := a.startDate()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "page:     %s\n", a.links.HTMLLink(start))
			fmt.Fprintf(out, "image:    %s\n", a.links.ImageLink(start))
			fmt.Fprintf(out, "calendar: %s\n", a.links.CalendarLink(start))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagDate, "date", "", "First day as YYYY-MM-DD (default today)")
	return cmd
}
