package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagOut    string
	flagFormat string
)

func newGridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Collect one week and write it as PNG, text or JSON",
		Example: `  courtgrid grid --date 2026-10-18 --out week.png
  courtgrid grid --format text`,
		RunE: runGrid,
	}

	cmd.Flags().StringVar(&flagDate, "date", "", "First day as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&flagOut, "out", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&flagFormat, "format", string(FormatPNG), "Output format: png, text, json")

	return cmd
}

func runGrid(cmd *cobra.Command, args []string) error {
	format := OutputFormat(flagFormat)
	switch format {
	case FormatPNG, FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown format: %s", flagFormat)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	start, err := a.startDate()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	week, err := a.collector.Collect(ctx, start, a.cfg.Days)
	if err != nil {
		return fmt.Errorf("collecting week of %s: %w", start.Format("2006-01-02"), err)
	}

	write := func(w io.Writer) error {
		if format == FormatPNG {
			return writePNG(w, a, week)
		}
		return WriteOutput(w, NewWeekOutput(a.cfg.Facility, week, time.Now().In(a.loc)), format)
	}

	if flagOut == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(flagOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagOut, err)
	}
	return writeAndClose(f, write)
}

// writeAndClose runs write against wc and always closes it. A close failure is
// reported when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if closeErr := wc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", closeErr)
		}
	}()
	return write(wc)
}
