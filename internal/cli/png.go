package cli

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/courtgrid/internal/availability"
	"github.com/pfrederiksen/courtgrid/internal/logger"
	"github.com/pfrederiksen/courtgrid/internal/metrics"
)

func writePNG(w io.Writer, a *app, week *availability.WeekReading) error {
	grid, err := a.renderer.Render(week)
	if err != nil {
		return fmt.Errorf("rendering grid: %w", err)
	}
	metrics.GridsRendered.Inc()

	if _, err := w.Write(grid.PNG); err != nil {
		return fmt.Errorf("writing grid: %w", err)
	}
	a.log.Debug("Grid written", logger.Fields{
		"width":  grid.Width,
		"height": grid.Height,
		"bytes":  len(grid.PNG),
	})
	return nil
}
