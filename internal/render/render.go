// Package render draws a week of court availability as a single PNG grid.
//
// Each day becomes one block of fixed height: a title line with the date and weekday,
// a header row of slot labels, and one row per court category. Blocks are stacked
// top to bottom in date order.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/pfrederiksen/courtgrid/internal/availability"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Layout in pixels
const (
	Margin      = 8
	TitleHeight = 20
	RowHeight   = 20
	BlockGap    = 8
	LabelWidth  = 64
	CellWidth   = 84

	// BlockHeight is the height of one day block, title and gap included
	BlockHeight = TitleHeight + 3*RowHeight + BlockGap
)

// Palette holds the grid colors
type Palette struct {
	Free       color.RGBA
	Reserved   color.RGBA
	Background color.RGBA
	Header     color.RGBA
	Line       color.RGBA
	Text       color.RGBA
}

// DefaultPalette is light blue for free slots and soft red for reserved ones
var DefaultPalette = Palette{
	Free:       color.RGBA{R: 122, G: 191, B: 240, A: 255},
	Reserved:   color.RGBA{R: 237, G: 102, B: 102, A: 255},
	Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Header:     color.RGBA{R: 235, G: 235, B: 235, A: 255},
	Line:       color.RGBA{R: 120, G: 120, B: 120, A: 255},
	Text:       color.RGBA{R: 0, G: 0, B: 0, A: 255},
}

// RenderedGrid is an encoded grid image
type RenderedGrid struct {
	PNG    []byte
	Width  int
	Height int
}

// Renderer draws week readings
type Renderer struct {
	slotLabels []string
	palette    Palette
	face       font.Face
}

// New creates a Renderer with the fixed slot labels and the given palette
func New(palette Palette) *Renderer {
	return &Renderer{
		slotLabels: availability.SlotLabels(),
		palette:    palette,
		face:       basicfont.Face7x13,
	}
}

// Width returns the image width for any week
func (r *Renderer) Width() int {
	return 2*Margin + LabelWidth + len(r.slotLabels)*CellWidth
}

// Render draws every day of week into one PNG
func (r *Renderer) Render(week *availability.WeekReading) (*RenderedGrid, error) {
	if week == nil || len(week.Days) == 0 {
		return nil, fmt.Errorf("nothing to render: week has no days")
	}

	width := r.Width()
	height := len(week.Days) * BlockHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.palette.Background), image.Point{}, draw.Src)

	for i, day := range week.Days {
		r.drawDay(img, i*BlockHeight, day)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}

	return &RenderedGrid{
		PNG:    buf.Bytes(),
		Width:  width,
		Height: height,
	}, nil
}

// DayTitle formats the block title, e.g. "10/18 (Sun)"
func DayTitle(day availability.DayReading) string {
	return fmt.Sprintf("%d/%d (%s)", int(day.Date.Month()), day.Date.Day(), day.Date.Weekday().String()[:3])
}

func (r *Renderer) drawDay(img *image.RGBA, top int, day availability.DayReading) {
	r.drawText(img, Margin, top, r.Width()-2*Margin, TitleHeight, DayTitle(day), false)

	tableTop := top + TitleHeight
	left := Margin

	// Header row
	r.fill(img, image.Rect(left, tableTop, left+LabelWidth, tableTop+RowHeight), r.palette.Background)
	for i, label := range r.slotLabels {
		x := left + LabelWidth + i*CellWidth
		cell := image.Rect(x, tableTop, x+CellWidth, tableTop+RowHeight)
		r.fill(img, cell, r.palette.Header)
		r.outline(img, cell)
		r.drawText(img, x, tableTop, CellWidth, RowHeight, label, true)
	}

	for n, category := range availability.Categories {
		y := tableTop + (n+1)*RowHeight
		labelCell := image.Rect(left, y, left+LabelWidth, y+RowHeight)
		r.fill(img, labelCell, r.palette.Header)
		r.outline(img, labelCell)
		r.drawText(img, left, y, LabelWidth, RowHeight, string(category), true)

		reading := day.Reading(category)
		for i, status := range reading {
			x := left + LabelWidth + i*CellWidth
			cell := image.Rect(x, y, x+CellWidth, y+RowHeight)
			r.fill(img, cell, r.statusColor(status))
			r.outline(img, cell)
			r.drawText(img, x, y, CellWidth, RowHeight, status.String(), true)
		}
	}
}

func (r *Renderer) statusColor(s availability.Status) color.RGBA {
	if s == availability.Free {
		return r.palette.Free
	}
	return r.palette.Reserved
}

func (r *Renderer) fill(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Renderer) outline(img *image.RGBA, rect image.Rectangle) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.SetRGBA(x, rect.Min.Y, r.palette.Line)
		img.SetRGBA(x, rect.Max.Y-1, r.palette.Line)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.SetRGBA(rect.Min.X, y, r.palette.Line)
		img.SetRGBA(rect.Max.X-1, y, r.palette.Line)
	}
}

// drawText writes s inside the box at (x, y), vertically centered and optionally
// horizontally centered
func (r *Renderer) drawText(img *image.RGBA, x, y, w, h int, s string, center bool) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.palette.Text),
		Face: r.face,
	}

	metrics := r.face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	baseline := y + (h-textHeight)/2 + metrics.Ascent.Ceil()

	startX := x + 4
	if center {
		startX = x + (w-d.MeasureString(s).Ceil())/2
	}

	d.Dot = fixed.P(startX, baseline)
	d.DrawString(s)
}
