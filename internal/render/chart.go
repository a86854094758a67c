package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Bar is one labelled value of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
}

const (
	chartWidth  = 7 * vg.Inch
	barWidth    = 14
	rowHeight   = 20
	chartMargin = 160
)

var (
	positiveFill = color.RGBA{R: 0x2b, G: 0x8c, B: 0xbe, A: 0xff}
	negativeFill = color.RGBA{R: 0xe3, G: 0x4a, B: 0x33, A: 0xff}
)

// BarChartSVG draws bars top to bottom in the given order. Negative values
// extend left of the zero axis in a second colour.
func BarChartSVG(w io.Writer, title string, bars []Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("rendering chart %q: no bars", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "value"

	// plot's nominal axis counts upwards, so the first bar goes last.
	n := len(bars)
	pos := make(plotter.Values, n)
	neg := make(plotter.Values, n)
	labels := make([]string, n)
	for i, b := range bars {
		row := n - 1 - i
		labels[row] = b.Label
		if b.Value < 0 {
			neg[row] = b.Value
		} else {
			pos[row] = b.Value
		}
	}
	for _, series := range []struct {
		values plotter.Values
		fill   color.Color
	}{
		{pos, positiveFill},
		{neg, negativeFill},
	} {
		bc, err := plotter.NewBarChart(series.values, vg.Points(barWidth))
		if err != nil {
			return fmt.Errorf("rendering chart %q: %w", title, err)
		}
		bc.Horizontal = true
		bc.Color = series.fill
		bc.LineStyle.Width = 0
		p.Add(bc)
	}
	p.NominalY(labels...)
	p.Add(plotter.NewGrid())

	height := vg.Points(float64(chartMargin + n*rowHeight))
	canvas := vgsvg.New(chartWidth, height)
	p.Draw(draw.New(canvas))
	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("rendering chart %q: %w", title, err)
	}
	return nil
}
