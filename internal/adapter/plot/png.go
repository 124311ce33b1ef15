// Package plot draws figures as static images with gonum/plot.
package plot

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/streetlight-dashboard/internal/chart"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default image size.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// WriteBarPNG renders fig as a grouped bar chart in PNG format. Months a
// year does not have are drawn as zero-height bars.
func WriteBarPNG(w io.Writer, fig chart.BarFigure, width, height vg.Length) error {
	p := gonumplot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XAxis
	p.Y.Label.Text = fig.YAxis
	p.Legend.Top = true

	if len(fig.Categories) > 0 && len(fig.Series) > 0 {
		barWidth := vg.Points(40) / vg.Length(len(fig.Series))
		for i, s := range fig.Series {
			values := make(plotter.Values, len(fig.Categories))
			for j, c := range fig.Categories {
				values[j], _ = s.Value(c)
			}

			bars, err := plotter.NewBarChart(values, barWidth)
			if err != nil {
				return fmt.Errorf("bar series %s: %w", s.Name, err)
			}
			bars.LineStyle.Width = vg.Length(0)
			bars.Color = parseHex(s.Color)
			bars.Offset = vg.Length(float64(i)-float64(len(fig.Series)-1)/2) * barWidth

			p.Add(bars)
			if fig.ShowLegend {
				p.Legend.Add(s.Name, bars)
			}
		}
		p.NominalX(fig.Categories...)
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// parseHex converts "#RRGGBB" to a color. Anything else is drawn gray.
func parseHex(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.Gray{Y: 128}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Gray{Y: 128}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
