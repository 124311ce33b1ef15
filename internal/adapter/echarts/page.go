// Package echarts renders the dashboard page: title, year selector, grouped
// bar chart and point map, drawn with go-echarts.
package echarts

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/streetlight-dashboard/internal/chart"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DefaultAssetsHost serves the echarts JavaScript bundle.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Options are the static parts of the page.
type Options struct {
	Title      string
	Footer     string
	AssetsHost string
	Debug      bool
}

// Page is everything that changes between renders.
type Page struct {
	Years     []int
	Selection domain.Selection
	Bar       chart.BarFigure
	Map       chart.MapFigure
}

// Renderer writes dashboard pages.
type Renderer struct {
	opts Options
}

// NewRenderer fills in defaults for unset options.
func NewRenderer(o Options) *Renderer {
	if o.AssetsHost == "" {
		o.AssetsHost = DefaultAssetsHost
	}
	return &Renderer{opts: o}
}

var headerTmpl = template.Must(template.New("header").Parse(`<header class="dashboard-header">
<h1>{{.Title}}</h1>
<form method="get" action="/" id="year-form">
<label for="year">Seleccione el año:</label>
<select id="year" name="year" multiple size="{{.Size}}" onchange="this.form.submit()">
{{- range .Options}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{- end}}
</select>
<noscript><button type="submit">Actualizar</button></noscript>
</form>
</header>
`))

var footerTmpl = template.Must(template.New("footer").Parse(`{{if .}}<footer class="dashboard-footer"><p>{{.}}</p></footer>
{{end}}`))

type yearOption struct {
	Value    string
	Selected bool
}

// Render writes the full HTML document for p.
func (r *Renderer) Render(w io.Writer, p Page) error {
	title := r.opts.Title
	if r.opts.Debug {
		title += " (debug)"
	}

	page := components.NewPage()
	page.SetPageTitle(title).SetAssetsHost(r.opts.AssetsHost)
	page.AddCharts(r.barChart(p.Bar), r.mapChart(p.Map))

	var body bytes.Buffer
	if err := page.Render(&body); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	var header, footer bytes.Buffer
	if err := headerTmpl.Execute(&header, r.headerData(p)); err != nil {
		return fmt.Errorf("render header: %w", err)
	}
	if err := footerTmpl.Execute(&footer, r.opts.Footer); err != nil {
		return fmt.Errorf("render footer: %w", err)
	}

	_, err := io.WriteString(w, splice(body.String(), header.String(), footer.String()))
	return err
}

func (r *Renderer) headerData(p Page) any {
	options := make([]yearOption, 0, len(p.Years))
	for _, y := range p.Years {
		options = append(options, yearOption{Value: strconv.Itoa(y), Selected: p.Selection.Contains(y)})
	}
	return struct {
		Title   string
		Size    int
		Options []yearOption
	}{
		Title:   r.opts.Title,
		Size:    min(max(len(options), 1), 6),
		Options: options,
	}
}

// splice places header right after the opening body tag and footer right
// before the closing one.
func splice(doc, header, footer string) string {
	if i := strings.Index(doc, "<body"); i >= 0 {
		if j := strings.Index(doc[i:], ">"); j >= 0 {
			at := i + j + 1
			doc = doc[:at] + "\n" + header + doc[at:]
		}
	} else {
		doc = header + doc
	}

	if i := strings.LastIndex(doc, "</body>"); i >= 0 {
		return doc[:i] + footer + doc[i:]
	}
	return doc + footer
}

func (r *Renderer) barChart(fig chart.BarFigure) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "450px", AssetsHost: r.opts.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(fig.ShowLegend), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XAxis, NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: fig.YAxis}),
	)

	bar.SetXAxis(fig.Categories)
	for _, s := range fig.Series {
		bar.AddSeries(s.Name, barData(fig.Categories, s),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return bar
}

// barData aligns a series to the category axis. Months the year lacks are
// "-", which echarts leaves blank.
func barData(categories []string, s chart.BarSeries) []opts.BarData {
	data := make([]opts.BarData, 0, len(categories))
	for _, c := range categories {
		if v, ok := s.Value(c); ok {
			data = append(data, opts.BarData{Name: c, Value: v})
			continue
		}
		data = append(data, opts.BarData{Name: c, Value: "-"})
	}
	return data
}

// mapChart draws markers on longitude/latitude axes. The visible window is
// centered on fig.Center and narrows as the zoom level grows.
func (r *Renderer) mapChart(fig chart.MapFigure) *charts.Scatter {
	span := 360 / math.Pow(2, fig.Zoom)
	lonMin, lonMax := fig.Center.Lon-span/2, fig.Center.Lon+span/2
	latMin, latMax := fig.Center.Lat-span/2, fig.Center.Lat+span/2

	subtitle := fmt.Sprintf("centro %.4f, %.4f", fig.Center.Lat, fig.Center.Lon)
	if fig.Fallback {
		subtitle += " (sin coordenadas)"
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: fmt.Sprintf("%dpx", fig.Height), AssetsHost: r.opts.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(fig.ShowLegend), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitud", Min: lonMin, Max: lonMax}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitud", Min: latMin, Max: latMax}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside", XAxisIndex: []int{0}},
			opts.DataZoom{Type: "inside", YAxisIndex: []int{0}},
		),
	)

	for _, t := range fig.Traces {
		if t.Empty() {
			continue
		}
		data := make([]opts.ScatterData, 0, len(t.Points))
		for _, p := range t.Points {
			data = append(data, opts.ScatterData{Name: p.HoverText, Value: []interface{}{p.Lon, p.Lat}})
		}
		scatter.AddSeries(t.Name, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: t.MarkerSize}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: t.Color}),
		)
	}
	return scatter
}
