// Package pipeline drives the selection -> view -> figures cycle and keeps
// the per-session displayed state.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/streetlight-dashboard/internal/chart"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
	"github.com/couchcryptid/streetlight-dashboard/internal/observability"
)

// Frame is one rendered state of the dashboard. The bar and map figures are
// always built from the same selection.
type Frame struct {
	Selection  domain.Selection `json:"selection"`
	Bar        chart.BarFigure  `json:"bar"`
	Map        chart.MapFigure  `json:"map"`
	RenderedAt time.Time        `json:"rendered_at"`
}

// Dashboard renders frames from a loaded dataset.
type Dashboard struct {
	dataset *domain.Dataset
	opts    chart.Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Dashboard over ds and publishes the dataset gauges.
func New(ds *domain.Dataset, opts chart.Options, logger *slog.Logger, metrics *observability.Metrics) *Dashboard {
	d := &Dashboard{
		dataset: ds,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}

	located := len(domain.FilterCoordinates(ds.Rows()))
	metrics.DatasetRows.Set(float64(ds.Len()))
	metrics.DatasetYears.Set(float64(len(ds.Years())))
	if ds.Len() > 0 {
		metrics.DatasetLocated.Set(float64(located) / float64(ds.Len()))
	}
	return d
}

// CheckReadiness returns nil once the dataset holds at least one row.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if d.dataset == nil || d.dataset.Len() == 0 {
		return errors.New("dataset has no rows")
	}
	return nil
}

// Years returns the selector options.
func (d *Dashboard) Years() []int {
	return d.dataset.Years()
}

// DefaultSelection is the selection shown before the user picks anything.
func (d *Dashboard) DefaultSelection() domain.Selection {
	return d.dataset.DefaultSelection()
}

// Render runs one filter, aggregate and build cycle for sel.
func (d *Dashboard) Render(_ context.Context, sel domain.Selection) Frame {
	start := time.Now()

	v := domain.BuildView(d.dataset, sel)
	f := Frame{
		Selection:  v.Selection,
		Bar:        chart.BuildBar(v, d.opts),
		Map:        chart.BuildMap(v, d.opts),
		RenderedAt: domain.Now(),
	}

	markers := f.Map.Markers()
	d.metrics.RendersTotal.Inc()
	d.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	d.metrics.SelectedYears.Observe(float64(len(v.Selection)))
	d.metrics.MapMarkers.Observe(float64(markers))
	if v.Fallback {
		d.metrics.FallbackCenter.Inc()
	}

	d.logger.Debug("frame rendered",
		"selection", v.Selection.Strings(),
		"rows", len(v.Rows),
		"months", len(v.Months),
		"markers", markers,
		"fallback_center", v.Fallback,
	)
	return f
}
