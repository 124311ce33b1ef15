// Command validate checks a streetlight theft dataset before it is deployed.
// It loads the file exactly as the dashboard does and reports row counts,
// coordinate coverage, month labels and a render of every year.
//
// Usage:
//
//	go run ./cmd/validate -dataset hurtos_V1.csv
//	go run ./cmd/validate -dataset hurtos.xlsx -sheet Hurtos
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/streetlight-dashboard/internal/adapter/dataset"
	"github.com/couchcryptid/streetlight-dashboard/internal/chart"
	"github.com/couchcryptid/streetlight-dashboard/internal/config"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
	"github.com/couchcryptid/streetlight-dashboard/internal/observability"
	"github.com/couchcryptid/streetlight-dashboard/internal/pipeline"
)

// phase tracks pass/fail for a validation phase. Warnings never fail it.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}

	path := flag.String("dataset", cfg.DatasetPath, "CSV or XLSX file to validate")
	sheet := flag.String("sheet", cfg.DatasetSheet, "XLSX sheet name (default first sheet)")
	minCoverage := flag.Float64("min-coverage", 0, "fail when fewer than this fraction of rows have coordinates")
	flag.Parse()

	opts := dataset.OptionsFromConfig(cfg)
	opts.Sheet = *sheet

	os.Exit(run(os.Stdout, *path, opts, *minCoverage))
}

func run(w io.Writer, path string, opts dataset.Options, minCoverage float64) int {
	fmt.Fprintln(w, "=== Streetlight Dataset Validation ===")
	fmt.Fprintln(w)

	ds, err := dataset.Load(path, opts)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRows(ds),
		validateCoordinates(ds, minCoverage),
		validateMonths(ds),
		validateRenders(ds),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rows: %d  Years: %v  Default: %v\n", ds.Len(), ds.Years(), ds.DefaultSelection())

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
		for _, warn := range p.warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

func validateRows(ds *domain.Dataset) *phase {
	p := &phase{name: "Rows and years"}
	if ds.Len() == 0 {
		p.errorf("dataset has no rows")
		return p
	}
	for i := range ds.Len() {
		r := ds.Row(i)
		if strings.TrimSpace(r.Month) == "" {
			p.errorf("line %d: empty month", r.Line)
		}
		if r.Assets < 0 {
			p.errorf("line %d: negative asset count %v", r.Line, r.Assets)
		}
	}
	return p
}

func validateCoordinates(ds *domain.Dataset, minCoverage float64) *phase {
	p := &phase{name: "Coordinates"}
	if !ds.HasCoordinates() {
		p.warnf("no coordinate columns; the map will always be empty")
		if minCoverage > 0 {
			p.errorf("coverage 0%% below required %.0f%%", minCoverage*100)
		}
		return p
	}

	rows := ds.Rows()
	located := domain.FilterCoordinates(rows)
	missing := len(rows) - len(located)
	if missing > 0 {
		p.warnf("%d of %d rows have no drawable coordinates", missing, len(rows))
	}

	coverage := 0.0
	if len(rows) > 0 {
		coverage = float64(len(located)) / float64(len(rows))
	}
	if coverage < minCoverage {
		p.errorf("coverage %.1f%% below required %.0f%%", coverage*100, minCoverage*100)
	}
	return p
}

func validateMonths(ds *domain.Dataset) *phase {
	p := &phase{name: "Month labels"}

	seen := make(map[string]bool)
	for _, r := range ds.Rows() {
		if seen[r.Month] {
			continue
		}
		seen[r.Month] = true
		if _, ok := domain.MonthNumber(r.Month); !ok {
			p.warnf("month %q is not a recognized month name; it sorts after December", r.Month)
		}
	}
	return p
}

// validateRenders builds the figures for every year on its own and for all
// years together, the way the dashboard would.
func validateRenders(ds *domain.Dataset) *phase {
	p := &phase{name: "Render every year"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := pipeline.New(ds, chart.DefaultOptions(), logger, observability.NewMetricsForTesting())
	ctx := context.Background()

	for _, y := range ds.Years() {
		f := d.Render(ctx, domain.Selection{y})
		checkFrame(p, f, fmt.Sprintf("year %d", y))
	}
	checkFrame(p, d.Render(ctx, ds.Years()), "all years")
	return p
}

func checkFrame(p *phase, f pipeline.Frame, label string) {
	if len(f.Bar.Series) != len(f.Selection) {
		p.errorf("%s: %d bar series for %d selected years", label, len(f.Bar.Series), len(f.Selection))
	}
	for _, s := range f.Bar.Series {
		if s.Empty() {
			p.errorf("%s: year %d has no bars", label, s.Year)
		}
	}
	if f.Map.Fallback && len(f.Map.Traces) > 0 {
		p.warnf("%s: no drawable points, map uses the fallback center", label)
	}
}
