// Command genmock writes a synthetic streetlight theft dataset for local
// development. The output is deterministic for a given seed and is read by
// the dashboard exactly like the production file.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/hurtos_mock.csv -years 2022,2023,2024,2025 -rows 120
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/streetlight-dashboard/internal/config"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
)

var months = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

type options struct {
	years   []int
	rows    int     // rows per year
	missing float64 // fraction of rows without coordinates
	seed    uint64
	columns config.Columns
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output CSV path")
	years := flag.String("years", "2022,2023,2024,2025", "comma separated years")
	rows := flag.Int("rows", 120, "rows per year")
	missing := flag.Float64("missing", 0.1, "fraction of rows without coordinates (0-1)")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *rows < 1 {
		return fmt.Errorf("invalid -rows %d: must be positive", *rows)
	}
	if *missing < 0 || *missing > 1 {
		return fmt.Errorf("invalid -missing %v: must be 0-1", *missing)
	}

	sel := domain.ParseSelection([]string{*years}).Normalize(nil)
	if len(sel) == 0 {
		return fmt.Errorf("invalid -years %q", *years)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	opts := options{years: sel, rows: *rows, missing: *missing, seed: *seed, columns: cfg.Columns}
	n, err := generate(f, opts)
	if err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %d rows for years %v to %s", n, []int(sel), *out)
	return nil
}

// generate writes the header and opts.rows rows per year, scattered around
// the fallback map center, and returns the number of data rows written.
func generate(w io.Writer, opts options) (int, error) {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))

	cw := csv.NewWriter(w)
	header := []string{opts.columns.Year, opts.columns.Month, opts.columns.Asset, opts.columns.Latitude, opts.columns.Longitude}
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	n := 0
	for _, year := range opts.years {
		for range opts.rows {
			month := months[rng.IntN(len(months))]
			assets := 1 + rng.IntN(6)

			lat, lon := "", ""
			if rng.Float64() >= opts.missing {
				lat = formatCoord(domain.FallbackCenter.Lat + (rng.Float64()-0.5)*0.16)
				lon = formatCoord(domain.FallbackCenter.Lon + (rng.Float64()-0.5)*0.16)
			}

			record := []string{strconv.Itoa(year), month, strconv.Itoa(assets), lat, lon}
			if err := cw.Write(record); err != nil {
				return n, err
			}
			n++
		}
	}

	cw.Flush()
	return n, cw.Error()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
