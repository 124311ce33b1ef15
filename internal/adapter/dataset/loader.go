// Package dataset loads the incident table from a CSV or XLSX file into an
// immutable domain.Dataset.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/streetlight-dashboard/internal/config"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// Options controls how the source file is read.
type Options struct {
	Delimiter rune   // CSV only; default ','
	Sheet     string // XLSX only; default first sheet
	Columns   config.Columns
}

// OptionsFromConfig maps service configuration to loader options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Delimiter: cfg.DatasetDelimiter,
		Sheet:     cfg.DatasetSheet,
		Columns:   cfg.Columns,
	}
}

// Load reads the whole file and returns the dataset. Any unreadable file,
// missing required column or malformed row fails the load; there is no
// partial result.
func Load(path string, opts Options) (*domain.Dataset, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	var (
		tbl table
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		tbl, err = readXLSX(path, opts.Sheet)
	} else {
		tbl, err = readCSV(path, opts.Delimiter)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}

	cols, err := resolveColumns(tbl.header, opts.Columns)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}

	// Spreadsheet cells and ';' separated exports may carry a decimal comma.
	p := rowParser{cols: cols, decimalComma: tbl.xlsx || opts.Delimiter != ','}

	incidents := make([]domain.Incident, 0, len(tbl.rows))
	for _, r := range tbl.rows {
		inc, err := p.parse(r)
		if err != nil {
			return nil, fmt.Errorf("load dataset %s: %w", path, err)
		}
		incidents = append(incidents, inc)
	}

	return domain.NewDataset(incidents, cols.hasCoordinates(), path), nil
}

// table is the raw header and data rows of a source file.
type table struct {
	header []string
	rows   []row
	xlsx   bool
}

// row is one non-blank data row with its 1-based source line.
type row struct {
	line   int
	fields []string
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
