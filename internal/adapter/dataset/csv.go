package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(path string, delimiter rune) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, err
	}
	defer f.Close()

	return parseCSV(f, delimiter)
}

func parseCSV(r io.Reader, delimiter rune) (table, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // short rows leave trailing columns empty

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return table{}, errors.New("csv: file is empty")
	}
	if err != nil {
		return table{}, fmt.Errorf("csv: read header: %w", err)
	}

	tbl := table{header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("csv: %w", err)
		}
		if blank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		tbl.rows = append(tbl.rows, row{line: line, fields: record})
	}
	return tbl, nil
}
